/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

package hachi

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0x00, 0xE0, // 200: CLS
		0xA2, 0x0A, // 202: LD I,20A
		0x30, 0x01, // 204: SE V0,01
		0x12, 0x00, // 206: JP 200
		0x51, 0x21, // 208: not an instruction
		0x48, 0x49, // 20A: "HI"
		0x13, 0x00, // 20C: JP 300, outside of the listing
		0xFF, // 20E: trailing byte
	}

	lines, err := Disassemble(program, ProgramStart)
	assert.NoError(t, err)
	assert.Len(t, lines, 8)

	cls := lines[0]
	assert.Equal(t, uint16(0x200), cls.Address)
	assert.False(t, cls.IsData())
	assert.Equal(t, "CLS", cls.String())
	assert.Equal(t, chip8.ClsName, cls.Name)
	assert.Equal(t, "L200", cls.Label)
	assert.False(t, cls.IsSkip())

	assert.Equal(t, "LD I,20A", lines[1].String())
	assert.Empty(t, lines[1].Label)

	assert.Equal(t, chip8.SeName, lines[2].Name)
	assert.True(t, lines[2].IsSkip())

	jp := lines[3]
	assert.Equal(t, chip8.JpName, jp.Name)
	assert.Equal(t, uint16(0x1200), jp.Opcode())
	assert.Equal(t, KindJp.Description(), jp.Description())

	data := lines[4]
	assert.True(t, data.IsData())
	assert.Empty(t, data.Name)
	assert.Equal(t, "DB 51 21", data.String())
	assert.Equal(t, KindUnknown.Description(), data.Description())
	assert.False(t, data.IsSkip())

	text := lines[5]
	assert.Equal(t, "L20A", text.Label)
	assert.Equal(t, "HI", text.ASCII())
	assert.Empty(t, cls.ASCII())

	assert.Empty(t, lines[6].Label)

	last := lines[7]
	assert.Equal(t, uint16(0x20E), last.Address)
	assert.Equal(t, 1, last.Size())
	assert.Equal(t, uint16(0xFF), last.Opcode())
	assert.True(t, last.IsData())
	assert.Equal(t, "DB FF", last.String())
}

func TestDisassembleOutOfRange(t *testing.T) {
	_, err := Disassemble(make([]byte, 4), MemorySize-2)
	var access *AccessErr
	assert.True(t, errors.As(err, &access))

	lines, err := Disassemble(nil, ProgramStart)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}
