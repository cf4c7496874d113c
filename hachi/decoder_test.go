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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOpcodeNibble(t *testing.T) {
	op := Opcode(0x5FE2)
	tests := []struct {
		pos      int
		expected uint8
	}{
		{1, 0x5},
		{2, 0xF},
		{3, 0xE},
		{4, 0x2},
		{0, 0},
		{5, 0},
		{15, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, op.Nibble(tt.pos))
	}

	assert.Equal(t, uint8(0xF), op.X())
	assert.Equal(t, uint8(0xE), op.Y())
	assert.Equal(t, uint8(0x2), op.N())
	assert.Equal(t, uint8(0xE2), op.KK())
	assert.Equal(t, uint16(0xFE2), op.NNN())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		op       Opcode
		expected Instruction
	}{
		{"sys", 0x0123, Instruction{Kind: KindSys, NNN: 0x123}},
		{"cls", 0x00E0, Instruction{Kind: KindCls}},
		{"ret", 0x00EE, Instruction{Kind: KindRet}},
		{"jp", 0x1ABC, Instruction{Kind: KindJp, NNN: 0xABC}},
		{"call", 0x2ABC, Instruction{Kind: KindCall, NNN: 0xABC}},
		{"se byte", 0x3A12, Instruction{Kind: KindSeByte, X: 0xA, KK: 0x12}},
		{"sne byte", 0x4A12, Instruction{Kind: KindSneByte, X: 0xA, KK: 0x12}},
		{"se reg", 0x5AB0, Instruction{Kind: KindSeReg, X: 0xA, Y: 0xB}},
		{"ld byte", 0x6205, Instruction{Kind: KindLdByte, X: 0x2, KK: 0x05}},
		{"add byte", 0x7210, Instruction{Kind: KindAddByte, X: 0x2, KK: 0x10}},
		{"ld reg", 0x8120, Instruction{Kind: KindLdReg, X: 1, Y: 2}},
		{"or", 0x8121, Instruction{Kind: KindOr, X: 1, Y: 2}},
		{"and", 0x8122, Instruction{Kind: KindAnd, X: 1, Y: 2}},
		{"xor", 0x8123, Instruction{Kind: KindXor, X: 1, Y: 2}},
		{"add reg", 0x8124, Instruction{Kind: KindAddReg, X: 1, Y: 2}},
		{"sub", 0x8125, Instruction{Kind: KindSub, X: 1, Y: 2}},
		{"shr", 0x8126, Instruction{Kind: KindShr, X: 1, Y: 2}},
		{"subn", 0x8127, Instruction{Kind: KindSubn, X: 1, Y: 2}},
		{"shl", 0x812E, Instruction{Kind: KindShl, X: 1, Y: 2}},
		{"sne reg", 0x9120, Instruction{Kind: KindSneReg, X: 1, Y: 2}},
		{"ld i", 0xA2F0, Instruction{Kind: KindLdI, NNN: 0x2F0}},
		{"jp v0", 0xB300, Instruction{Kind: KindJpV0, NNN: 0x300}},
		{"rnd", 0xC30F, Instruction{Kind: KindRnd, X: 3, KK: 0x0F}},
		{"drw", 0xD125, Instruction{Kind: KindDrw, X: 1, Y: 2, N: 5}},
		{"skp", 0xE59E, Instruction{Kind: KindSkp, X: 5}},
		{"sknp", 0xE5A1, Instruction{Kind: KindSknp, X: 5}},
		{"ld vx dt", 0xF507, Instruction{Kind: KindLdVxDT, X: 5}},
		{"ld vx k", 0xF50A, Instruction{Kind: KindLdVxK, X: 5}},
		{"ld dt vx", 0xF515, Instruction{Kind: KindLdDTVx, X: 5}},
		{"ld st vx", 0xF518, Instruction{Kind: KindLdSTVx, X: 5}},
		{"add i", 0xF51E, Instruction{Kind: KindAddI, X: 5}},
		{"ld f", 0xF529, Instruction{Kind: KindLdF, X: 5}},
		{"ld b", 0xF533, Instruction{Kind: KindLdB, X: 5}},
		{"ld [i] vx", 0xF555, Instruction{Kind: KindLdIVx, X: 5}},
		{"ld vx [i]", 0xF565, Instruction{Kind: KindLdVxI, X: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := tt.expected
			expected.Op = tt.op
			assert.Equal(t, expected, Decode(tt.op))
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	tests := []Opcode{
		0x5121, // 5XY? with a non-zero last nibble
		0x512F,
		0x9121,
		0x8128, // no 8XY8~8XYD or 8XYF
		0x812D,
		0x812F,
		0xE59F,
		0xE5A2,
		0xF500,
		0xF5FF,
	}

	for _, op := range tests {
		in := Decode(op)
		assert.Equal(t, KindUnknown, in.Kind)
		assert.Equal(t, op, in.Op)
		assert.Equal(t, uint8(0), in.X)
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		op       Opcode
		expected string
	}{
		{0x0123, "SYS 123"},
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1228, "JP 228"},
		{0x2ABC, "CALL ABC"},
		{0x3A12, "SE VA,12"},
		{0x8124, "ADD V1,V2"},
		{0xA2F0, "LD I,2F0"},
		{0xB300, "JP V0,300"},
		{0xD015, "DRW V0,V1,5"},
		{0xF107, "LD V1,DT"},
		{0xF10A, "LD V1,K"},
		{0xF129, "LD F,V1"},
		{0xF133, "LD B,V1"},
		{0xF355, "LD [I],V3"},
		{0xF365, "LD V3,[I]"},
		{0x5121, "DW 5121"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Decode(tt.op).String())
	}
}

func TestKindDescription(t *testing.T) {
	for k := KindUnknown; k < kindCount; k++ {
		assert.NotEmpty(t, k.Description())
	}
	assert.Equal(t, KindUnknown.Description(), Kind(0xFF).Description())
	assert.Equal(t, "1NNN: Jumps to address NNN.", Decode(0x1200).Description())
}
