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
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// A Line is a disassembled instruction, or 1 or 2 bytes of unrecognized raw
// data.
type Line struct {
	Address     uint16
	Data        []byte
	Instruction Instruction
	// Name is the mnemonic of the CPU instruction, empty for raw data.
	Name string
	// Label is set when a jump, call or LD I of the disassembled code
	// targets this line.
	Label string
}

// IsData reports whether the line holds raw data rather than an instruction.
func (l Line) IsData() bool {
	return len(l.Data) != InstructionSize || l.Instruction.Kind == KindUnknown
}

// Opcode returns the data as a 16-bit integer. For a single byte of raw data
// this is just that byte.
func (l Line) Opcode() (res uint16) {
	res = uint16(l.Data[0])
	if len(l.Data) == 2 {
		res <<= 8
		res |= uint16(l.Data[1])
	}
	return
}

// Size returns the size of the line in bytes.
func (l Line) Size() int { return len(l.Data) }

// String returns a pseudo-asm representation of the line.
func (l Line) String() string {
	if l.IsData() {
		return fmt.Sprintf("DB % 02X", l.Data)
	}
	return l.Instruction.String()
}

// Description returns a detailed description of what the line does.
func (l Line) Description() string {
	if l.IsData() {
		return KindUnknown.Description()
	}
	return l.Instruction.Description()
}

// ASCII returns the ASCII representation of the raw data for this line.
// Returns an empty string if the data is not printable ascii.
func (l Line) ASCII() (res string) {
	if isPrintableASCII(l.Data) {
		res = string(l.Data)
	}
	return
}

// IsSkip reports whether the instruction conditionally skips the next one.
func (l Line) IsSkip() bool {
	return l.Name != "" && chip8.SkipInstructions.Contains(l.Name)
}

// -----------------------------------------------------------------------------

// Disassemble disassembles raw data loaded at origin and returns a list of
// lines. It's a linear sweep, so it cannot handle odd-aligned opcodes or
// recognize data that happens to decode as valid instructions. A trailing
// odd byte is returned as a single byte of raw data.
func Disassemble(b []byte, origin uint16) ([]Line, error) {
	if int(origin)+len(b) > MemorySize {
		return nil, &AccessErr{Address: origin, Size: len(b),
			Reason: "disassembly range"}
	}

	lines := make([]Line, 0, (len(b)+1)/2)
	index := make(map[uint16]int, cap(lines))

	for i := 0; i < len(b); i += InstructionSize {
		addr := origin + uint16(i)
		if i+1 == len(b) {
			lines = append(lines, Line{Address: addr, Data: b[i : i+1]})
			break
		}

		op := Opcode(uint16(b[i])<<8 | uint16(b[i+1]))
		line := Line{
			Address:     addr,
			Data:        b[i : i+2],
			Instruction: Decode(op),
		}
		if !line.IsData() {
			line.Name = instructionName(op)
		}
		index[addr] = len(lines)
		lines = append(lines, line)
	}

	// label everything that is referenced by an absolute address
	for _, l := range lines {
		switch l.Instruction.Kind {
		case KindJp, KindCall, KindLdI:
		default:
			continue
		}
		if l.IsData() {
			continue
		}
		if target, ok := index[l.Instruction.NNN]; ok {
			lines[target].Label = fmt.Sprintf("L%03X", l.Instruction.NNN)
		}
	}

	return lines, nil
}

// instructionName looks op up in the CHIP-8 opcode table.
func instructionName(op Opcode) string {
	for _, o := range chip8.Opcodes[int(op.Nibble(1))] {
		if o.Instruction != nil && o.Info.Mask&uint16(op) == o.Info.Value {
			return o.Instruction.Name
		}
	}
	return ""
}

func isPrintableASCII(s []byte) bool {
	for _, c := range s {
		if c < 32 || c > 126 {
			return false
		}
	}
	return true
}
