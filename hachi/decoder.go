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

import "fmt"

// InstructionSize is the width of every CHIP-8 instruction in bytes.
const InstructionSize = 2

// An Opcode is a raw 16-bit CHIP-8 instruction word, high byte first.
type Opcode uint16

// Nibble returns the 4-bit slice at pos, where 1 is the most significant
// nibble and 4 the least significant one. Any other position yields 0.
func (o Opcode) Nibble(pos int) uint8 {
	if pos < 1 || pos > 4 {
		return 0
	}
	return uint8(o>>(uint(4-pos)*4)) & 0x0F
}

func (o Opcode) X() uint8    { return o.Nibble(2) }
func (o Opcode) Y() uint8    { return o.Nibble(3) }
func (o Opcode) N() uint8    { return o.Nibble(4) }
func (o Opcode) KK() uint8   { return uint8(o) }
func (o Opcode) NNN() uint16 { return uint16(o) & 0x0FFF }

// -----------------------------------------------------------------------------

// A Kind identifies a decoded instruction.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSys          // 0NNN
	KindCls          // 00E0
	KindRet          // 00EE
	KindJp           // 1NNN
	KindCall         // 2NNN
	KindSeByte       // 3XKK
	KindSneByte      // 4XKK
	KindSeReg        // 5XY0
	KindLdByte       // 6XKK
	KindAddByte      // 7XKK
	KindLdReg        // 8XY0
	KindOr           // 8XY1
	KindAnd          // 8XY2
	KindXor          // 8XY3
	KindAddReg       // 8XY4
	KindSub          // 8XY5
	KindShr          // 8XY6
	KindSubn         // 8XY7
	KindShl          // 8XYE
	KindSneReg       // 9XY0
	KindLdI          // ANNN
	KindJpV0         // BNNN
	KindRnd          // CXKK
	KindDrw          // DXYN
	KindSkp          // EX9E
	KindSknp         // EXA1
	KindLdVxDT       // FX07
	KindLdVxK        // FX0A
	KindLdDTVx       // FX15
	KindLdSTVx       // FX18
	KindAddI         // FX1E
	KindLdF          // FX29
	KindLdB          // FX33
	KindLdIVx        // FX55
	KindLdVxI        // FX65

	kindCount
)

var kindDescriptions = [kindCount]string{
	KindUnknown: "Unknown / Raw Data",
	KindSys:     "0NNN: Calls RCA 1802 program at address NNN (ignored).",
	KindCls:     "00E0: Clears the screen.",
	KindRet:     "00EE: Returns from a subroutine.",
	KindJp:      "1NNN: Jumps to address NNN.",
	KindCall:    "2NNN: Calls subroutine at NNN.",
	KindSeByte:  "3XNN: Skips the next instruction if VX equals NN.",
	KindSneByte: "4XNN: Skips the next instruction if VX doesn't equal NN.",
	KindSeReg:   "5XY0: Skips the next instruction if VX equals VY.",
	KindLdByte:  "6XNN: Sets VX to NN.",
	KindAddByte: "7XNN: Adds NN to VX. VF is not affected.",
	KindLdReg:   "8XY0: Sets VX to the value of VY.",
	KindOr:      "8XY1: Sets VX to VX | VY (bit-wise OR).",
	KindAnd:     "8XY2: Sets VX to VX & VY (bit-wise AND).",
	KindXor:     "8XY3: Sets VX to VX ^ VY (bit-wise XOR).",
	KindAddReg:  "8XY4: VX += VY. VF = 1 when there's a carry, 0 when there isn't.",
	KindSub:     "8XY5: VX -= VY. VF = 0 when there's a borrow, 1 when there isn't.",
	KindShr:     "8XY6: VX >>= 1. VF = least significant bit prior to the shift.",
	KindSubn: "8XY7: VX = VY - VX. VF = 0 when there's a borrow, " +
		"1 when there isn't.",
	KindShl:    "8XYE: VX <<= 1. VF = most significant bit prior to the shift.",
	KindSneReg: "9XY0: Skips the next instruction if VX doesn't equal VY.",
	KindLdI:    "ANNN: Sets I to the address NNN.",
	KindJpV0:   "BNNN: Jumps to the address NNN plus V0.",
	KindRnd:    "CXNN: Sets VX to a random number (0-FF) & NN (bit-wise AND).",
	KindDrw:    "DXYN: Draws N rows of sprite pointed by I at VX,VY.",
	KindSkp: "EX9E: Skips the next instruction if the " +
		"key stored in VX is pressed.",
	KindSknp: "EXA1: Skips the next instruction if the key stored " +
		"in VX isn't pressed.",
	KindLdVxDT: "FX07: Sets VX to the value of the delay timer.",
	KindLdVxK:  "FX0A: A key press is awaited, and then key number is stored in VX.",
	KindLdDTVx: "FX15: Sets the delay timer to VX.",
	KindLdSTVx: "FX18: Sets the sound timer to VX.",
	KindAddI:   "FX1E: Adds VX to I.",
	KindLdF:    "FX29: Sets I to the location of the sprite for the character in VX.",
	KindLdB:    "FX33: Store BCD representation of VX in memory at I, I+1, and I+2.",
	KindLdIVx:  "FX55: Stores V0 to VX in memory starting at address I.",
	KindLdVxI:  "FX65: Fills V0 to VX with values from memory starting at address I.",
}

// Description returns a detailed description of what the instruction kind
// does.
func (k Kind) Description() string {
	if k >= kindCount {
		return kindDescriptions[KindUnknown]
	}
	return kindDescriptions[k]
}

// -----------------------------------------------------------------------------

// An Instruction is a decoded opcode. Only the operand fields that are
// meaningful for Kind are set.
type Instruction struct {
	Kind Kind
	Op   Opcode
	X, Y uint8
	N    uint8
	KK   uint8
	NNN  uint16
}

// Decode splits op into its instruction kind and operands. It never fails:
// opcodes outside of the instruction set decode to KindUnknown.
func Decode(op Opcode) Instruction {
	in := Instruction{Op: op}

	switch op.Nibble(1) {
	case 0x0:
		switch op {
		case 0x00E0:
			in.Kind = KindCls
		case 0x00EE:
			in.Kind = KindRet
		default:
			in.Kind = KindSys
			in.NNN = op.NNN()
		}
	case 0x1:
		in.Kind, in.NNN = KindJp, op.NNN()
	case 0x2:
		in.Kind, in.NNN = KindCall, op.NNN()
	case 0x3:
		in.Kind, in.X, in.KK = KindSeByte, op.X(), op.KK()
	case 0x4:
		in.Kind, in.X, in.KK = KindSneByte, op.X(), op.KK()
	case 0x5:
		if op.N() == 0 {
			in.Kind, in.X, in.Y = KindSeReg, op.X(), op.Y()
		}
	case 0x6:
		in.Kind, in.X, in.KK = KindLdByte, op.X(), op.KK()
	case 0x7:
		in.Kind, in.X, in.KK = KindAddByte, op.X(), op.KK()
	case 0x8:
		in.Kind = aluKinds[op.N()]
		if in.Kind != KindUnknown {
			in.X, in.Y = op.X(), op.Y()
		}
	case 0x9:
		if op.N() == 0 {
			in.Kind, in.X, in.Y = KindSneReg, op.X(), op.Y()
		}
	case 0xA:
		in.Kind, in.NNN = KindLdI, op.NNN()
	case 0xB:
		in.Kind, in.NNN = KindJpV0, op.NNN()
	case 0xC:
		in.Kind, in.X, in.KK = KindRnd, op.X(), op.KK()
	case 0xD:
		in.Kind, in.X, in.Y, in.N = KindDrw, op.X(), op.Y(), op.N()
	case 0xE:
		switch op.KK() {
		case 0x9E:
			in.Kind, in.X = KindSkp, op.X()
		case 0xA1:
			in.Kind, in.X = KindSknp, op.X()
		}
	case 0xF:
		if k, ok := miscKinds[op.KK()]; ok {
			in.Kind, in.X = k, op.X()
		}
	}

	return in
}

// 8XY? kinds indexed by the last nibble
var aluKinds = [16]Kind{
	0x0: KindLdReg,
	0x1: KindOr,
	0x2: KindAnd,
	0x3: KindXor,
	0x4: KindAddReg,
	0x5: KindSub,
	0x6: KindShr,
	0x7: KindSubn,
	0xE: KindShl,
}

// FX?? kinds indexed by the low byte
var miscKinds = map[uint8]Kind{
	0x07: KindLdVxDT,
	0x0A: KindLdVxK,
	0x15: KindLdDTVx,
	0x18: KindLdSTVx,
	0x1E: KindAddI,
	0x29: KindLdF,
	0x33: KindLdB,
	0x55: KindLdIVx,
	0x65: KindLdVxI,
}

// Description returns a detailed description of what the instruction does.
func (in Instruction) Description() string { return in.Kind.Description() }

// String returns a pseudo-asm representation of the instruction.
func (in Instruction) String() string {
	switch in.Kind {
	case KindSys:
		return fmt.Sprintf("SYS %03X", in.NNN)
	case KindCls:
		return "CLS"
	case KindRet:
		return "RET"
	case KindJp:
		return fmt.Sprintf("JP %03X", in.NNN)
	case KindCall:
		return fmt.Sprintf("CALL %03X", in.NNN)
	case KindSeByte:
		return fmt.Sprintf("SE V%1X,%02X", in.X, in.KK)
	case KindSneByte:
		return fmt.Sprintf("SNE V%1X,%02X", in.X, in.KK)
	case KindSeReg:
		return fmt.Sprintf("SE V%1X,V%1X", in.X, in.Y)
	case KindLdByte:
		return fmt.Sprintf("LD V%1X,%02X", in.X, in.KK)
	case KindAddByte:
		return fmt.Sprintf("ADD V%1X,%02X", in.X, in.KK)
	case KindLdReg:
		return fmt.Sprintf("LD V%1X,V%1X", in.X, in.Y)
	case KindOr:
		return fmt.Sprintf("OR V%1X,V%1X", in.X, in.Y)
	case KindAnd:
		return fmt.Sprintf("AND V%1X,V%1X", in.X, in.Y)
	case KindXor:
		return fmt.Sprintf("XOR V%1X,V%1X", in.X, in.Y)
	case KindAddReg:
		return fmt.Sprintf("ADD V%1X,V%1X", in.X, in.Y)
	case KindSub:
		return fmt.Sprintf("SUB V%1X,V%1X", in.X, in.Y)
	case KindShr:
		return fmt.Sprintf("SHR V%1X,V%1X", in.X, in.Y)
	case KindSubn:
		return fmt.Sprintf("SUBN V%1X,V%1X", in.X, in.Y)
	case KindShl:
		return fmt.Sprintf("SHL V%1X,V%1X", in.X, in.Y)
	case KindSneReg:
		return fmt.Sprintf("SNE V%1X,V%1X", in.X, in.Y)
	case KindLdI:
		return fmt.Sprintf("LD I,%03X", in.NNN)
	case KindJpV0:
		return fmt.Sprintf("JP V0,%03X", in.NNN)
	case KindRnd:
		return fmt.Sprintf("RND V%1X,%02X", in.X, in.KK)
	case KindDrw:
		return fmt.Sprintf("DRW V%1X,V%1X,%1X", in.X, in.Y, in.N)
	case KindSkp:
		return fmt.Sprintf("SKP V%1X", in.X)
	case KindSknp:
		return fmt.Sprintf("SKNP V%1X", in.X)
	case KindLdVxDT:
		return fmt.Sprintf("LD V%1X,DT", in.X)
	case KindLdVxK:
		return fmt.Sprintf("LD V%1X,K", in.X)
	case KindLdDTVx:
		return fmt.Sprintf("LD DT,V%1X", in.X)
	case KindLdSTVx:
		return fmt.Sprintf("LD ST,V%1X", in.X)
	case KindAddI:
		return fmt.Sprintf("ADD I,V%1X", in.X)
	case KindLdF:
		return fmt.Sprintf("LD F,V%1X", in.X)
	case KindLdB:
		return fmt.Sprintf("LD B,V%1X", in.X)
	case KindLdIVx:
		return fmt.Sprintf("LD [I],V%1X", in.X)
	case KindLdVxI:
		return fmt.Sprintf("LD V%1X,[I]", in.X)
	}
	return fmt.Sprintf("DW %04X", uint16(in.Op))
}
