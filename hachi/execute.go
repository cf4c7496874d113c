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

import "github.com/retroenv/retrogolib/log"

// execute runs in against the machine. at is the address in was fetched
// from and PC already points past it. Handlers either leave PC alone, add
// one extra instruction width to skip, or assign it outright. Every check
// that can fail happens before the first write.
func (c *Chip8) execute(in Instruction, at uint16) error {
	switch in.Kind {
	case KindSys:
		// machine code routines of the original interpreter can't run here
		c.logger.Debug("Ignoring SYS call",
			log.Hex("pc", at), log.Hex("address", in.NNN))
	case KindCls:
		c.Display.clear()
	case KindRet:
		return c.ret(at)
	case KindJp:
		c.PC = in.NNN & addressMask
	case KindCall:
		return c.call(in.NNN, at)
	case KindSeByte:
		c.skipIf(c.V[in.X] == in.KK)
	case KindSneByte:
		c.skipIf(c.V[in.X] != in.KK)
	case KindSeReg:
		c.skipIf(c.V[in.X] == c.V[in.Y])
	case KindSneReg:
		c.skipIf(c.V[in.X] != c.V[in.Y])
	case KindLdByte:
		c.V[in.X] = in.KK
	case KindAddByte:
		c.V[in.X] += in.KK
	case KindLdReg:
		c.V[in.X] = c.V[in.Y]
	case KindOr:
		c.V[in.X] |= c.V[in.Y]
	case KindAnd:
		c.V[in.X] &= c.V[in.Y]
	case KindXor:
		c.V[in.X] ^= c.V[in.Y]
	case KindAddReg:
		c.addRegister(in.X, in.Y)
	case KindSub:
		c.subRegister(in.X, in.X, in.Y)
	case KindSubn:
		c.subRegister(in.X, in.Y, in.X)
	case KindShr:
		c.pShr(c, in.X, in.Y)
	case KindShl:
		c.pShl(c, in.X, in.Y)
	case KindLdI:
		c.I = in.NNN & addressMask
	case KindJpV0:
		c.PC = (in.NNN + uint16(c.V[0])) & addressMask
	case KindRnd:
		c.V[in.X] = uint8(c.Rand.Uint32()) & in.KK
	case KindDrw:
		return c.draw(in.X, in.Y, in.N)
	case KindSkp:
		c.skipIf(c.Keypad.Pressed(c.V[in.X]))
	case KindSknp:
		c.skipIf(!c.Keypad.Pressed(c.V[in.X]))
	case KindLdVxDT:
		c.V[in.X] = c.Timers.Delay
	case KindLdVxK:
		c.waitKey(in.X, at)
	case KindLdDTVx:
		c.Timers.Delay = c.V[in.X]
	case KindLdSTVx:
		c.Timers.Sound = c.V[in.X]
	case KindAddI:
		c.I += uint16(c.V[in.X])
	case KindLdF:
		c.I = FontOffset + uint16(c.V[in.X]&0x0F)*GlyphSize
	case KindLdB:
		return c.storeBCD(in.X)
	case KindLdIVx:
		return c.storeRegisters(in.X)
	case KindLdVxI:
		return c.loadRegisters(in.X)
	default:
		return &BadCodeErr{PC: at, Opcode: in.Op}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.PC += InstructionSize
	}
}

func (c *Chip8) call(addr, at uint16) error {
	// push return address
	if err := c.Stack.Push(at, c.PC); err != nil {
		return err
	}
	c.PC = addr & addressMask
	return nil
}

func (c *Chip8) ret(at uint16) error {
	// pop return address
	addr, err := c.Stack.Pop(at)
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}
