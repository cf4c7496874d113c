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

// draw XORs rows bytes of sprite data at I onto the screen at VX,VY.
// Coordinates wrap around the screen edges, that's how the chip-8 handles
// drawing.
func (c *Chip8) draw(x, y, rows uint8) error {
	sprite, err := c.span(c.I, int(rows), "sprite read")
	if err != nil {
		return err
	}

	ox, oy := int(c.V[x]), int(c.V[y])
	var collision uint8

	for row, bits := range sprite {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			// set VF to 1 if any pixels were cleared
			if c.Display.flip(ox+col, oy+row) {
				collision = 1
			}
		}
	}

	c.V[0xF] = collision
	return nil
}

// waitKey polls the keypad once. While no key is held the program counter
// is moved back onto the instruction so the next Step polls again and the
// host gets a chance to update the keypad in between.
func (c *Chip8) waitKey(x uint8, at uint16) {
	key, ok := c.Keypad.FirstPressed()
	if !ok {
		if !c.waiting {
			c.logger.Debug("Waiting for key press",
				log.Hex("pc", at), log.Uint8("register", x))
		}
		c.waiting = true
		c.PC -= InstructionSize
		return
	}
	c.waiting = false
	c.V[x] = key
}

func (c *Chip8) storeBCD(x uint8) error {
	mem, err := c.writable(c.I, 3, "BCD store")
	if err != nil {
		return err
	}
	value := c.V[x]
	mem[2] = value % 10 // ones
	value /= 10
	mem[1] = value % 10 // tens
	mem[0] = value / 10 // hundreds
	return nil
}

// copy V0-VX to memory
func (c *Chip8) storeRegisters(x uint8) error {
	mem, err := c.writable(c.I, int(x)+1, "register store")
	if err != nil {
		return err
	}
	c.pLdSetMemory(c, x, mem)
	return nil
}

// copy memory to V0-VX
func (c *Chip8) loadRegisters(x uint8) error {
	mem, err := c.span(c.I, int(x)+1, "register load")
	if err != nil {
		return err
	}
	c.pLdMemory(c, x, mem)
	return nil
}

// writable is span for writes, which may not touch the interpreter area
// holding the font.
func (c *Chip8) writable(addr uint16, n int, reason string) ([]byte, error) {
	if addr < ProgramStart {
		return nil, &AccessErr{Address: addr, Size: n,
			Reason: reason + " into protected memory"}
	}
	return c.span(addr, n, reason)
}
