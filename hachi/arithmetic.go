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

// Flag writes happen after the result so VF always holds the flag, even when
// it is also the destination register.

func (c *Chip8) addRegister(x, y uint8) {
	result := uint16(c.V[x]) + uint16(c.V[y])

	// only store the 8 least significant bits
	c.V[x] = uint8(result)

	// carry flag
	if result&0xFF00 != 0 {
		c.V[0xF] = 1
	} else {
		c.V[0xF] = 0
	}
}

// subRegister stores V[a] - V[b] into V[dst]. VF is set to 1 when there is
// no borrow.
func (c *Chip8) subRegister(dst, a, b uint8) {
	var noBorrow uint8
	if c.V[a] >= c.V[b] {
		noBorrow = 1
	}
	c.V[dst] = c.V[a] - c.V[b]
	c.V[0xF] = noBorrow
}

// -----------------------------------------------------------------------------

// function pointers for the legacy mode switch
// (function pointers are a lot faster than if's)

type shiftMap map[bool]func(c *Chip8, x, y uint8)

var shl = shiftMap{
	false: func(c *Chip8, x, y uint8) {
		msb := c.V[x] >> 7
		c.V[x] <<= 1
		c.V[0xF] = msb
	},
	true: func(c *Chip8, x, y uint8) {
		msb := c.V[y] >> 7
		c.V[x] = c.V[y] << 1
		c.V[0xF] = msb
	},
}

var shr = shiftMap{
	false: func(c *Chip8, x, y uint8) {
		lsb := c.V[x] & 0x01
		c.V[x] >>= 1
		c.V[0xF] = lsb
	},
	true: func(c *Chip8, x, y uint8) {
		lsb := c.V[y] & 0x01
		c.V[x] = c.V[y] >> 1
		c.V[0xF] = lsb
	},
}

type memoryMap map[bool]func(c *Chip8, x uint8, mem []byte)

// mem is the already bounds checked range I..I+x
var ldMemory = memoryMap{
	false: func(c *Chip8, x uint8, mem []byte) {
		copy(c.V[:x+1], mem)
	},
	true: func(c *Chip8, x uint8, mem []byte) {
		copy(c.V[:x+1], mem)
		c.I += uint16(x) + 1
	},
}

var ldSetMemory = memoryMap{
	false: func(c *Chip8, x uint8, mem []byte) {
		copy(mem, c.V[:x+1])
	},
	true: func(c *Chip8, x uint8, mem []byte) {
		copy(mem, c.V[:x+1])
		c.I += uint16(x) + 1
	},
}
