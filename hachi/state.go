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

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Stack is a fixed-capacity return address stack. Push writes at the
// pointer and then increments it, Pop decrements it and then reads.
type Stack struct {
	addrs []uint16
	sp    int
}

func newStack(size int) Stack { return Stack{addrs: make([]uint16, size)} }

// Push stores addr on top of the stack. It fails without modifying the
// stack when it's full.
func (s *Stack) Push(pc, addr uint16) error {
	if s.sp >= len(s.addrs) {
		return &StackOverflowErr{PC: pc, Depth: len(s.addrs)}
	}
	s.addrs[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the address on top of the stack.
func (s *Stack) Pop(pc uint16) (uint16, error) {
	if s.sp == 0 {
		return 0, &StackUnderflowErr{PC: pc}
	}
	s.sp--
	return s.addrs[s.sp], nil
}

// SP returns the stack pointer, which is also the number of pushed addresses.
func (s *Stack) SP() int { return s.sp }

// Cap returns the maximum amount of nested calls.
func (s *Stack) Cap() int { return len(s.addrs) }

// Addresses returns a copy of the pushed return addresses, bottom first.
func (s *Stack) Addresses() []uint16 {
	return append([]uint16(nil), s.addrs[:s.sp]...)
}

func (s *Stack) reset() {
	clear(s.addrs)
	s.sp = 0
}

// -----------------------------------------------------------------------------

// Display is a monochrome bitmap. The dirty flag is set whenever a pixel
// changes or the screen is cleared, and is only cleared by the renderer.
type Display struct {
	width, height int
	pixels        []bool
	dirty         bool
}

func newDisplay(width, height int) Display {
	return Display{
		width:  width,
		height: height,
		pixels: make([]bool, width*height),
	}
}

func (d *Display) Width() int  { return d.width }
func (d *Display) Height() int { return d.height }

// Pixel reports whether the pixel at x, y is set. Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[d.index(x, y)]
}

// Pixels returns a copy of the bitmap in row-major order.
func (d *Display) Pixels() []bool {
	return append([]bool(nil), d.pixels...)
}

// Dirty reports whether the bitmap changed since the last ClearDirty.
func (d *Display) Dirty() bool { return d.dirty }

// ClearDirty acknowledges that the current frame has been rendered.
func (d *Display) ClearDirty() { d.dirty = false }

func (d *Display) index(x, y int) int {
	x %= d.width
	if x < 0 {
		x += d.width
	}
	y %= d.height
	if y < 0 {
		y += d.height
	}
	return y*d.width + x
}

func (d *Display) clear() {
	clear(d.pixels)
	d.dirty = true
}

// flip toggles a pixel and reports whether it went from set to unset.
func (d *Display) flip(x, y int) bool {
	i := d.index(x, y)
	was := d.pixels[i]
	d.pixels[i] = !was
	d.dirty = true
	return was
}

// -----------------------------------------------------------------------------

// Timers holds the delay and sound timers. The emulator only reads and writes
// them; hosts count them down at 60hz with Decay.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Decay decrements both timers if they are non-zero.
func (t *Timers) Decay() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// -----------------------------------------------------------------------------

// Keypad is a hex keyboard with 16 keys. 8, 4, 6 and 2 are typically used
// for directional input.
type Keypad struct {
	keys [KeyCount]bool
}

// SetKey presses or releases key k.
func (k *Keypad) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return &KeyErr{Key: key}
	}
	k.keys[key] = pressed
	return nil
}

// Pressed reports whether key is held. Only the low nibble of key is used.
func (k *Keypad) Pressed(key uint8) bool { return k.keys[key&0x0F] }

// FirstPressed returns the lowest held key.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// SetState replaces the whole keypad with a bitfield, key 0 in the lowest
// bit. It is the inverse of State.
func (k *Keypad) SetState(state uint16) {
	for i := range k.keys {
		k.keys[i] = state&(1<<i) != 0
	}
}

// Release releases every key.
func (k *Keypad) Release() { k.keys = [KeyCount]bool{} }

// State returns the keypad as a bitfield, key 0 in the lowest bit.
func (k *Keypad) State() (res uint16) {
	for i, down := range k.keys {
		if down {
			res |= 1 << i
		}
	}
	return
}
