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
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestChip8 returns a machine with ops loaded at ProgramStart.
func newTestChip8(t *testing.T, legacy bool, ops ...uint16) *Chip8 {
	t.Helper()
	s := *DefaultSettings
	s.LegacyMode = legacy

	c, err := New(log.NewTestLogger(t), &s)
	assert.NoError(t, err)

	program := make([]byte, 0, len(ops)*InstructionSize)
	for _, op := range ops {
		program = append(program, byte(op>>8), byte(op))
	}
	assert.NoError(t, c.LoadRaw(program))
	return c
}

func execute(t *testing.T, c *Chip8, op Opcode) {
	t.Helper()
	assert.NoError(t, c.Execute(Decode(op)))
}

func TestNew(t *testing.T) {
	c, err := New(log.NewTestLogger(t), nil)
	assert.NoError(t, err)

	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, font[:], c.Memory[FontOffset:FontOffset+len(font)])
	assert.Equal(t, 16, c.Stack.Cap())
	assert.Equal(t, 0, c.Stack.SP())
	assert.Equal(t, 64, c.Display.Width())
	assert.Equal(t, 32, c.Display.Height())
	assert.False(t, c.Display.Dirty())
	assert.False(t, c.Waiting())
	assert.Equal(t, *DefaultSettings, c.Settings())
}

func TestNewInvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Chip8Settings
		contains string
	}{
		{"no stack", Chip8Settings{StackSize: 0, Width: 64, Height: 32}, "stack size"},
		{"narrow", Chip8Settings{StackSize: 16, Width: 7, Height: 32}, "width"},
		{"short", Chip8Settings{StackSize: 16, Width: 64, Height: 4}, "height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(log.NewTestLogger(t), &tt.settings)
			assert.ErrorContains(t, err, tt.contains)
			assert.Nil(t, c)
		})
	}
}

func TestReset(t *testing.T) {
	c := newTestChip8(t, false, 0x6205, 0x2200)
	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())
	c.Timers.Delay = 5
	assert.NoError(t, c.Keypad.SetKey(3, true))

	c.Reset()
	assert.Equal(t, uint8(0), c.V[2])
	assert.Equal(t, 0, c.Stack.SP())
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, Timers{}, c.Timers)
	assert.Equal(t, uint16(0), c.Keypad.State())
	assert.Equal(t, uint8(0), c.Memory[ProgramStart])
	assert.Equal(t, font[0], c.Memory[FontOffset])
}

func TestLoadRaw(t *testing.T) {
	c := newTestChip8(t, false, 0x1234, 0x5678)
	c.PC = 0x300

	assert.NoError(t, c.LoadRaw([]byte{0xAB}))
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, byte(0xAB), c.Memory[ProgramStart])
	// the rest of the previous program is gone
	assert.Equal(t, byte(0), c.Memory[ProgramStart+2])
}

func TestLoadRawOutOfMemory(t *testing.T) {
	c := newTestChip8(t, false, 0x1234)
	c.PC = 0x204

	err := c.LoadRaw(make([]byte, MemorySize-ProgramStart+1))
	var oom *OutOfMemoryErr
	assert.True(t, errors.As(err, &oom))
	assert.Equal(t, int64(MemorySize-ProgramStart+1), oom.ProgramSize)
	assert.Equal(t, MemorySize-ProgramStart, oom.FreeMemory)

	assert.Equal(t, byte(0x12), c.Memory[ProgramStart])
	assert.Equal(t, uint16(0x204), c.PC)

	// a program filling the whole free memory fits
	assert.NoError(t, c.LoadRaw(make([]byte, MemorySize-ProgramStart)))
}

func TestLoad(t *testing.T) {
	c := newTestChip8(t, false)
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0, 0x12, 0x00}, 0o600))

	size, err := c.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), size)
	assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x00}, c.Memory[ProgramStart:ProgramStart+4])

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	c := newTestChip8(t, false, 0xA2F0)

	op, err := c.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, Opcode(0xA2F0), op)
	assert.Equal(t, uint16(ProgramStart), c.PC)

	tests := []struct {
		name string
		pc   uint16
	}{
		{"misaligned", 0x201},
		{"past the end", MemorySize},
		{"far past the end", 0xFFFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.PC = tt.pc
			_, err := c.Fetch()
			var access *AccessErr
			assert.True(t, errors.As(err, &access))
			assert.Equal(t, tt.pc, access.Address)
			assert.Equal(t, tt.pc, c.PC)
		})
	}

	c.PC = MemorySize - InstructionSize
	_, err = c.Fetch()
	assert.NoError(t, err)
}

// -----------------------------------------------------------------------------

func TestStepLoadAdd(t *testing.T) {
	c := newTestChip8(t, false, 0x6205, 0x7210)
	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())

	assert.Equal(t, uint8(0x15), c.V[2])
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestStepLoadI(t *testing.T) {
	c := newTestChip8(t, false, 0xA2F0)
	assert.NoError(t, c.Step())

	assert.Equal(t, uint16(0x2F0), c.I)
	assert.Equal(t, uint16(0x202), c.PC)
}

func TestAddByteKeepsFlag(t *testing.T) {
	c := newTestChip8(t, false)
	c.V[0xF] = 0x55
	c.V[1] = 0xFF
	execute(t, c, 0x7102)

	assert.Equal(t, uint8(0x01), c.V[1])
	assert.Equal(t, uint8(0x55), c.V[0xF])
}

func TestJump(t *testing.T) {
	c := newTestChip8(t, false, 0x1228)
	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x228), c.PC)
	assert.Equal(t, 0, c.Stack.SP())
}

func TestCallReturnExecute(t *testing.T) {
	c := newTestChip8(t, false)
	c.PC = 0x2DA

	execute(t, c, 0x2001)
	assert.Equal(t, uint16(0x001), c.PC)
	assert.Equal(t, 1, c.Stack.SP())
	assert.Equal(t, []uint16{0x2DA}, c.Stack.Addresses())

	execute(t, c, 0x00EE)
	assert.Equal(t, uint16(0x2DA), c.PC)
	assert.Equal(t, 0, c.Stack.SP())
}

func TestCallReturnStep(t *testing.T) {
	c := newTestChip8(t, false,
		0x2206, // 200: CALL 206
		0x6101, // 202: LD V1,01
		0x1204, // 204: JP 204
		0x6203, // 206: LD V2,03
		0x00EE, // 208: RET
	)

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x206), c.PC)
	assert.Equal(t, []uint16{0x202}, c.Stack.Addresses())

	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, 0, c.Stack.SP())

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(1), c.V[1])
	assert.Equal(t, uint8(3), c.V[2])
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestStackOverflow(t *testing.T) {
	s := *DefaultSettings
	s.StackSize = 2
	c, err := New(log.NewTestLogger(t), &s)
	assert.NoError(t, err)
	assert.NoError(t, c.LoadRaw([]byte{0x22, 0x00})) // CALL 200

	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())

	err = c.Step()
	var overflow *StackOverflowErr
	assert.True(t, errors.As(err, &overflow))
	assert.Equal(t, uint16(0x200), overflow.PC)
	assert.Equal(t, 2, overflow.Depth)
	assert.Equal(t, uint16(0x200), c.PC)
	assert.Equal(t, 2, c.Stack.SP())
}

func TestStackUnderflow(t *testing.T) {
	c := newTestChip8(t, false, 0x00EE)

	err := c.Step()
	var underflow *StackUnderflowErr
	assert.True(t, errors.As(err, &underflow))
	assert.Equal(t, uint16(0x200), underflow.PC)
	assert.Equal(t, uint16(0x200), c.PC)
}

func TestBadCode(t *testing.T) {
	c := newTestChip8(t, false, 0x5121, 0x6105)
	c.V[1] = 0x42

	err := c.Step()
	var bad *BadCodeErr
	assert.True(t, errors.As(err, &bad))
	assert.Equal(t, uint16(0x200), bad.PC)
	assert.Equal(t, Opcode(0x5121), bad.Opcode)
	assert.Equal(t, uint16(0x200), c.PC)
	assert.Equal(t, uint8(0x42), c.V[1])

	c.SkipInstruction()
	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x05), c.V[1])
}

func TestSys(t *testing.T) {
	c := newTestChip8(t, false, 0x0123)
	before := *c

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, before.V, c.V)
	assert.Equal(t, before.I, c.I)
	assert.Equal(t, 0, c.Stack.SP())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name     string
		op       uint16
		setup    func(c *Chip8)
		expected uint16
	}{
		{"se byte taken", 0x3A12, func(c *Chip8) { c.V[0xA] = 0x12 }, 0x204},
		{"se byte not taken", 0x3A12, func(c *Chip8) { c.V[0xA] = 0x13 }, 0x202},
		{"sne byte taken", 0x4A12, func(c *Chip8) { c.V[0xA] = 0x13 }, 0x204},
		{"sne byte not taken", 0x4A12, func(c *Chip8) { c.V[0xA] = 0x12 }, 0x202},
		{"se reg taken", 0x5120, func(c *Chip8) { c.V[1], c.V[2] = 7, 7 }, 0x204},
		{"se reg not taken", 0x5120, func(c *Chip8) { c.V[1], c.V[2] = 7, 8 }, 0x202},
		{"sne reg taken", 0x9120, func(c *Chip8) { c.V[1], c.V[2] = 7, 8 }, 0x204},
		{"sne reg not taken", 0x9120, func(c *Chip8) { c.V[1], c.V[2] = 7, 7 }, 0x202},
		{"skp taken", 0xE19E, func(c *Chip8) {
			c.V[1] = 0x3
			_ = c.Keypad.SetKey(0x3, true)
		}, 0x204},
		{"skp uses low nibble", 0xE19E, func(c *Chip8) {
			c.V[1] = 0x13
			_ = c.Keypad.SetKey(0x3, true)
		}, 0x204},
		{"skp not taken", 0xE19E, func(c *Chip8) { c.V[1] = 0x3 }, 0x202},
		{"sknp taken", 0xE1A1, func(c *Chip8) { c.V[1] = 0x3 }, 0x204},
		{"sknp not taken", 0xE1A1, func(c *Chip8) {
			c.V[1] = 0x3
			_ = c.Keypad.SetKey(0x3, true)
		}, 0x202},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, false, tt.op)
			tt.setup(c)
			assert.NoError(t, c.Step())
			assert.Equal(t, tt.expected, c.PC)
		})
	}
}

func TestJumpV0(t *testing.T) {
	c := newTestChip8(t, false, 0xB300)
	c.V[0] = 0x10
	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x310), c.PC)

	c = newTestChip8(t, false, 0xBFFF)
	c.V[0] = 0xFF
	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0FE), c.PC)
}

func TestAddI(t *testing.T) {
	c := newTestChip8(t, false)
	c.I = 0x300
	c.V[1] = 0x10
	c.V[0xF] = 0x55
	execute(t, c, 0xF11E)
	assert.Equal(t, uint16(0x310), c.I)
	assert.Equal(t, uint8(0x55), c.V[0xF])

	c.I = 0xFFFF
	c.V[1] = 2
	execute(t, c, 0xF11E)
	assert.Equal(t, uint16(0x0001), c.I)
}

func TestLoadFont(t *testing.T) {
	c := newTestChip8(t, false)
	c.V[1] = 0xA
	execute(t, c, 0xF129)
	assert.Equal(t, uint16(0x32), c.I)

	c.V[1] = 0x1A
	execute(t, c, 0xF129)
	assert.Equal(t, uint16(0x32), c.I)
}

func TestRandom(t *testing.T) {
	c := newTestChip8(t, false)
	c.Rand = rand.New(rand.NewPCG(1, 2))
	mirror := rand.New(rand.NewPCG(1, 2))

	for range 32 {
		execute(t, c, 0xC30F)
		assert.Equal(t, uint8(mirror.Uint32())&0x0F, c.V[3])
	}
}

func TestTimerRegisters(t *testing.T) {
	c := newTestChip8(t, false)
	c.V[1] = 0x20
	c.V[2] = 0x30
	execute(t, c, 0xF115)
	execute(t, c, 0xF218)
	assert.Equal(t, Timers{Delay: 0x20, Sound: 0x30}, c.Timers)

	c.Timers.Decay()
	execute(t, c, 0xF307)
	assert.Equal(t, uint8(0x1F), c.V[3])
}

func TestString(t *testing.T) {
	c := newTestChip8(t, false)
	s := c.String()
	assert.Contains(t, s, "PC: 0200")
	assert.Contains(t, s, "Screen: 64*32")
}
