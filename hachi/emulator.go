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

// Package hachi implements various CHIP-8 utilities, including an emulator,
// a disassembler and the glue needed to drive them from a host.
package hachi

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout.
const (
	// MemorySize is the size of the address space. Addresses are 12 bits.
	MemorySize = 0x1000
	// ProgramStart is where programs are loaded and start executing.
	// The original interpreter occupied the first 512 bytes.
	ProgramStart = 0x200
	// FontOffset is where the built-in hex font is stored.
	FontOffset = 0x000
	// GlyphSize is the size in bytes of a single font character.
	GlyphSize = 5
)

const addressMask = MemorySize - 1

var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// -----------------------------------------------------------------------------

// Chip8Settings holds the configuration parameters for a Chip8 instance.
type Chip8Settings struct {
	// Stack size. Defines the maximum amount of nested calls.
	StackSize int
	// Screen width and height in pixels.
	Width, Height uint8
	// Enables old behaviour for SHL VX,VY , SHR VX,VY , LD [I],VX and LD VX,[I]
	LegacyMode bool
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Chip8Settings) Validate() error {
	if s.StackSize < 1 {
		return fmt.Errorf("stack size must be >= 1, got %v", s.StackSize)
	}
	if s.Width < 8 {
		return fmt.Errorf("width must be >= 8, got %v", s.Width)
	}
	if s.Height < GlyphSize {
		return fmt.Errorf("height must be >= %v, got %v", GlyphSize, s.Height)
	}
	return nil
}

// The default settings for Chip8, which mimick the common CHIP-8
// implementations.
var DefaultSettings = &Chip8Settings{
	StackSize: 16,
	Width:     64, Height: 32,
	LegacyMode: false,
}

// -----------------------------------------------------------------------------

// Chip8 is an implementation of a CHIP-8 emulator. It holds the state of the
// virtual machine. It is not safe for concurrent use: the host owns the
// instance and is the only one calling Step.
type Chip8 struct {
	// The memory where programs are loaded and executed.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as a carry flag.
	V [16]uint8
	// 16-bit address register. Used for memory operations.
	I uint16
	// Program counter. Holds the address of the next instruction to fetch.
	PC uint16
	// The call stack, which holds return addresses.
	Stack Stack
	// Timers are never decremented by the emulator itself. DT is intended
	// to be used for timing events in games, while ST makes a beeping sound
	// as long as its value is non-zero.
	Timers Timers
	// Keypad is written by the host between steps.
	Keypad Keypad
	// Display is the screen buffer. The official resolution is 64x32.
	Display Display
	// Rand is the source for RND VX,NN.
	Rand *rand.Rand

	logger   *log.Logger
	settings Chip8Settings
	waiting  bool

	pLdMemory, pLdSetMemory func(c *Chip8, x uint8, mem []byte)
	pShr, pShl              func(c *Chip8, x, y uint8)
}

// New initializes a new instance of Chip8 with the given settings. If settings
// is nil, DefaultSettings will be used.
func New(logger *log.Logger, s *Chip8Settings) (*Chip8, error) {
	if s == nil {
		s = DefaultSettings
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	c := &Chip8{
		Stack:    newStack(s.StackSize),
		Display:  newDisplay(int(s.Width), int(s.Height)),
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   logger,
		settings: *s,

		pLdMemory:    ldMemory[s.LegacyMode],
		pLdSetMemory: ldSetMemory[s.LegacyMode],
		pShr:         shr[s.LegacyMode],
		pShl:         shl[s.LegacyMode],
	}
	c.Reset()

	logger.Debug("Machine initialized",
		log.String("screen", fmt.Sprintf("%vx%v", s.Width, s.Height)),
		log.String("stack", fmt.Sprint(s.StackSize)))
	return c, nil
}

// Reset zeroes the whole machine state, reloads the font and points the
// program counter at ProgramStart.
func (c *Chip8) Reset() {
	c.Memory = [MemorySize]byte{}
	copy(c.Memory[FontOffset:], font[:])
	c.V = [16]uint8{}
	c.I = 0
	c.PC = ProgramStart
	c.Stack.reset()
	c.Timers = Timers{}
	c.Keypad.Release()
	c.Display.clear()
	c.Display.ClearDirty()
	c.waiting = false
}

// Settings returns the settings the instance was created with.
func (c *Chip8) Settings() Chip8Settings { return c.settings }

// String returns formatted information about the instance of the emulator.
func (c *Chip8) String() string {
	return fmt.Sprintf("Chip8{Memory: %v bytes, Registers: [% 02X] I: %04X, "+
		"Stack: % 04X, SP: %v, PC: %04X, DT: %02X, ST: %02X, "+
		"Keyboard: %016b, Screen: %v*%v}",
		len(c.Memory), c.V, c.I, c.Stack.Addresses(), c.Stack.SP(), c.PC,
		c.Timers.Delay, c.Timers.Sound, c.Keypad.State(),
		c.Display.Width(), c.Display.Height())
}

// Load opens a CHIP-8 binary file and loads it into memory.
// Returns the size, in bytes, of the program and an error if any.
func (c *Chip8) Load(path string) (size int64, err error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	size = int64(len(program))

	if err = c.LoadRaw(program); err != nil {
		return size, err
	}
	c.logger.Info("Loaded program",
		log.String("path", path),
		log.String("size", fmt.Sprint(size)))
	return size, nil
}

// LoadRaw loads a byte array as a CHIP-8 binary into memory at ProgramStart
// and points the program counter at it. Oversized programs are rejected
// before anything is written.
func (c *Chip8) LoadRaw(program []byte) error {
	free := len(c.Memory) - ProgramStart
	if len(program) > free {
		return &OutOfMemoryErr{ProgramSize: int64(len(program)), FreeMemory: free}
	}
	clear(c.Memory[ProgramStart:])
	copy(c.Memory[ProgramStart:], program)
	c.PC = ProgramStart
	c.waiting = false
	c.logger.Debug("Copied program into memory",
		log.Hex("address", uint16(ProgramStart)),
		log.String("size", fmt.Sprint(len(program))))
	return nil
}

// Waiting reports whether the machine is blocked on LD VX,K.
func (c *Chip8) Waiting() bool { return c.waiting }

// -----------------------------------------------------------------------------

// Fetch reads the opcode at the program counter without executing it.
func (c *Chip8) Fetch() (Opcode, error) {
	if c.PC%InstructionSize != 0 {
		return 0, &AccessErr{Address: c.PC, Size: InstructionSize,
			Reason: "misaligned program counter"}
	}
	b, err := c.span(c.PC, InstructionSize, "instruction fetch")
	if err != nil {
		return 0, err
	}
	return Opcode(uint16(b[0])<<8 | uint16(b[1])), nil
}

// Step runs one fetch-decode-execute cycle. On error the program counter is
// left on the faulting instruction and no other state has been modified.
func (c *Chip8) Step() error {
	pc := c.PC
	op, err := c.Fetch()
	if err != nil {
		return err
	}

	c.PC += InstructionSize
	if err = c.execute(Decode(op), pc); err != nil {
		c.PC = pc
		return err
	}
	return nil
}

// Execute runs a decoded instruction as if it had just been fetched, which
// means PC is expected to already point past it.
func (c *Chip8) Execute(in Instruction) error {
	return c.execute(in, c.PC-InstructionSize)
}

// SkipInstruction moves the program counter past the current instruction.
// Hosts can use it to resume after a BadCodeErr.
func (c *Chip8) SkipInstruction() {
	c.PC += InstructionSize
	c.waiting = false
}

// span returns n bytes of memory starting at addr.
func (c *Chip8) span(addr uint16, n int, reason string) ([]byte, error) {
	if int(addr)+n > len(c.Memory) {
		return nil, &AccessErr{Address: addr, Size: n, Reason: reason}
	}
	return c.Memory[addr : int(addr)+n], nil
}
