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

// An OutOfMemoryErr is returned upon attempting to load a program that
// exceeds the memory's capacity. Memory is left untouched.
type OutOfMemoryErr struct {
	ProgramSize int64
	FreeMemory  int
}

func (e *OutOfMemoryErr) Error() string {
	return fmt.Sprintf("not enough memory (program size: %v, free memory: %v)",
		e.ProgramSize, e.FreeMemory)
}

// A StackOverflowErr is returned when a call is made with a full stack.
type StackOverflowErr struct {
	PC    uint16
	Depth int
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow at %04X (depth %v)", e.PC, e.Depth)
}

// A StackUnderflowErr is returned when a return is executed with an empty
// stack.
type StackUnderflowErr struct {
	PC uint16
}

func (e *StackUnderflowErr) Error() string {
	return fmt.Sprintf("stack underflow at %04X", e.PC)
}

// A BadCodeErr is returned when the emulator tries to execute an opcode that
// is not part of the instruction set.
type BadCodeErr struct {
	PC     uint16
	Opcode Opcode
}

func (e *BadCodeErr) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %04X", uint16(e.Opcode), e.PC)
}

// An AccessErr is returned when the program tries to access memory outside
// of the address space, or fetches from a misaligned program counter.
type AccessErr struct {
	Address uint16
	Size    int
	Reason  string
}

func (e *AccessErr) Error() string {
	return fmt.Sprintf("invalid memory access at %04X (%v bytes): %s",
		e.Address, e.Size, e.Reason)
}

// A KeyErr is returned when the host refers to a key outside of 0x0~0xF.
type KeyErr struct {
	Key uint8
}

func (e *KeyErr) Error() string {
	return fmt.Sprintf("invalid key %X", e.Key)
}
