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

// Package cli handles command line interface logic.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Francesco149/go-hachi/hachi"
)

// Options holds the command line options of the emulator.
type Options struct {
	Input  string
	Driver string
	Cycles int
	Frames int

	Legacy bool
	Disasm bool
	Debug  bool
	Quiet  bool
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("hachi", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, msg: "no program given"}
	case len(rest) > 1:
		return opts, &UsageError{flags: flags,
			msg: fmt.Sprintf("unexpected argument %s after program, options go before it", rest[1])}
	}
	opts.Input = rest[0]

	if opts.Cycles < 1 {
		return opts, fmt.Errorf("cycles per frame must be >= 1, got %d", opts.Cycles)
	}
	if opts.Frames < 0 {
		return opts, fmt.Errorf("frame limit must be >= 0, got %d", opts.Frames)
	}
	return opts, nil
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text and the flag defaults to stdout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: hachi [options] <program>\n\n")
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Driver, "driver", "termbox", fmt.Sprintf("host driver to run the program with %v", hachi.Drivers()))
	flags.IntVar(&opts.Cycles, "cycles", hachi.DefaultCyclesPerFrame, "instructions executed per 60hz frame")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many frames with the null driver, 0 runs until interrupted")
	flags.BoolVar(&opts.Legacy, "legacy", false, "use the original interpreter's behaviour for shifts and register load/store")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the program instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
