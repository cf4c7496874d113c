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

// Package main implements hachi, a CHIP-8 emulator and disassembler.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	_ "github.com/Francesco149/go-hachi/drivers"
	"github.com/Francesco149/go-hachi/hachi"
	"github.com/Francesco149/go-hachi/internal/cli"
	"github.com/Francesco149/go-hachi/internal/config"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fmt.Printf("hachi %s %s: %s\n", version, commit, usageErr)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Fatal(err.Error())
	}
}

func run(ctx context.Context, logger *log.Logger, opts cli.Options) error {
	settings := *hachi.DefaultSettings
	settings.LegacyMode = opts.Legacy

	c, err := hachi.New(logger, &settings)
	if err != nil {
		return err
	}
	size, err := c.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.Input, err)
	}

	if opts.Disasm {
		return printListing(os.Stdout, c.Memory[hachi.ProgramStart:hachi.ProgramStart+size])
	}

	drv, err := hachi.LookupDriver(opts.Driver)
	if err != nil {
		return err
	}
	switch d := drv.(type) {
	case *hachi.NullDriver:
		d.MaxFrames = opts.Frames
	default:
		if opts.Driver == "termbox" && !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("the termbox driver needs a terminal, try -driver null or -disasm")
		}
	}

	logger.Debug("Starting emulation",
		log.String("driver", opts.Driver),
		log.String("cycles", fmt.Sprint(opts.Cycles)))
	return hachi.NewRunner(logger, c, drv, opts.Cycles).Run(ctx)
}

// printListing writes a disassembly of program to w, one line per
// instruction.
func printListing(w io.Writer, program []byte) error {
	lines, err := hachi.Disassemble(program, hachi.ProgramStart)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 8, 8, 0, '\t', 0)
	fmt.Fprintln(tw, "addr\tlabel\topcode\tpseudo-code\tascii\tdescription\t")

	for _, l := range lines {
		asciitext := ""
		if ascii := l.ASCII(); len(ascii) != 0 {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if l.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		fmt.Fprintf(tw, "%04X\t%s\t"+opcodeFormatter+"\t%v\t%s\t%s\n",
			l.Address, l.Label, l.Opcode(), l, asciitext, l.Description())
	}

	return tw.Flush()
}
