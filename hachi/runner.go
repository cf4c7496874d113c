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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate at which hosts render frames and count down the
// timers.
const FrameRate = 60

// FrameInterval is the time between two frames.
const FrameInterval = time.Second / FrameRate

// DefaultCyclesPerFrame gives roughly 600 instructions per second.
const DefaultCyclesPerFrame = 10

// Runner is the host loop gluing a Chip8 to a Driver. Each frame polls the
// driver for input, runs CyclesPerFrame steps, counts the timers down and
// hands the screen to the driver when it changed.
type Runner struct {
	Chip8          *Chip8
	Driver         Driver
	CyclesPerFrame int

	logger  *log.Logger
	beeping bool
	frames  uint64
}

// NewRunner returns a runner for c and drv. A cycles value < 1 selects
// DefaultCyclesPerFrame.
func NewRunner(logger *log.Logger, c *Chip8, drv Driver, cycles int) *Runner {
	if cycles < 1 {
		cycles = DefaultCyclesPerFrame
	}
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	return &Runner{
		Chip8:          c,
		Driver:         drv,
		CyclesPerFrame: cycles,
		logger:         logger,
	}
}

// Frames returns the number of frames completed so far.
func (r *Runner) Frames() uint64 { return r.frames }

// Frame runs a single frame.
func (r *Runner) Frame() error {
	c := r.Chip8
	r.Driver.OnUpdate(c)

	for i := 0; i < r.CyclesPerFrame; i++ {
		if err := c.Step(); err != nil {
			return fmt.Errorf("frame %v: %w", r.frames, err)
		}
		// no point in polling the same keypad state again
		if c.Waiting() {
			break
		}
	}

	c.Timers.Decay()
	if beeping := c.Timers.Sound > 0; beeping != r.beeping {
		r.beeping = beeping
		r.Driver.Beep(beeping)
	}

	if c.Display.Dirty() {
		r.Driver.UpdateScreen(c)
		c.Display.ClearDirty()
	}

	r.frames++
	return nil
}

// Run initializes the driver and lets it drive frames until ctx is done or
// the machine fails. Cancellation is not reported as an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err = r.Driver.OnInit(r.Chip8); err != nil {
		return fmt.Errorf("initializing driver: %w", err)
	}
	defer func() {
		if cerr := r.Driver.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing driver: %w", cerr)
		}
	}()

	err = r.Driver.Loop(ctx, r.Frame)
	if errors.Is(err, context.Canceled) {
		r.logger.Info("Emulation stopped", log.String("frames", fmt.Sprint(r.frames)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("emulation failed: %w (state %s)", err, r.Chip8)
	}
	return nil
}
