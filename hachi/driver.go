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
	"fmt"
	"maps"
	"slices"
	"time"
)

// A Driver is an interface through which a host displays the machine and
// feeds it input. Drivers should be registered by the RegisterDriver function
// in init().
type Driver interface {
	// Called once before the first frame.
	OnInit(c *Chip8) error
	// Called at the start of every frame, should be used for input polling
	// and similar tasks.
	OnUpdate(c *Chip8)
	// Called when the screen buffer changed since the last frame.
	UpdateScreen(c *Chip8)
	// Called when the sound timer starts (true) or stops (false) running.
	Beep(on bool)
	// Loop calls frame FrameRate times per second until ctx is done, frame
	// returns an error or the user quits.
	Loop(ctx context.Context, frame func() error) error
	// Releases whatever OnInit acquired.
	Close() error
}

// -----------------------------------------------------------------------------

var drivers map[string]Driver

// RegisterDriver registers a driver to a name. The driver can then be looked
// up with LookupDriver.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func RegisterDriver(name string, drv Driver) error {
	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = drv
	return nil
}

// UnregisterDriver unloads a previously registered driver.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func UnregisterDriver(name string) error {
	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// LookupDriver returns the driver registered to name.
func LookupDriver(name string) (Driver, error) {
	drv := drivers[name]
	if drv == nil {
		return nil, fmt.Errorf("driver %s not found (available: %v)",
			name, Drivers())
	}
	return drv, nil
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	return slices.Sorted(maps.Keys(drivers))
}

// -----------------------------------------------------------------------------

// A NullDriver is a headless driver which ignores all calls. It runs frames
// until the context is cancelled, or for MaxFrames frames if it's non-zero.
type NullDriver struct {
	MaxFrames int
}

func (d *NullDriver) OnInit(c *Chip8) error { return nil }
func (d *NullDriver) OnUpdate(c *Chip8)     {}
func (d *NullDriver) UpdateScreen(c *Chip8) {}
func (d *NullDriver) Beep(on bool)          {}
func (d *NullDriver) Close() error          { return nil }

func (d *NullDriver) Loop(ctx context.Context, frame func() error) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for n := 0; d.MaxFrames == 0 || n < d.MaxFrames; n++ {
		if err := frame(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	drivers = make(map[string]Driver)

	if err := RegisterDriver("null", &NullDriver{}); err != nil {
		panic(err)
	}
}
