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

// Package termbox implements a terminal driver for hachi on top of termbox.
//
// The driver shows the current emulator state in real time next to the
// screen. Since terminals only report key presses, held keys are released
// automatically after a short delay. Esc or Ctrl+C quits.
package termbox

import (
	"context"
	"fmt"
	"time"

	"github.com/Francesco149/go-hachi/hachi"
	tb "github.com/nsf/termbox-go"
)

// releaseDelay is how long a key stays pressed after the terminal reported it.
const releaseDelay = 100 * time.Millisecond

// screen preview position
const screenX, screenY = 20, 5

// event log size
const logLines = 10

// DefaultKeyMap maps the left side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// arrows and enter for directional input
var specialKeys = map[tb.Key]uint8{
	tb.KeyArrowDown:  0x8,
	tb.KeyArrowLeft:  0x4,
	tb.KeyArrowRight: 0x6,
	tb.KeyArrowUp:    0x2,
	tb.KeyEnter:      0x5,
}

// A TermboxDriver is a terminal-based driver that uses termbox.
type TermboxDriver struct {
	KeyMap map[rune]uint8

	events  chan tb.Event
	done    chan struct{}
	held    map[uint8]time.Time
	log     []string
	beeping bool
	stack   int
}

// New returns a driver using DefaultKeyMap.
func New() *TermboxDriver {
	return &TermboxDriver{KeyMap: DefaultKeyMap}
}

// keyFor translates a terminal event to a keypad key.
func (d *TermboxDriver) keyFor(ev tb.Event) (uint8, bool) {
	if ev.Type != tb.EventKey {
		return 0, false
	}
	if ev.Ch != 0 {
		k, ok := d.KeyMap[ev.Ch]
		return k, ok
	}
	k, ok := specialKeys[ev.Key]
	return k, ok
}

func isQuit(ev tb.Event) bool {
	return ev.Type == tb.EventKey && (ev.Key == tb.KeyEsc || ev.Key == tb.KeyCtrlC)
}

func (d *TermboxDriver) printEvent(s string) {
	d.log = append([]string{s}, d.log...)
	if len(d.log) > logLines {
		d.log = d.log[:logLines]
	}
}

func (d *TermboxDriver) OnInit(c *hachi.Chip8) error {
	if err := tb.Init(); err != nil {
		return err
	}
	tb.SetInputMode(tb.InputEsc)

	d.events = make(chan tb.Event)
	d.done = make(chan struct{})
	d.held = make(map[uint8]time.Time)
	d.log = nil
	d.stack = c.Stack.Cap()

	go d.poll()

	d.drawScreen(c)
	return nil
}

// poll forwards terminal events until Close.
func (d *TermboxDriver) poll() {
	for {
		ev := tb.PollEvent()
		if ev.Type == tb.EventInterrupt {
			return
		}
		select {
		case d.events <- ev:
		case <-d.done:
			return
		}
	}
}

func (d *TermboxDriver) Close() error {
	close(d.done)
	tb.Interrupt()
	tb.Close()
	return nil
}

func (d *TermboxDriver) OnUpdate(c *hachi.Chip8) {
	d.updateKeys(&c.Keypad, time.Now())
	d.drawState(c)
}

// updateKeys copies the held keys into the keypad, releasing the ones that
// were last reported more than releaseDelay before now.
func (d *TermboxDriver) updateKeys(keypad *hachi.Keypad, now time.Time) {
	var state uint16
	for k, t := range d.held {
		if now.Sub(t) > releaseDelay {
			delete(d.held, k)
			continue
		}
		state |= 1 << k
	}
	keypad.SetState(state)
}

func (d *TermboxDriver) UpdateScreen(c *hachi.Chip8) {
	d.printEvent("DRW")
	d.drawScreen(c)
}

func (d *TermboxDriver) Beep(on bool) {
	d.beeping = on
	if on {
		d.printEvent("BEEP")
	}
}

func (d *TermboxDriver) Loop(ctx context.Context, frame func() error) error {
	ticker := time.NewTicker(hachi.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-d.events:
			if ev.Type == tb.EventError {
				return ev.Err
			}
			if isQuit(ev) {
				return nil
			}
			if k, ok := d.keyFor(ev); ok {
				d.held[k] = time.Now()
			}

		case <-ticker.C:
			if err := frame(); err != nil {
				return err
			}
			if err := tb.Flush(); err != nil {
				return err
			}
		}
	}
}

// -----------------------------------------------------------------------------

func printAt(x, y int, s string) {
	for i, r := range s {
		tb.SetCell(x+i, y, r, tb.ColorDefault, tb.ColorDefault)
	}
}

// drawState updates the chip info, stack and event log panels.
func (d *TermboxDriver) drawState(c *hachi.Chip8) {
	width, _ := tb.Size()
	blank := fmt.Sprintf("%*s", max(width-screenX, 0), "")

	printAt(0, 0, "Stack   Events")

	addrs := c.Stack.Addresses()
	for i := 0; i < d.stack; i++ {
		s := "    "
		if i < len(addrs) {
			s = fmt.Sprintf("%04X", addrs[i])
		}
		printAt(0, i+1, s)
	}

	for i := 0; i < logLines; i++ {
		s := "    "
		if i < len(d.log) {
			s = fmt.Sprintf("%-4s", d.log[i])
		}
		printAt(8, i+1, s)
	}

	info := []string{
		fmt.Sprintf("Memory: %v bytes", len(c.Memory)),
		fmt.Sprintf("Registers: % 02X", c.V),
		fmt.Sprintf("I: %04X SP: %v, PC: %04X, DT: %02X, ST: %02X",
			c.I, c.Stack.SP(), c.PC, c.Timers.Delay, c.Timers.Sound),
		fmt.Sprintf("Keyboard: %016b, Screen: %v*%v",
			c.Keypad.State(), c.Display.Width(), c.Display.Height()),
	}
	if c.Waiting() {
		info[3] += " (waiting for key)"
	}
	if d.beeping {
		info[3] += " BEEP"
	}
	for i, s := range info {
		printAt(screenX, i, blank)
		printAt(screenX, i, s)
	}
}

// drawScreen copies the screen buffer into the preview area.
func (d *TermboxDriver) drawScreen(c *hachi.Chip8) {
	for y := 0; y < c.Display.Height(); y++ {
		for x := 0; x < c.Display.Width(); x++ {
			bg := tb.ColorDefault
			if c.Display.Pixel(x, y) {
				bg = tb.ColorWhite
			}
			tb.SetCell(screenX+x, screenY+y, ' ', tb.ColorDefault, bg)
		}
	}
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("termbox", New()); err != nil {
		panic(err)
	}
}
