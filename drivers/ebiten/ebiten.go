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

// Package ebiten implements a windowed driver for hachi on top of ebiten.
//
// Keys 1-4, Q-R, A-F and Z-V form the hex keypad, Escape closes the window.
// The status line turns red while the sound timer runs.
package ebiten

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/Francesco149/go-hachi/hachi"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Scale is the size of a CHIP-8 pixel in window pixels.
const Scale = 10

const statusHeight = 20

var (
	colorOn   = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	colorOff  = color.RGBA{0x10, 0x10, 0x10, 0xFF}
	colorText = color.RGBA{0xA0, 0xA0, 0xA0, 0xFF}
	colorBeep = color.RGBA{0xFF, 0x40, 0x40, 0xFF}
)

// DefaultKeyMap maps the left side of a QWERTY keyboard to the hex keypad.
var DefaultKeyMap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// An EbitenDriver renders the screen into a window.
type EbitenDriver struct {
	KeyMap map[ebiten.Key]uint8

	width, height int
	pixels        []byte // RGBA copy of the screen buffer
	screen        *ebiten.Image
	status        string
	beeping       bool

	ctx   context.Context
	frame func() error
	err   error
}

// New returns a driver using DefaultKeyMap.
func New() *EbitenDriver {
	return &EbitenDriver{KeyMap: DefaultKeyMap}
}

func (d *EbitenDriver) OnInit(c *hachi.Chip8) error {
	d.width, d.height = c.Display.Width(), c.Display.Height()
	d.pixels = make([]byte, d.width*d.height*4)
	d.screen = nil
	fillPixels(d.pixels, &c.Display)

	ebiten.SetWindowSize(d.width*Scale, d.height*Scale+statusHeight)
	ebiten.SetWindowTitle("hachi")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(hachi.FrameRate)
	return nil
}

func (d *EbitenDriver) OnUpdate(c *hachi.Chip8) {
	var state uint16
	for key, k := range d.KeyMap {
		if ebiten.IsKeyPressed(key) {
			state |= 1 << (k & 0x0F)
		}
	}
	c.Keypad.SetState(state)
	d.status = fmt.Sprintf("PC %04X  I %04X  DT %02X  ST %02X",
		c.PC, c.I, c.Timers.Delay, c.Timers.Sound)
	if c.Waiting() {
		d.status += "  KEY?"
	}
}

func (d *EbitenDriver) UpdateScreen(c *hachi.Chip8) {
	fillPixels(d.pixels, &c.Display)
}

func (d *EbitenDriver) Beep(on bool) { d.beeping = on }

func (d *EbitenDriver) Close() error { return nil }

// Loop hands control to ebiten, which calls Update at FrameRate.
func (d *EbitenDriver) Loop(ctx context.Context, frame func() error) error {
	d.ctx, d.frame, d.err = ctx, frame, nil

	err := ebiten.RunGame(d)
	if d.err != nil {
		return d.err
	}
	if errors.Is(err, ebiten.Termination) {
		return ctx.Err()
	}
	return err
}

// -----------------------------------------------------------------------------

// Update implements ebiten.Game.
func (d *EbitenDriver) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := d.frame(); err != nil {
		d.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (d *EbitenDriver) Draw(screen *ebiten.Image) {
	if d.screen == nil {
		d.screen = ebiten.NewImage(d.width, d.height)
	}
	d.screen.WritePixels(d.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(Scale, Scale)
	screen.DrawImage(d.screen, op)

	clr := colorText
	if d.beeping {
		clr = colorBeep
	}
	text.Draw(screen, d.status, basicfont.Face7x13, 4, d.height*Scale+14, clr)
}

// Layout implements ebiten.Game.
func (d *EbitenDriver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.width * Scale, d.height*Scale + statusHeight
}

// fillPixels converts the screen buffer to RGBA.
func fillPixels(dst []byte, disp *hachi.Display) {
	for i, on := range disp.Pixels() {
		c := colorOff
		if on {
			c = colorOn
		}
		dst[i*4], dst[i*4+1], dst[i*4+2], dst[i*4+3] = c.R, c.G, c.B, c.A
	}
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("ebiten", New()); err != nil {
		panic(err)
	}
}
