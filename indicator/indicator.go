// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package indicator renders the state of the SwitchFram Feather switches on a
// terminal line using ANSI color codes.
//
// Useful while the board is in a box and you still want to see which DIP
// switches are closed.
package indicator

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the indicator.
type Opts struct {
	// W defaults to a color capable stdout.
	W       io.Writer
	Palette *ansi256.Palette
	// On and Off are the colors of closed and open DIP switches.
	On  color.NRGBA
	Off color.NRGBA

	_ struct{}
}

// DefaultOpts draws closed switches green and open ones dark grey.
var DefaultOpts = Opts{
	On:  color.NRGBA{0, 200, 0, 255},
	Off: color.NRGBA{48, 48, 48, 255},
}

// Dev is a one line console rendering of the board switches.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on      string
	off     string

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		palette: *p,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	d.on = d.palette.Block(opts.On)
	d.off = d.palette.Block(opts.Off)
	return d
}

func (d *Dev) String() string {
	return "Indicator"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves to the next line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the line with the 4 DIP switches, switch 0 first, followed by
// the BCD digit in hexadecimal.
func (d *Dev) Show(dip, bcd uint8) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := range 4 {
		if dip&(1<<i) != 0 {
			_, _ = io.WriteString(&d.buf, d.on)
		} else {
			_, _ = io.WriteString(&d.buf, d.off)
		}
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %X ", bcd&0xf)
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
