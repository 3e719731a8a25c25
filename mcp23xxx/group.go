// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23xxx

import (
	"fmt"
	"strings"
)

// Group is a set of pins of one port read and written in a single
// transaction. Bit n of a group value is the n-th pin passed to Dev.Group.
type Group struct {
	dev         *Dev
	port        *port
	portIdx     int
	pins        []uint8
	defaultMask uint8
}

// Group returns a Group made up of the specified pins of port.
func (dev *Dev) Group(port int, pins ...int) (*Group, error) {
	if port < 0 || port >= len(dev.ports) || len(pins) == 0 || len(pins) > 8 {
		return nil, ErrInvalidPin
	}
	g := &Group{dev: dev, port: dev.ports[port], portIdx: port, pins: make([]uint8, len(pins))}
	for ix, number := range pins {
		if number < 0 || number >= len(dev.Pins[port]) {
			return nil, ErrInvalidPin
		}
		g.pins[ix] = uint8(number)
	}
	g.defaultMask = uint8((1 << len(pins)) - 1)
	return g, nil
}

// Pins returns the device pins that make up the group.
func (g *Group) Pins() []Pin {
	pins := make([]Pin, len(g.pins))
	for ix, number := range g.pins {
		pins[ix] = g.dev.Pins[g.portIdx][number]
	}
	return pins
}

// portMask converts a group relative mask into the absolute port mask.
func (g *Group) portMask(mask uint8) uint8 {
	var m uint8
	for bit, number := range g.pins {
		if mask&(1<<bit) != 0 {
			m |= 1 << number
		}
	}
	return m
}

func (g *Group) mask(mask uint8) uint8 {
	if mask == 0 {
		return g.defaultMask
	}
	return mask & g.defaultMask
}

// Out writes value to the pins of the group selected by mask. If mask is 0,
// all pins of the group are written. Pins not yet configured as outputs are
// transparently re-configured.
func (g *Group) Out(value, mask uint8) error {
	mask = g.mask(mask)
	wrMask := g.portMask(mask)
	wr := g.portMask(value & mask)

	dir, err := g.port.iodir.readValue(true)
	if err != nil {
		return err
	}
	if dir&wrMask != 0 {
		if err := g.port.iodir.writeValue(dir&^wrMask, true); err != nil {
			return err
		}
	}
	current, err := g.port.olat.readValue(true)
	if err != nil {
		return err
	}
	return g.port.olat.writeValue(current&^wrMask|wr, true)
}

// Read returns the state of the pins of the group selected by mask. If mask
// is 0, all pins of the group are read. Pins not yet configured as inputs are
// transparently re-configured.
func (g *Group) Read(mask uint8) (uint8, error) {
	mask = g.mask(mask)
	rMask := g.portMask(mask)

	dir, err := g.port.iodir.readValue(true)
	if err != nil {
		return 0, err
	}
	if dir&rMask != rMask {
		if err := g.port.iodir.writeValue(dir|rMask, true); err != nil {
			return 0, err
		}
	}
	v, err := g.port.gpio.readValue(false)
	if err != nil {
		return 0, err
	}
	var result uint8
	for ix, number := range g.pins {
		if mask&(1<<ix) != 0 && v&(1<<number) != 0 {
			result |= 1 << ix
		}
	}
	return result, nil
}

// String returns the device and configured pins for the group.
func (g *Group) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - [ ", g.dev)
	for _, number := range g.pins {
		fmt.Fprintf(&sb, "%d ", number)
	}
	sb.WriteString("]")
	return sb.String()
}
