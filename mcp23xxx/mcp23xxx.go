// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23xxx

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// Variant is the chip model.
type Variant string

const (
	// MCP23008 has 8 push-pull GPIOs.
	MCP23008 Variant = "MCP23008"
	// MCP23009 has 8 open-drain GPIOs.
	MCP23009 Variant = "MCP23009"

	// DefaultAddress is the address with A0..A2 tied low.
	DefaultAddress uint16 = 0x20
)

// ErrInvalidPin is returned when a pin number is out of range for the device.
var ErrInvalidPin = errors.New("mcp23xxx: invalid pin")

// Dev is an MCP23XXX I²C GPIO expander. Pins is structured as [port][pin];
// the 8 bit variants have a single port.
type Dev struct {
	Pins [][]Pin

	variant Variant
	addr    uint16
	ports   []*port
}

// NewI2C returns a device object that communicates over I²C. addr must be
// in the range 0x20 to 0x27.
func NewI2C(bus i2c.Bus, variant Variant, addr uint16) (*Dev, error) {
	switch variant {
	case MCP23008, MCP23009:
	default:
		return nil, fmt.Errorf("mcp23xxx: unsupported variant %q", string(variant))
	}
	if addr < 0x20 || addr > 0x27 {
		return nil, fmt.Errorf("mcp23xxx: address 0x%02x not supported by %s", addr, string(variant))
	}
	d := &i2c.Dev{Bus: bus, Addr: addr}
	dev := &Dev{variant: variant, addr: addr}
	p := &port{
		name:  string(variant) + "_" + strconv.FormatInt(int64(addr), 16) + "_P0",
		iodir: newRegister(d, regIODIR),
		ipol:  newRegister(d, regIPOL),
		gppu:  newRegister(d, regGPPU),
		gpio:  newRegister(d, regGPIO),
		olat:  newRegister(d, regOLAT),
	}
	// pre-cache iodir
	if _, err := p.iodir.readValue(false); err != nil {
		return nil, err
	}
	dev.ports = []*port{p}
	dev.Pins = [][]Pin{p.pins(8)}
	for _, pin := range dev.Pins[0] {
		// Ignore registration failure.
		_ = gpioreg.Register(pin)
	}
	return dev, nil
}

// ConfigureInputPullup sets pin of port 0 as an input with the internal
// pull-up enabled.
func (dev *Dev) ConfigureInputPullup(pin int) error {
	if pin < 0 || pin >= len(dev.Pins[0]) {
		return ErrInvalidPin
	}
	return dev.Pins[0][pin].In(gpio.PullUp, gpio.NoEdge)
}

// ReadAll returns the level of all pins of port 0 in a single transaction.
// Bit n is pin n. Pins configured as outputs report the output latch.
func (dev *Dev) ReadAll() (uint8, error) {
	return dev.ports[0].gpio.readValue(false)
}

// Close removes any registration to the device.
func (dev *Dev) Close() error {
	for _, port := range dev.Pins {
		for _, pin := range port {
			if err := gpioreg.Unregister(pin.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s{addr: 0x%02x}", string(dev.variant), dev.addr)
}
