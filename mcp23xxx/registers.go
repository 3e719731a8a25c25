// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23xxx

import "periph.io/x/conn/v3/i2c"

// Register addresses with IOCON.BANK cleared, which is the power-on default
// and the only layout the 8 bit variants have.
const (
	regIODIR   uint8 = 0x00 // 1: input, 0: output
	regIPOL    uint8 = 0x01 // 1: GPIO reflects the inverted pin level
	regGPINTEN uint8 = 0x02
	regDEFVAL  uint8 = 0x03
	regINTCON  uint8 = 0x04
	regIOCON   uint8 = 0x05
	regGPPU    uint8 = 0x06 // 1: 100kΩ pull-up enabled
	regINTF    uint8 = 0x07
	regINTCAP  uint8 = 0x08
	regGPIO    uint8 = 0x09 // pin levels on read, OLAT on write
	regOLAT    uint8 = 0x0A
)

type registerCache struct {
	i2c     *i2c.Dev
	address uint8
	got     bool
	cache   uint8
}

func newRegister(i2c *i2c.Dev, address uint8) registerCache {
	return registerCache{
		i2c:     i2c,
		address: address,
	}
}

func (r *registerCache) readValue(cached bool) (uint8, error) {
	if cached && r.got {
		return r.cache, nil
	}
	rx := [1]byte{}
	if err := r.i2c.Tx([]byte{r.address}, rx[:]); err != nil {
		return 0, err
	}
	r.got = true
	r.cache = rx[0]
	return rx[0], nil
}

func (r *registerCache) writeValue(value uint8, cached bool) error {
	if cached && r.got && value == r.cache {
		return nil
	}
	if err := r.i2c.Tx([]byte{r.address, value}, nil); err != nil {
		return err
	}
	r.got = true
	r.cache = value
	return nil
}

func (r *registerCache) getAndSetBit(bit uint8, value bool, cached bool) error {
	v, err := r.readValue(cached)
	if err != nil {
		return err
	}
	if value {
		v |= 1 << bit
	} else {
		v &^= 1 << bit
	}
	return r.writeValue(v, cached)
}

func (r *registerCache) getBit(bit uint8, cached bool) (bool, error) {
	v, err := r.readValue(cached)
	return (v & (1 << bit)) != 0, err
}
