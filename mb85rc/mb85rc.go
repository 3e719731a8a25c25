// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mb85rc provides a driver for the Fujitsu MB85RC256V 32KiB I²C
// ferroelectric RAM.
//
// FRAM needs no erase cycle and no page buffering, so Dev behaves as a plain
// io.ReaderAt/io.WriterAt over the whole array.
//
// # Datasheet
//
// https://www.fujitsu.com/uk/Images/MB85RC256V-DS501-00017-3v0-E.pdf
package mb85rc

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultAddress is the address with A0..A2 tied low.
	DefaultAddress uint16 = 0x50

	// Size is the capacity of the MB85RC256V in bytes.
	Size = 32 * 1024

	// Device ID reads go to this reserved address with the device address as
	// payload.
	deviceIDAddress uint16 = 0xF8 >> 1

	manufacturerFujitsu uint16 = 0x00A
	densityMB85RC256V   uint16 = 0x5

	// Bytes per transaction, leaving room for the 2 address bytes within a
	// 32 byte bus buffer.
	chunkSize = 30
)

var (
	// ErrUnknownDevice is returned by Begin when the device ID does not match
	// an MB85RC256V.
	ErrUnknownDevice = errors.New("mb85rc: unknown device")
	// ErrOutOfRange is returned when an access falls outside the array.
	ErrOutOfRange = errors.New("mb85rc: access out of range")
)

// Dev is a handle to an MB85RC256V FRAM.
type Dev struct {
	mu   sync.Mutex
	d    *i2c.Dev
	addr uint16
}

// New returns a Dev for the FRAM at addr. No bus transaction is done until
// Begin or the first access.
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	if addr < 0x50 || addr > 0x57 {
		return nil, fmt.Errorf("mb85rc: address 0x%02x not supported", addr)
	}
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: addr}, addr: addr}, nil
}

// Begin verifies the device is present and is an MB85RC256V.
func (dev *Dev) Begin() error {
	id, err := dev.DeviceID()
	if err != nil {
		return err
	}
	if id.Manufacturer != manufacturerFujitsu || id.Product>>8 != densityMB85RC256V {
		return fmt.Errorf("%w: manufacturer 0x%03x product 0x%03x", ErrUnknownDevice, id.Manufacturer, id.Product)
	}
	return nil
}

// DeviceID is the identification returned by the chip.
type DeviceID struct {
	Manufacturer uint16 // 12 bits
	Product      uint16 // 12 bits, density in the upper nibble
}

// DeviceID reads the manufacturer and product identification.
func (dev *Dev) DeviceID() (DeviceID, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := [3]byte{}
	if err := dev.d.Bus.Tx(deviceIDAddress, []byte{byte(dev.addr << 1)}, r[:]); err != nil {
		return DeviceID{}, fmt.Errorf("mb85rc: reading device id: %w", err)
	}
	return DeviceID{
		Manufacturer: uint16(r[0])<<4 | uint16(r[1])>>4,
		Product:      uint16(r[1]&0x0F)<<8 | uint16(r[2]),
	}, nil
}

// Size returns the capacity in bytes.
func (dev *Dev) Size() int64 {
	return Size
}

func checkRange(off int64, n int) error {
	if off < 0 || int64(n) > Size || off > Size-int64(n) {
		return ErrOutOfRange
	}
	return nil
}

// ReadAt implements io.ReaderAt.
func (dev *Dev) ReadAt(p []byte, off int64) (int, error) {
	if err := checkRange(off, len(p)); err != nil {
		return 0, err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	n := 0
	for n < len(p) {
		end := min(n+chunkSize, len(p))
		a := uint16(off) + uint16(n)
		if err := dev.d.Tx([]byte{byte(a >> 8), byte(a)}, p[n:end]); err != nil {
			return n, err
		}
		n = end
	}
	return n, nil
}

// WriteAt implements io.WriterAt.
func (dev *Dev) WriteAt(p []byte, off int64) (int, error) {
	if err := checkRange(off, len(p)); err != nil {
		return 0, err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	n := 0
	w := make([]byte, 2, 2+chunkSize)
	for n < len(p) {
		end := min(n+chunkSize, len(p))
		a := uint16(off) + uint16(n)
		w = append(w[:0], byte(a>>8), byte(a))
		w = append(w, p[n:end]...)
		if err := dev.d.Tx(w, nil); err != nil {
			return n, err
		}
		n = end
	}
	return n, nil
}

// Erase sets the whole array to 0x00.
func (dev *Dev) Erase() error {
	zero := make([]byte, chunkSize*32)
	for off := int64(0); off < Size; off += int64(len(zero)) {
		n := min(int64(len(zero)), Size-off)
		if _, err := dev.WriteAt(zero[:n], off); err != nil {
			return err
		}
	}
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("MB85RC256V{addr: 0x%02x}", dev.addr)
}

var _ io.ReaderAt = &Dev{}
var _ io.WriterAt = &Dev{}
