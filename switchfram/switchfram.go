// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package switchfram

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GermanBionicSystems/switchfram/mb85rc"
	"github.com/GermanBionicSystems/switchfram/mcp23xxx"
	"github.com/benbjohnson/clock"
	"periph.io/x/conn/v3/i2c"
)

// DigitalInputBank is an 8 line GPIO port.
type DigitalInputBank interface {
	// ConfigureInputPullup sets pin as an input with pull-up enabled.
	ConfigureInputPullup(pin int) error
	// ReadAll returns the level of all 8 pins, bit n being pin n.
	ReadAll() (uint8, error)
}

// ByteAddressableStore is fixed size persistent memory.
type ByteAddressableStore interface {
	io.ReaderAt
	io.WriterAt
	// Begin prepares the store for use.
	Begin() error
}

// ChangeFunc is called with the new value of a switch, 0 to 15. It runs
// inline from Init or Poll and may reconfigure dev.
type ChangeFunc func(dev *Dev, value uint8)

// Opts holds the board configuration.
type Opts struct {
	// GPIOAddr is the MCP23008 address. Values 0 to 7 are added to 0x20,
	// larger values are used as the I²C address directly.
	GPIOAddr uint16
	// FRAMAddr is the MB85RC256V address. Values 0 to 7 are added to 0x50,
	// larger values are used as the I²C address directly.
	FRAMAddr uint16
	// DipSwitchDebounce defaults to 50ms when 0.
	DipSwitchDebounce time.Duration
	// BcdSwitchDebounce defaults to 500ms when 0.
	BcdSwitchDebounce time.Duration
	// Clock defaults to the wall clock.
	Clock clock.Clock
}

// DefaultOpts is the board as shipped, both address jumpers open.
var DefaultOpts = Opts{
	DipSwitchDebounce: 50 * time.Millisecond,
	BcdSwitchDebounce: 500 * time.Millisecond,
}

// debouncer is the per switch state.
type debouncer struct {
	last    uint8
	since   time.Time
	pending bool
	window  time.Duration
	notify  ChangeFunc
}

// Dev is a SwitchFram Feather board.
type Dev struct {
	bank  DigitalInputBank
	store ByteAddressableStore
	clk   clock.Clock

	dip debouncer
	bcd debouncer
}

// New returns a Dev using the given GPIO bank and persistent store.
func New(bank DigitalInputBank, store ByteAddressableStore, opts *Opts) (*Dev, error) {
	if bank == nil || store == nil {
		return nil, errors.New("switchfram: bank and store are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		bank:  bank,
		store: store,
		clk:   opts.Clock,
		dip:   debouncer{window: opts.DipSwitchDebounce},
		bcd:   debouncer{window: opts.BcdSwitchDebounce},
	}
	if d.clk == nil {
		d.clk = clock.New()
	}
	if d.dip.window == 0 {
		d.dip.window = DefaultOpts.DipSwitchDebounce
	}
	if d.bcd.window == 0 {
		d.bcd.window = DefaultOpts.BcdSwitchDebounce
	}
	return d, nil
}

// NewI2C returns a Dev for a board on bus.
func NewI2C(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	gpio, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23008, address(opts.GPIOAddr, mcp23xxx.DefaultAddress))
	if err != nil {
		return nil, fmt.Errorf("switchfram: %w", err)
	}
	fram, err := mb85rc.New(bus, address(opts.FRAMAddr, mb85rc.DefaultAddress))
	if err != nil {
		_ = gpio.Close()
		return nil, fmt.Errorf("switchfram: %w", err)
	}
	return New(gpio, fram, opts)
}

func address(addr, base uint16) uint16 {
	if addr < 8 {
		return base + addr
	}
	return addr
}

// Init prepares the FRAM, sets all 8 expander pins as inputs with pull-up
// and reports the initial state of both switches to the registered
// callbacks. Call once before Poll.
func (d *Dev) Init() error {
	if err := d.store.Begin(); err != nil {
		return fmt.Errorf("switchfram: %w", err)
	}
	for pin := range 8 {
		if err := d.bank.ConfigureInputPullup(pin); err != nil {
			return fmt.Errorf("switchfram: configuring pin %d: %w", pin, err)
		}
	}
	return d.check(true)
}

// Poll samples the switches and calls the callbacks of those whose debounce
// window has elapsed. Call it repeatedly, from a single goroutine.
func (d *Dev) Poll() error {
	return d.check(false)
}

func (d *Dev) check(notifyAlways bool) error {
	raw, err := d.bank.ReadAll()
	if err != nil {
		return fmt.Errorf("switchfram: reading switches: %w", err)
	}
	// Closed switches read as 0.
	pins := raw ^ 0xff
	dip := pins >> 4
	bcd := pins & 0xf

	if notifyAlways {
		// Both values are stored first so the callbacks see the full state.
		d.dip.last = dip
		d.bcd.last = bcd
		d.notify(&d.dip, dip)
		d.notify(&d.bcd, bcd)
	} else {
		now := d.clk.Now()
		d.debounce(&d.dip, dip, now)
		d.debounce(&d.bcd, bcd, now)
	}
	d.edge(&d.dip, dip)
	d.edge(&d.bcd, bcd)
	return nil
}

func (d *Dev) debounce(s *debouncer, cur uint8, now time.Time) {
	if cur != s.last {
		s.last = cur
		s.since = now
		s.pending = true
	}
	if s.pending && now.Sub(s.since) >= s.window {
		d.notify(s, cur)
		s.pending = false
	}
}

// edge reports a value that differs from the last sample without waiting.
// After debounce or a forced notification last is already cur.
func (d *Dev) edge(s *debouncer, cur uint8) {
	if cur != s.last {
		d.notify(s, cur)
		s.last = cur
	}
}

func (d *Dev) notify(s *debouncer, value uint8) {
	if s.notify != nil {
		s.notify(d, value)
	}
}

// OnDipSwitchChange sets the callback for DIP switch changes, replacing the
// previous one. The value is a bitmask of the closed switches, switch n
// being bit n. nil disables notification.
func (d *Dev) OnDipSwitchChange(fn ChangeFunc) *Dev {
	d.dip.notify = fn
	return d
}

// OnBcdSwitchChange sets the callback for BCD switch changes, replacing the
// previous one. The value is the digit 0 to 9, or 0 to 15 with a hex
// switch. nil disables notification.
func (d *Dev) OnBcdSwitchChange(fn ChangeFunc) *Dev {
	d.bcd.notify = fn
	return d
}

// SetDipSwitchDebounce sets the DIP switch debounce window. It applies from
// the next poll.
func (d *Dev) SetDipSwitchDebounce(window time.Duration) *Dev {
	d.dip.window = window
	return d
}

// SetBcdSwitchDebounce sets the BCD switch debounce window. It applies from
// the next poll.
func (d *Dev) SetBcdSwitchDebounce(window time.Duration) *Dev {
	d.bcd.window = window
	return d
}

// DipSwitchDebounce returns the DIP switch debounce window.
func (d *Dev) DipSwitchDebounce() time.Duration {
	return d.dip.window
}

// BcdSwitchDebounce returns the BCD switch debounce window.
func (d *Dev) BcdSwitchDebounce() time.Duration {
	return d.bcd.window
}

// DipSwitch returns the DIP switch value seen by the last poll.
func (d *Dev) DipSwitch() uint8 {
	return d.dip.last
}

// BcdSwitch returns the BCD switch value seen by the last poll.
func (d *Dev) BcdSwitch() uint8 {
	return d.bcd.last
}

// ReadAt reads from the FRAM.
func (d *Dev) ReadAt(p []byte, off int64) (int, error) {
	return d.store.ReadAt(p, off)
}

// WriteAt writes to the FRAM.
func (d *Dev) WriteAt(p []byte, off int64) (int, error) {
	return d.store.WriteAt(p, off)
}

// Get reads the fixed size value data at off in the FRAM, little endian.
func (d *Dev) Get(off int64, data any) error {
	n := binary.Size(data)
	if n < 0 {
		return fmt.Errorf("switchfram: %T is not fixed size", data)
	}
	b := make([]byte, n)
	if _, err := d.store.ReadAt(b, off); err != nil {
		return fmt.Errorf("switchfram: reading 0x%04x: %w", off, err)
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, data)
}

// Put writes the fixed size value data at off in the FRAM, little endian.
func (d *Dev) Put(off int64, data any) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("switchfram: %w", err)
	}
	if _, err := d.store.WriteAt(buf.Bytes(), off); err != nil {
		return fmt.Errorf("switchfram: writing 0x%04x: %w", off, err)
	}
	return nil
}

// Erase clears the whole persistent store. The store must support erasing.
func (d *Dev) Erase() error {
	e, ok := d.store.(interface{ Erase() error })
	if !ok {
		return fmt.Errorf("switchfram: %s cannot be erased", d.store)
	}
	if err := e.Erase(); err != nil {
		return fmt.Errorf("switchfram: %w", err)
	}
	return nil
}

// Close releases the GPIO expander pin registrations, if any.
func (d *Dev) Close() error {
	if c, ok := d.bank.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("SwitchFramFeather{%s, %s}", d.bank, d.store)
}

// OnOffString returns the low 4 bits of value as 4 characters, bit n at
// position n: 'o' for a set bit and '|' for a clear one.
func OnOffString(value uint8) string {
	var b [4]byte
	for i := range b {
		if value&(1<<i) != 0 {
			b[i] = 'o'
		} else {
			b[i] = '|'
		}
	}
	return string(b[:])
}
