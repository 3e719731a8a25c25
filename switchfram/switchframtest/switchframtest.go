// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package switchframtest provides fakes of the SwitchFram Feather board
// collaborators for testing without hardware.
package switchframtest

import (
	"errors"
	"fmt"
	"sync"
)

// Bank is a scripted 8 line GPIO port. Raw holds the level returned by
// ReadAll, active low as the hardware reports it.
type Bank struct {
	mu         sync.Mutex
	raw        uint8
	configured []int

	// ReadErr, if set, is returned by ReadAll.
	ReadErr error
	// ConfigureErr, if set, is returned by ConfigureInputPullup.
	ConfigureErr error
}

// NewBank returns a Bank with all switches open.
func NewBank() *Bank {
	return &Bank{raw: 0xff}
}

// SetRaw sets the level returned by the next ReadAll calls.
func (b *Bank) SetRaw(raw uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raw = raw
}

// SetSwitches sets the sample as the board would report it with the given
// closed DIP switches and BCD digit.
func (b *Bank) SetSwitches(dip, bcd uint8) {
	b.SetRaw(^(dip<<4 | bcd&0xf))
}

// Configured returns the pins passed to ConfigureInputPullup, in call order.
func (b *Bank) Configured() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.configured...)
}

// ConfigureInputPullup records pin.
func (b *Bank) ConfigureInputPullup(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ConfigureErr != nil {
		return b.ConfigureErr
	}
	b.configured = append(b.configured, pin)
	return nil
}

// ReadAll returns the scripted level.
func (b *Bank) ReadAll() (uint8, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ReadErr != nil {
		return 0, b.ReadErr
	}
	return b.raw, nil
}

func (b *Bank) String() string {
	return "switchframtest.Bank"
}

// ErrOutOfRange is returned by Store for accesses outside its size.
var ErrOutOfRange = errors.New("switchframtest: access out of range")

// Store is an in-memory persistent store.
type Store struct {
	mu    sync.Mutex
	mem   []byte
	began bool

	// BeginErr, if set, is returned by Begin.
	BeginErr error
}

// NewStore returns a zeroed Store of size bytes.
func NewStore(size int) *Store {
	return &Store{mem: make([]byte, size)}
}

// Begin marks the store as started.
func (s *Store) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.BeginErr != nil {
		return s.BeginErr
	}
	s.began = true
	return nil
}

// Began reports whether Begin succeeded.
func (s *Store) Began() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.began
}

// ReadAt implements io.ReaderAt.
func (s *Store) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(s.mem)) {
		return 0, ErrOutOfRange
	}
	return copy(p, s.mem[off:]), nil
}

// WriteAt implements io.WriterAt.
func (s *Store) WriteAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(s.mem)) {
		return 0, ErrOutOfRange
	}
	return copy(s.mem[off:], p), nil
}

// Erase zeroes the store.
func (s *Store) Erase() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.mem)
	return nil
}

func (s *Store) String() string {
	return fmt.Sprintf("switchframtest.Store{%d}", len(s.mem))
}
