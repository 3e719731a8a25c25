// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package switchfram drives the SwitchFram Feather demo board: an MCP23008
// GPIO expander wired to a 4 position DIP switch and a BCD rotary switch, and
// an MB85RC256V FRAM.
//
// # Pinout
//
//	GPIO  function
//	0     BCD 1
//	1     BCD 2
//	2     BCD 4
//	3     BCD 8
//	4..7  DIP switch 0..3
//
// The switches connect to ground and the expander only has pull-ups, so a
// closed switch reads as 0. Dev inverts the sample so that values passed to
// callbacks use closed = 1.
//
// # Debouncing
//
// Each switch has its own debounce window, 50ms for the DIP switch and 500ms
// for the BCD switch by default. Turning the rotary switch goes through
// intermediate codes; raise the BCD window to wait until the knob has
// definitely stopped.
//
// Any change of the sampled value restarts the switch's timer. Once the
// timer has run for the window, the callback receives the value sampled on
// that poll. A value that flickers and returns to where it was is still
// reported once the window elapses.
package switchfram
