// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp23xxx provides a driver for the 8 bit I²C members of the
// MCP23XXX family of GPIO expanders, the MCP23008 and its open-drain twin the
// MCP23009.
//
// The chip only has internal pull-ups, so switches wired to ground read as
// gpio.Low when closed. Either invert the values in software or use
// Pin.SetPolarityInverted.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/21919e.pdf
package mcp23xxx
