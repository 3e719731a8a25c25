// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for the SwitchFram Feather board drivers.
//
// The board itself is driven by package switchfram, built on the mcp23xxx
// GPIO expander and mb85rc FRAM drivers.
package devices
