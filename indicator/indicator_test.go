// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package indicator

import (
	"bytes"
	"testing"

	"github.com/maruel/ansi256"
)

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOpts
	opts.W = &buf
	d := New(&opts)

	if err := d.Show(0b0101, 9); err != nil {
		t.Fatal(err)
	}
	on := ansi256.Default.Block(DefaultOpts.On)
	off := ansi256.Default.Block(DefaultOpts.Off)
	want := "\r\033[0m" + on + off + on + off + "\033[0m 9 "
	if got := buf.String(); got != want {
		t.Errorf("Show() wrote %q, want %q", got, want)
	}

	buf.Reset()
	if err := d.Show(0, 0xc); err != nil {
		t.Fatal(err)
	}
	want = "\r\033[0m" + off + off + off + off + "\033[0m C "
	if got := buf.String(); got != want {
		t.Errorf("Show() wrote %q, want %q", got, want)
	}

	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\n\033[0m" {
		t.Errorf("Halt() wrote %q", got)
	}
}
