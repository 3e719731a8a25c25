// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package switchfram_test

import (
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/switchfram/switchfram"
	"github.com/GermanBionicSystems/switchfram/switchfram/switchframtest"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	board, err := switchfram.NewI2C(bus, &switchfram.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer board.Close()

	board.OnDipSwitchChange(func(_ *switchfram.Dev, v uint8) {
		fmt.Printf("dip switch %s\n", switchfram.OnOffString(v))
	}).OnBcdSwitchChange(func(_ *switchfram.Dev, v uint8) {
		fmt.Printf("bcd switch %d\n", v)
	})
	if err := board.Init(); err != nil {
		log.Fatal(err)
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	stop := time.After(10 * time.Second)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := board.Poll(); err != nil {
				log.Fatal(err)
			}
		}
	}
}

func ExampleOnOffString() {
	fmt.Println(switchfram.OnOffString(0b0101))
	// Output: o|o|
}

func ExampleNew() {
	bank := switchframtest.NewBank()
	bank.SetSwitches(0b0011, 7)
	board, err := switchfram.New(bank, switchframtest.NewStore(64), nil)
	if err != nil {
		log.Fatal(err)
	}
	board.OnDipSwitchChange(func(_ *switchfram.Dev, v uint8) {
		fmt.Println("dip", switchfram.OnOffString(v))
	}).OnBcdSwitchChange(func(_ *switchfram.Dev, v uint8) {
		fmt.Println("bcd", v)
	})
	if err := board.Init(); err != nil {
		log.Fatal(err)
	}
	// Output:
	// dip oo||
	// bcd 7
}
