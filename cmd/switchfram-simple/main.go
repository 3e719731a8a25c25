// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// switchfram-simple prints the SwitchFram Feather switch changes and keeps a
// counter in FRAM that survives restarts, incremented every second.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/switchfram/indicator"
	"github.com/GermanBionicSystems/switchfram/switchfram"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const (
	flagBus           = "bus"
	flagGPIOAddr      = "gpio-addr"
	flagFRAMAddr      = "fram-addr"
	flagDipDebounce   = "dip-debounce"
	flagBcdDebounce   = "bcd-debounce"
	flagCounterOffset = "counter-offset"
	flagPollInterval  = "poll-interval"
	flagIndicator     = "indicator"
	flagDebug         = "debug"
	flagErase         = "erase"
)

func main() {
	app := &cli.App{
		Name:   "switchfram-simple",
		Usage:  "print SwitchFram Feather switch changes and a persisted counter",
		Flags:  flags(),
		Action: mainWithArgs,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "switchfram-simple: %v\n", err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagBus,
			Usage: "I²C bus name, empty for the first one",
		},
		&cli.UintFlag{
			Name:  flagGPIOAddr,
			Usage: "MCP23008 address, 0-7 or the 7 bit address",
		},
		&cli.UintFlag{
			Name:  flagFRAMAddr,
			Usage: "MB85RC256V address, 0-7 or the 7 bit address",
		},
		&cli.DurationFlag{
			Name:  flagDipDebounce,
			Value: switchfram.DefaultOpts.DipSwitchDebounce,
			Usage: "DIP switch debounce window",
		},
		&cli.DurationFlag{
			Name:  flagBcdDebounce,
			Value: switchfram.DefaultOpts.BcdSwitchDebounce,
			Usage: "BCD switch debounce window",
		},
		&cli.Int64Flag{
			Name:  flagCounterOffset,
			Usage: "FRAM offset of the 4 byte counter",
		},
		&cli.DurationFlag{
			Name:  flagPollInterval,
			Value: 10 * time.Millisecond,
			Usage: "switch sampling period",
		},
		&cli.BoolFlag{
			Name:  flagIndicator,
			Usage: "draw the switch state on the terminal",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "enable debug logging",
		},
		&cli.BoolFlag{
			Name:  flagErase,
			Usage: "clear the whole FRAM, resetting the counter, before starting",
		},
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func mainWithArgs(c *cli.Context) error {
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(c.String(flagBus))
	if err != nil {
		return fmt.Errorf("failed to open I²C: %w", err)
	}
	defer bus.Close()

	board, err := switchfram.NewI2C(bus, &switchfram.Opts{
		GPIOAddr:          uint16(c.Uint(flagGPIOAddr)),
		FRAMAddr:          uint16(c.Uint(flagFRAMAddr)),
		DipSwitchDebounce: c.Duration(flagDipDebounce),
		BcdSwitchDebounce: c.Duration(flagBcdDebounce),
	})
	if err != nil {
		return err
	}
	defer board.Close()
	logger.Debugw("board created", "board", board)

	var ind *indicator.Dev
	if c.Bool(flagIndicator) {
		ind = indicator.New(nil)
		defer ind.Halt()
	}
	show := func(dip, bcd uint8) {
		if ind != nil {
			if err := ind.Show(dip, bcd); err != nil {
				logger.Warnw("indicator", "error", err)
			}
		}
	}
	board.OnDipSwitchChange(func(d *switchfram.Dev, v uint8) {
		logger.Infow("dip switch changed", "value", v, "switches", switchfram.OnOffString(v))
		show(v, d.BcdSwitch())
	}).OnBcdSwitchChange(func(d *switchfram.Dev, v uint8) {
		logger.Infow("bcd switch changed", "value", v)
		show(d.DipSwitch(), v)
	})
	if err := board.Init(); err != nil {
		return err
	}
	if err := configure(c, board); err != nil {
		return err
	}
	if c.Bool(flagErase) {
		logger.Infow("FRAM erased")
	}
	return run(ctx, logger, board, c.Int64(flagCounterOffset), c.Duration(flagPollInterval))
}

// configure applies the flags that Opts cannot express: an explicit zero
// debounce window, since Opts treats 0 as the default, and --erase.
func configure(c *cli.Context, board *switchfram.Dev) error {
	if c.IsSet(flagDipDebounce) {
		board.SetDipSwitchDebounce(c.Duration(flagDipDebounce))
	}
	if c.IsSet(flagBcdDebounce) {
		board.SetBcdSwitchDebounce(c.Duration(flagBcdDebounce))
	}
	if c.Bool(flagErase) {
		return board.Erase()
	}
	return nil
}

// run polls the board every interval and bumps the persisted counter every
// second until ctx is done.
func run(ctx context.Context, logger *zap.SugaredLogger, board *switchfram.Dev, counterOffset int64, interval time.Duration) error {
	poll := time.NewTicker(interval)
	defer poll.Stop()
	second := time.NewTicker(time.Second)
	defer second.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-poll.C:
			if err := board.Poll(); err != nil {
				logger.Errorw("poll", "error", err)
			}
		case <-second.C:
			n, err := bumpCounter(board, counterOffset)
			if err != nil {
				logger.Errorw("counter", "error", err)
				continue
			}
			logger.Infow("counter", "value", n)
		}
	}
}

func bumpCounter(board *switchfram.Dev, off int64) (uint32, error) {
	var n uint32
	if err := board.Get(off, &n); err != nil {
		return 0, err
	}
	n++
	if err := board.Put(off, n); err != nil {
		return 0, err
	}
	return n, nil
}
