// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command pressure soaks an awg WaitGroup with rounds of producers running on
// a goroutine pool, alternating full drains, throttled waits and waits that
// are abandoned on a timeout.
//
// Usage:
//
//	pressure [-config pressure.ini]
//
// The configuration file is optional:
//
//	[pressure]
//	rounds = 300
//	producers = 10
//	max_delay_ms = 5
//	threshold = 3
//	timeout_ms = 2
//	pool_size = 16
//
//	[log]
//	file = pressure.log
//	level = info
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rfyiamcool/go-timewheel"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path of an INI configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "pressure:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer zap.ReplaceGlobals(logger)()

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	tw, err := timewheel.NewTimeWheel(time.Millisecond, 1000)
	if err != nil {
		return err
	}
	tw.Start()
	defer tw.Stop()

	r := newRunner(cfg, pool, tw)
	start := time.Now()
	err = r.run(context.Background())
	logger.Info("Pressure run finished",
		zap.Int("rounds", r.stats.Rounds),
		zap.Int("produced", r.stats.Produced),
		zap.Int("suspended", r.stats.Suspended),
		zap.Int("abandoned", r.stats.Abandoned),
		zap.Int("peak_left", r.stats.PeakLeft),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))
	return err
}
