// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"time"

	"gopkg.in/ini.v1"
)

type config struct {
	Rounds    int
	Producers int
	MaxDelay  time.Duration
	Threshold int
	Timeout   time.Duration
	PoolSize  int

	LogFile  string
	LogLevel string
}

// loadConfig reads the INI file at path, or only the defaults if path is
// empty. Every key is optional.
func loadConfig(path string) (*config, error) {
	cfg := ini.Empty()
	if path != "" {
		var err error
		cfg, err = ini.Load(path)
		if err != nil {
			return nil, err
		}
	}

	pressure := cfg.Section("pressure")
	logging := cfg.Section("log")
	c := &config{
		Rounds:    pressure.Key("rounds").MustInt(300),
		Producers: pressure.Key("producers").MustInt(10),
		MaxDelay:  time.Duration(pressure.Key("max_delay_ms").MustInt(5)) * time.Millisecond,
		Threshold: pressure.Key("threshold").MustInt(3),
		Timeout:   time.Duration(pressure.Key("timeout_ms").MustInt(2)) * time.Millisecond,
		PoolSize:  pressure.Key("pool_size").MustInt(16),
		LogFile:   logging.Key("file").MustString("pressure.log"),
		LogLevel:  logging.Key("level").MustString("info"),
	}
	if c.Producers < 1 {
		c.Producers = 1
	}
	if c.PoolSize < 1 {
		c.PoolSize = 1
	}
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	return c, nil
}
