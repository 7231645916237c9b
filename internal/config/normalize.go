// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas"
	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas/serialport"
)

// Defaults.
const (
	DefaultListen         = ":9105"
	DefaultPollIntervalMs = 1000
	DefaultLogLevel       = "info"
)

// Normalize fills defaults and resolves the I²C address group. It must be
// called only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	s := &cfg.Sensor
	if s.I2C.Group != 0 {
		// Validate already checked the group.
		s.I2C.Addr, _ = multigas.I2CAddrForGroup(s.I2C.Group, s.I2C.A0, s.I2C.A1)
	}
	if s.I2C.Addr == 0 {
		s.I2C.Addr = multigas.DefaultI2CAddr
	}
	if s.UART.Baud == 0 {
		s.UART.Baud = serialport.DefaultBaud
	}
	if s.SettleMs == 0 {
		s.SettleMs = int(multigas.DefaultSettle.Milliseconds())
	}
	if s.TimeoutMs == 0 {
		s.TimeoutMs = int(multigas.DefaultStreamTimeout.Milliseconds())
	}
	if s.AcquireMode == "" {
		s.AcquireMode = "passive"
	}

	e := &cfg.Exporter
	if e.Listen == "" {
		e.Listen = DefaultListen
	}
	if e.PollIntervalMs == 0 {
		e.PollIntervalMs = DefaultPollIntervalMs
	}
	if e.LogLevel == "" {
		e.LogLevel = DefaultLogLevel
	}
}
