// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	s := &cfg.Sensor
	switch s.Bus {
	case BusI2C:
		if s.I2C.Group != 0 {
			if _, err := multigas.I2CAddrForGroup(s.I2C.Group, s.I2C.A0, s.I2C.A1); err != nil {
				return errors.Wrap(err, "sensor.i2c")
			}
		} else if s.I2C.Addr != 0 && (s.I2C.Addr < 0x08 || s.I2C.Addr > 0x77) {
			return errors.Errorf("sensor.i2c.addr 0x%x is not a 7 bit address", s.I2C.Addr)
		}
	case BusUART:
		if s.UART.Port == "" {
			return errors.New("sensor.uart.port is required")
		}
		if s.UART.Baud < 0 {
			return errors.Errorf("sensor.uart.baud %d is negative", s.UART.Baud)
		}
	default:
		return errors.Errorf("sensor.bus %q must be %q or %q", s.Bus, BusI2C, BusUART)
	}

	if s.SettleMs < 0 || s.TimeoutMs < 0 {
		return errors.New("sensor.settle_ms and sensor.timeout_ms must not be negative")
	}
	switch s.AcquireMode {
	case "", "passive", "active":
	default:
		return errors.Errorf("sensor.acquire_mode %q must be passive or active", s.AcquireMode)
	}
	if s.AcquireMode == "active" && s.Bus == BusI2C {
		return errors.New("sensor.acquire_mode active needs the uart bus")
	}
	if a := s.Alarm; a != nil {
		switch a.Method {
		case "low", "high":
		default:
			return errors.Errorf("sensor.alarm.method %q must be low or high", a.Method)
		}
	}

	e := &cfg.Exporter
	if e.PollIntervalMs < 0 {
		return errors.Errorf("exporter.poll_interval_ms %d is negative", e.PollIntervalMs)
	}
	if e.LogLevel != "" {
		if _, err := logrus.ParseLevel(e.LogLevel); err != nil {
			return errors.Wrap(err, "exporter.log_level")
		}
	}
	return nil
}
