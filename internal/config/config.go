// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the YAML configuration of the multigas exporter.
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Bus kinds.
const (
	BusI2C  = "i2c"
	BusUART = "uart"
)

type Config struct {
	Sensor   SensorConfig   `yaml:"sensor"`
	Exporter ExporterConfig `yaml:"exporter"`
}

// ---- SENSOR ----

type SensorConfig struct {
	Bus  string     `yaml:"bus"`
	I2C  I2CConfig  `yaml:"i2c"`
	UART UARTConfig `yaml:"uart"`

	SettleMs  int `yaml:"settle_ms"`
	TimeoutMs int `yaml:"timeout_ms"`

	// AcquireMode is "passive" or "active", passive by default.
	AcquireMode      string `yaml:"acquire_mode"`
	TempCompensation bool   `yaml:"temp_compensation"`

	// Alarm is optional.
	Alarm *AlarmConfig `yaml:"alarm"`
}

// I2CConfig selects the module either by Addr or by Group and the A0/A1
// switches. Group wins when both are set.
type I2CConfig struct {
	Bus   string `yaml:"bus"` // i2creg name, "" for the first bus
	Addr  uint16 `yaml:"addr"`
	Group int    `yaml:"group"`
	A0    bool   `yaml:"a0"`
	A1    bool   `yaml:"a1"`
}

type UARTConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

type AlarmConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Threshold uint16 `yaml:"threshold"` // unit of the fitted probe
	Method    string `yaml:"method"`    // "low" or "high"
}

// ---- EXPORTER ----

type ExporterConfig struct {
	Listen         string `yaml:"listen"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads and decodes the file at path. Unknown keys are rejected. It does
// not validate.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return Parse(b)
}

// Parse decodes a YAML document.
func Parse(b []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}

func (s *SensorConfig) Settle() time.Duration {
	return time.Duration(s.SettleMs) * time.Millisecond
}

func (s *SensorConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

func (e *ExporterConfig) PollInterval() time.Duration {
	return time.Duration(e.PollIntervalMs) * time.Millisecond
}
