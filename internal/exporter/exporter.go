// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package exporter polls one multi-gas sensor and publishes its readings as
// Prometheus metrics.
package exporter

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"

	"github.com/DFRobot/DFRobot-MultiGasSensor/internal/config"
	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas"
)

// Sensor is the part of *multigas.Dev the exporter drives.
type Sensor interface {
	SetAcquireMode(mode multigas.AcquireMode) (bool, error)
	SetTempCompensation(on bool) error
	SetThresholdAlarm(on bool, threshold uint16, method multigas.AlarmMethod, gas multigas.GasType) (bool, error)
	QueryGasType() (multigas.GasType, error)
	ReadConcentration() (float64, error)
	ReadTemperature() (float64, error)
	SensorVoltage() (physic.ElectricPotential, error)
	DataAvailable() (bool, error)
	Telemetry() multigas.TelemetryFrame
}

var _ Sensor = &multigas.Dev{}

// Exporter copies sensor readings into Metrics.
//
// In active mode the module pushes frames and is never asked for its
// temperature, so compensation keeps using the ambient temperature read by
// Setup. The exported board temperature still follows each frame.
type Exporter struct {
	s        Sensor
	m        *Metrics
	log      logrus.FieldLogger
	interval time.Duration

	active bool
	gas    multigas.GasType
}

// New returns an Exporter polling s every interval.
func New(s Sensor, m *Metrics, log logrus.FieldLogger, interval time.Duration) *Exporter {
	return &Exporter{s: s, m: m, log: log, interval: interval, gas: multigas.NoGas}
}

// Setup applies the sensor section of the configuration to the module. The
// module is held in passive mode while it is configured so that no pushed
// frame is mistaken for an answer, then switched to active mode if asked.
func (e *Exporter) Setup(cfg *config.SensorConfig) error {
	if err := e.setAcquireMode(multigas.PassiveMode); err != nil {
		return err
	}

	if err := e.s.SetTempCompensation(cfg.TempCompensation); err != nil {
		return errors.Wrap(err, "setting temperature compensation")
	}

	var err error
	if e.gas, err = e.s.QueryGasType(); err != nil {
		return errors.Wrap(err, "querying gas type")
	}
	e.log.WithField("gas", e.gas).Info("sensor ready")

	if a := cfg.Alarm; a != nil {
		method := multigas.AlarmLowThreshold
		if a.Method == "high" {
			method = multigas.AlarmHighThreshold
		}
		ok, err := e.s.SetThresholdAlarm(a.Enabled, a.Threshold, method, e.gas)
		if err != nil {
			return errors.Wrap(err, "setting threshold alarm")
		}
		if !ok {
			e.log.Warn("module rejected threshold alarm")
		}
	}

	if cfg.AcquireMode == "active" {
		if err := e.setAcquireMode(multigas.ActiveMode); err != nil {
			return err
		}
		e.active = true
	}
	return nil
}

func (e *Exporter) setAcquireMode(mode multigas.AcquireMode) error {
	ok, err := e.s.SetAcquireMode(mode)
	if err != nil {
		return errors.Wrapf(err, "setting acquire mode 0x%x", mode)
	}
	if !ok {
		e.log.Warnf("module rejected acquire mode 0x%x", mode)
	}
	return nil
}

// Run polls until ctx is done.
func (e *Exporter) Run(ctx context.Context) {
	t := time.NewTicker(e.interval)
	defer t.Stop()
	for {
		e.Poll()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Poll runs one read cycle. Failures are counted and logged, and leave the
// previous values of the affected series in place.
func (e *Exporter) Poll() {
	if e.active {
		e.pollActive()
		return
	}

	if e.gas == multigas.NoGas {
		g, err := e.s.QueryGasType()
		if err != nil {
			e.failed("gas_type", err)
			return
		}
		e.gas = g
	}
	if con, err := e.s.ReadConcentration(); err != nil {
		e.failed("concentration", err)
	} else {
		e.m.Concentration.WithLabelValues(e.gas.String()).Set(con)
	}
	if c, err := e.s.ReadTemperature(); err != nil {
		e.failed("temperature", err)
	} else {
		e.m.Temperature.Set(c)
	}
	if v, err := e.s.SensorVoltage(); err != nil {
		e.failed("voltage", err)
	} else {
		e.m.Voltage.Set(float64(v) / float64(physic.Volt))
	}
}

// pollActive consumes the frame the module pushed on its own, if any.
func (e *Exporter) pollActive() {
	ok, err := e.s.DataAvailable()
	if err != nil {
		e.failed("telemetry", err)
		return
	}
	if !ok {
		return
	}
	f := e.s.Telemetry()
	e.log.Debug(f)
	e.m.Concentration.WithLabelValues(f.Gas.String()).Set(f.Concentration)
	e.m.Temperature.Set(f.Temperature())
}

func (e *Exporter) failed(op string, err error) {
	e.m.Failures.WithLabelValues(op).Inc()
	e.log.WithError(err).WithField("op", op).Warn("sensor read failed")
}
