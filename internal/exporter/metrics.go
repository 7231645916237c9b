// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package exporter

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the series exposed for one sensor.
type Metrics struct {
	Concentration *prometheus.GaugeVec
	Temperature   prometheus.Gauge
	Voltage       prometheus.Gauge
	Failures      *prometheus.CounterVec
}

// NewMetrics creates the series and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Concentration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "multigas_concentration",
				Help: "Gas concentration (units: ppm, %VOL for O2)",
			},
			[]string{"gas"},
		),
		Temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "multigas_board_temperature",
			Help: "Sensor board temperature (units: degrees Celsius)",
		}),
		Voltage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "multigas_sensor_voltage",
			Help: "Raw probe output (units: V)",
		}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multigas_read_failures_total",
				Help: "Failed exchanges with the sensor, by operation",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.Concentration, m.Temperature, m.Voltage, m.Failures)
	return m
}
