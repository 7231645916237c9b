// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// multigas-exporter reads one multi-gas sensor and serves its readings as
// Prometheus metrics.
package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DFRobot/DFRobot-MultiGasSensor/internal/config"
	"github.com/DFRobot/DFRobot-MultiGasSensor/internal/exporter"
	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas"
	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas/serialport"
)

// CLI args
var (
	configPath = flag.String("config", "multigas.yaml", "path of the YAML configuration")
	listenAddr = flag.String("listen-address", "", "address to serve /metrics on, overrides the configuration")
)

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
	})
	log.SetOutput(colorable.NewColorableStderr())
	return nil
}

// openSensor opens the bus named by cfg. The returned closer releases it.
func openSensor(cfg *config.SensorConfig) (*multigas.Dev, io.Closer, error) {
	opts := &multigas.Opts{Settle: cfg.Settle(), Timeout: cfg.Timeout()}
	switch cfg.Bus {
	case config.BusUART:
		p, err := serialport.Open(cfg.UART.Port, cfg.UART.Baud)
		if err != nil {
			return nil, nil, err
		}
		return multigas.NewStream(p, opts), p, nil
	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, errors.Wrap(err, "host init")
		}
		bus, err := i2creg.Open(cfg.I2C.Bus)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening I²C bus %q", cfg.I2C.Bus)
		}
		dev, err := multigas.NewI2C(bus, cfg.I2C.Addr, opts)
		if err != nil {
			bus.Close()
			return nil, nil, errors.Wrapf(err, "no sensor at 0x%x", cfg.I2C.Addr)
		}
		return dev, bus, nil
	}
}

// registerMetrics registers the build info and the sensor series on reg.
func registerMetrics(reg prometheus.Registerer) *exporter.Metrics {
	reg.MustRegister(collectors.NewBuildInfoCollector())
	return exporter.NewMetrics(reg)
}

func mainImpl() error {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	config.Normalize(cfg)
	if *listenAddr != "" {
		cfg.Exporter.Listen = *listenAddr
	}
	if err := setupLogging(cfg.Exporter.LogLevel); err != nil {
		return err
	}

	dev, closer, err := openSensor(&cfg.Sensor)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Infof("opened %s", dev)

	m := registerMetrics(prometheus.DefaultRegisterer)
	e := exporter.New(dev, m, log.StandardLogger(), cfg.Exporter.PollInterval())
	if err := e.Setup(&cfg.Sensor); err != nil {
		return err
	}

	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{EnableOpenMetrics: true},
		))
		log.Infof("serving metrics on %s", cfg.Exporter.Listen)
		log.Panic(http.ListenAndServe(cfg.Exporter.Listen, nil))
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	e.Run(ctx)
	log.Info("shutting down")
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}
