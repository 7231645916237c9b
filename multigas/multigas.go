// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// AcquireMode selects how the module delivers readings.
type AcquireMode byte

const (
	// ActiveMode makes the module push a data frame every second.
	ActiveMode AcquireMode = 0x03
	// PassiveMode makes the module answer requests only.
	PassiveMode AcquireMode = 0x04
)

// AlarmMethod selects which side of the threshold drives the ALA pin high.
type AlarmMethod byte

const (
	AlarmLowThreshold  AlarmMethod = 0x00
	AlarmHighThreshold AlarmMethod = 0x01
)

// DefaultSettle is the pause between a command and its response.
const DefaultSettle = 10 * time.Millisecond

// Command codes.
const (
	cmdChangeAcquireMode byte = 0x78
	cmdGetConcentration  byte = 0x86
	cmdGetTemperature    byte = 0x87
	cmdGetAllData        byte = 0x88
	cmdSetThresholdAlarm byte = 0x89
	cmdGetVoltage        byte = 0x91
	cmdChangeI2CAddr     byte = 0x92
)

// Opts holds the timing parameters of a Dev. The zero value selects the
// defaults.
type Opts struct {
	// Settle is the pause between sending a command and reading the answer.
	Settle time.Duration
	// Timeout bounds the wait for a frame on a streaming transport.
	Timeout time.Duration
	// Clock overrides the system clock. Used by tests.
	Clock Clock
}

// Dev represents a multi-gas sensor module.
type Dev struct {
	t      Transport
	clock  Clock
	settle time.Duration

	mu    sync.Mutex
	comp  Compensation
	frame TelemetryFrame
}

// Env is a complete reading of the module.
type Env struct {
	Gas GasType
	// Concentration in the unit of the probe, compensated when enabled.
	Concentration float64
	// Temperature of the board.
	Temperature physic.Temperature
}

func (e *Env) String() string {
	return fmt.Sprintf("Gas: %s Concentration: %.2f Temperature: %s", e.Gas, e.Concentration, e.Temperature)
}

// New returns a Dev exchanging frames over t.
func New(t Transport, opts *Opts) *Dev {
	d := &Dev{t: t, clock: systemClock{}, settle: DefaultSettle}
	if opts != nil {
		if opts.Settle > 0 {
			d.settle = opts.Settle
		}
		if opts.Clock != nil {
			d.clock = opts.Clock
		}
	}
	return d
}

// NewI2C returns a Dev for the module at addr on b. DefaultI2CAddr is the
// factory setting. It fails with ErrNoAck when no module answers at addr.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	d := New(NewI2CTransport(b, addr), opts)
	return d, d.start()
}

// start checks that the module answers a concentration request.
func (d *Dev) start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.exchange([PayloadSize]byte{cmdGetConcentration})
	return err
}

// NewStream returns a Dev for a module wired to a UART.
func NewStream(p Port, opts *Opts) *Dev {
	so := &StreamOpts{}
	if opts != nil {
		so.Timeout = opts.Timeout
		so.Clock = opts.Clock
	}
	return New(NewStreamTransport(p, so), opts)
}

// exchange sends one command and returns the verified response, which must
// echo the command code. There is a single attempt. Callers hold d.mu.
func (d *Dev) exchange(payload [PayloadSize]byte) ([]byte, error) {
	f := Encode(payload)
	if err := d.t.Send(0, f[:]); err != nil {
		return nil, fmt.Errorf("multigas cmd 0x%x: %w", payload[0], err)
	}
	d.clock.Sleep(d.settle)

	r := make([]byte, FrameSize)
	n, err := d.t.Receive(0, r, FrameSize)
	if err != nil {
		return nil, fmt.Errorf("multigas cmd 0x%x: %w", payload[0], err)
	}
	if n == 0 {
		return nil, fmt.Errorf("multigas cmd 0x%x: %w", payload[0], ErrTimeout)
	}
	if !Verify(r) {
		return nil, fmt.Errorf("multigas cmd 0x%x: %w", payload[0], ErrChecksum)
	}
	// A frame pushed in active mode can be read in place of the answer.
	if r[1] != payload[0] {
		return nil, fmt.Errorf("multigas cmd 0x%x: got frame 0x%x: %w", payload[0], r[1], ErrChecksum)
	}
	return r, nil
}

// SetAcquireMode switches between active (pushed) and passive (requested)
// delivery. It reports whether the module accepted the change.
func (d *Dev) SetAcquireMode(mode AcquireMode) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdChangeAcquireMode, byte(mode)})
	if err != nil {
		return false, err
	}
	return r[2] == 1, nil
}

// ReadConcentration returns the gas concentration, compensated for the board
// temperature when SetTempCompensation enabled it. It returns 0 on failure.
func (d *Dev) ReadConcentration() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdGetConcentration})
	if err != nil {
		return 0, err
	}
	gas := GasTypeFromCode(r[4])
	return d.comp.apply(gas, scaleDecimal(raw16(r), r[5])), nil
}

// QueryGasType returns the type of the fitted probe. It returns NoGas on
// failure and Unknown for probes the driver does not recognize.
func (d *Dev) QueryGasType() (GasType, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdGetConcentration})
	if err != nil {
		return NoGas, err
	}
	return GasTypeFromCode(r[4]), nil
}

// SetThresholdAlarm configures the ALA output. threshold is in the unit of the
// probe; it is scaled for probes that take tenths.
func (d *Dev) SetThresholdAlarm(on bool, threshold uint16, method AlarmMethod, gas GasType) (bool, error) {
	threshold *= gas.thresholdScale()
	var sw byte
	if on {
		sw = 1
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdSetThresholdAlarm, sw, byte(threshold >> 8), byte(threshold), byte(method)})
	if err != nil {
		return false, err
	}
	return r[2] == 1, nil
}

// ReadTemperature returns the board temperature in °C. A successful read also
// becomes the ambient temperature used for compensation. It returns 0 on
// failure.
func (d *Dev) ReadTemperature() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readTemperature()
}

func (d *Dev) readTemperature() (float64, error) {
	r, err := d.exchange([PayloadSize]byte{cmdGetTemperature})
	if err != nil {
		return 0, err
	}
	c := ThermistorCelsius(raw16(r))
	d.comp.AmbientC = c
	return c, nil
}

// SetTempCompensation enables or disables temperature compensation and reads
// the board temperature used by it. If the read fails the switch is still
// applied, with an ambient temperature of 0°C, and the error is returned.
func (d *Dev) SetTempCompensation(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.readTemperature()
	d.comp = Compensation{Enabled: on, AmbientC: c}
	return err
}

// TempCompensation returns the current compensation state.
func (d *Dev) TempCompensation() Compensation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.comp
}

// SensorVoltage returns the raw output voltage of the probe. It is meant for
// checking the concentration reading. It returns 0 on failure.
func (d *Dev) SensorVoltage() (physic.ElectricPotential, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdGetVoltage})
	if err != nil {
		return 0, err
	}
	v := float64(raw16(r)) * vRef / adcCounts * 2
	return physic.ElectricPotential(v * float64(physic.Volt)), nil
}

// ChangeAddrGroup moves the module to I²C address group 1-8. It returns the
// group byte echoed by the module, or 0 on failure. Use I2CAddrForGroup and
// SetI2CAddr to keep talking to the module afterwards.
func (d *Dev) ChangeAddrGroup(group byte) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdChangeI2CAddr, group})
	if err != nil {
		return 0, err
	}
	return r[2], nil
}

// SetI2CAddr changes the bus address the Dev talks to. It fails when the Dev
// does not use the I²C transport.
func (d *Dev) SetI2CAddr(addr uint16) error {
	t, ok := d.t.(*I2C)
	if !ok {
		return errors.New("multigas: not an I²C device")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	t.SetAddr(addr)
	return nil
}

// Sense reads concentration, gas type and board temperature in one exchange.
// It does not update the telemetry cache.
func (d *Dev) Sense(env *Env) error {
	env.Gas = NoGas
	env.Concentration = 0
	env.Temperature = 0

	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.exchange([PayloadSize]byte{cmdGetAllData})
	if err != nil {
		return err
	}
	f := decodeAll(r, d.comp)
	env.Gas = f.Gas
	env.Concentration = f.Concentration
	env.Temperature = physic.ZeroCelsius + physic.Temperature(f.Temperature()*float64(physic.Celsius))
	return nil
}

// Precision returns the smallest step of the readings: 0.01 for the
// concentration, which is the finest decimal scale the module reports, and
// one ADC count near 25°C for the temperature.
func (d *Dev) Precision(env *Env) {
	env.Concentration = 0.01
	step := ThermistorCelsius(512) - ThermistorCelsius(513)
	env.Temperature = physic.Temperature(step * float64(physic.Celsius))
}

// Halt implements conn.Resource. The module has no running state to stop.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) String() string {
	if s, ok := d.t.(fmt.Stringer); ok {
		return fmt.Sprintf("multigas: %s", s.String())
	}
	return "multigas"
}

var _ conn.Resource = &Dev{}
