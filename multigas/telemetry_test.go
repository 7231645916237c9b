// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDataAvailableStream(t *testing.T) {
	p := &fakePort{rx: response(0x88, 0x00, 0x64, 0x04, 0x00, 0x02, 0x00)}
	dev := NewStream(p, &Opts{Clock: &fakeClock{}})

	ok, err := dev.DataAvailable()
	if err != nil || !ok {
		t.Fatalf("DataAvailable()=%t, %v", ok, err)
	}
	expected := TelemetryFrame{Concentration: 100, Gas: CO, TempADC: 512}
	if diff := cmp.Diff(expected, dev.Telemetry()); diff != "" {
		t.Errorf("Telemetry() mismatch (-want +got):\n%s", diff)
	}
	if p.tx.Len() != 0 {
		t.Errorf("DataAvailable() wrote %#v on a stream", p.tx.Bytes())
	}

	// A corrupted frame is consumed but not cached.
	p.rx = corrupt(response(0x88, 0x01, 0x00, 0x2c, 0x01, 0x03, 0x00))
	if ok, err := dev.DataAvailable(); ok || !errors.Is(err, ErrChecksum) {
		t.Errorf("DataAvailable()=%t, %v expected false, ErrChecksum", ok, err)
	}
	if diff := cmp.Diff(expected, dev.Telemetry()); diff != "" {
		t.Errorf("Telemetry() changed by a bad frame (-want +got):\n%s", diff)
	}

	// Nothing pushed.
	if ok, err := dev.DataAvailable(); ok || err != nil {
		t.Errorf("DataAvailable()=%t, %v expected false, nil", ok, err)
	}
}

func TestDataAvailableStreamBufferedError(t *testing.T) {
	p := &fakePort{bufErr: errors.New("port closed")}
	dev := NewStream(p, &Opts{Clock: &fakeClock{}})
	if ok, err := dev.DataAvailable(); ok || err == nil {
		t.Errorf("DataAvailable()=%t, %v expected an error", ok, err)
	}
}

func TestDataAvailableI2C(t *testing.T) {
	get := [PayloadSize]byte{cmdGetAllData}
	dev := getDev(t,
		exchangeOps(addr, get, response(0x88, 0x00, 0xd1, 0x05, 0x01, 0x02, 0x58)),
		writeOnly(get),
	)
	ok, err := dev.DataAvailable()
	if err != nil || !ok {
		t.Fatalf("DataAvailable()=%t, %v", ok, err)
	}
	expected := TelemetryFrame{Concentration: 20.9, Gas: O2, TempADC: 600}
	if diff := cmp.Diff(expected, dev.Telemetry()); diff != "" {
		t.Errorf("Telemetry() mismatch (-want +got):\n%s", diff)
	}
	if got := dev.Telemetry().Temperature(); got != ThermistorCelsius(600) {
		t.Errorf("Temperature()=%v", got)
	}

	if ok, err := dev.DataAvailable(); ok || !errors.Is(err, ErrNoAck) {
		t.Errorf("DataAvailable()=%t, %v expected false, ErrNoAck", ok, err)
	}
	if diff := cmp.Diff(expected, dev.Telemetry()); diff != "" {
		t.Errorf("Telemetry() changed by a failed read (-want +got):\n%s", diff)
	}
}

func TestDataAvailableCompensated(t *testing.T) {
	dev := getDev(t, exchangeOps(addr, [PayloadSize]byte{cmdGetAllData}, response(0x88, 0x00, 0x64, 0x04, 0x00, 0x02, 0x00)))
	dev.comp = Compensation{Enabled: true, AmbientC: 30}
	if ok, err := dev.DataAvailable(); err != nil || !ok {
		t.Fatalf("DataAvailable()=%t, %v", ok, err)
	}
	if got, expected := dev.Telemetry().Concentration, Compensate(CO, 100, 30); got != expected {
		t.Errorf("Concentration=%v expected %v", got, expected)
	}
}

func TestTelemetryFrameString(t *testing.T) {
	if f := getDev(t).Telemetry(); f != (TelemetryFrame{}) {
		t.Errorf("new Dev has frame %v", f)
	}
	f := TelemetryFrame{Concentration: 1.5, Gas: H2S, TempADC: 512}
	t.Log(f.String())
}
