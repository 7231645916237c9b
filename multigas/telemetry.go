// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"encoding/binary"
	"fmt"
)

// TelemetryFrame is the last complete data frame captured by DataAvailable.
// The zero value means no frame has been captured yet.
type TelemetryFrame struct {
	// Concentration after decimal scaling and, when enabled, temperature
	// compensation. Never negative.
	Concentration float64
	Gas           GasType
	// TempADC is the raw board thermistor count sent with the frame.
	TempADC uint16
}

// Temperature returns the board temperature in °C carried by the frame.
func (f TelemetryFrame) Temperature() float64 {
	return ThermistorCelsius(f.TempADC)
}

func (f TelemetryFrame) String() string {
	return fmt.Sprintf("Gas: %s Concentration: %.2f Temperature: %.2f°C", f.Gas, f.Concentration, f.Temperature())
}

// decodeAll decodes a verified get-all-data frame, applying c to the
// concentration.
func decodeAll(r []byte, c Compensation) TelemetryFrame {
	gas := GasTypeFromCode(r[4])
	return TelemetryFrame{
		Concentration: c.apply(gas, scaleDecimal(raw16(r), r[5])),
		Gas:           gas,
		TempADC:       binary.BigEndian.Uint16(r[6:8]),
	}
}

// DataAvailable captures a fresh frame into the telemetry cache and reports
// whether one was captured. On a streaming transport it only reads what the
// module pushed on its own (active acquire mode). On an addressed transport
// it requests the frame. A frame failing verification leaves the cache
// untouched.
func (d *Dev) DataAvailable() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r := make([]byte, FrameSize)
	if p, ok := d.t.(Poller); ok {
		avail, err := p.Buffered()
		if err != nil {
			return false, fmt.Errorf("multigas: %w", err)
		}
		if avail <= 0 {
			return false, nil
		}
		if _, err := d.t.Receive(0, r, avail); err != nil {
			return false, fmt.Errorf("multigas: %w", err)
		}
	} else {
		f := Encode([PayloadSize]byte{cmdGetAllData})
		if err := d.t.Send(0, f[:]); err != nil {
			return false, fmt.Errorf("multigas cmd 0x%x: %w", cmdGetAllData, err)
		}
		if _, err := d.t.Receive(0, r, FrameSize); err != nil {
			return false, fmt.Errorf("multigas cmd 0x%x: %w", cmdGetAllData, err)
		}
	}
	if !Verify(r) {
		return false, fmt.Errorf("multigas: telemetry frame: %w", ErrChecksum)
	}
	d.frame = decodeAll(r, d.comp)
	return true, nil
}

// Telemetry returns the frame last captured by DataAvailable.
func (d *Dev) Telemetry() TelemetryFrame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}
