// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package serialport adapts a UART opened with go.bug.st/serial to the
// multigas.Port interface.
//
// A UART has no portable way to ask how many bytes are pending, so Buffered
// performs one short read and keeps what arrived in an internal buffer.
package serialport

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

// DefaultBaud is the factory UART speed of the module.
const DefaultBaud = 9600

// pollTimeout bounds one read issued by Buffered.
const pollTimeout = 5 * time.Millisecond

// Port is a buffered UART.
type Port struct {
	name string

	mu    sync.Mutex
	rw    io.ReadWriteCloser
	buf   []byte
	chunk [64]byte
}

// Open opens the UART name at baud, 8N1, and discards stale input.
func Open(name string, baud int) (*Port, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	sp, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", name, err)
	}
	if err := sp.SetReadTimeout(pollTimeout); err != nil {
		sp.Close()
		return nil, fmt.Errorf("serialport: %s: %w", name, err)
	}
	if err := sp.ResetInputBuffer(); err != nil {
		sp.Close()
		return nil, fmt.Errorf("serialport: %s: %w", name, err)
	}
	return New(name, sp), nil
}

// New wraps rw. Reads on rw must return (0, nil) when no data arrived within
// a short timeout, as a serial.Port with a read timeout does.
func New(name string, rw io.ReadWriteCloser) *Port {
	return &Port{name: name, rw: rw}
}

// Buffered implements multigas.Port. It reads what the device sent since the
// last call and returns the number of bytes held.
func (p *Port) Buffered() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n, err := p.rw.Read(p.chunk[:])
	p.buf = append(p.buf, p.chunk[:n]...)
	if err != nil {
		return len(p.buf), fmt.Errorf("serialport: %s: %w", p.name, err)
	}
	return len(p.buf), nil
}

// Read returns buffered bytes first, then reads from the device.
func (p *Port) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buf) > 0 {
		n := copy(b, p.buf)
		p.buf = p.buf[n:]
		return n, nil
	}
	return p.rw.Read(b)
}

func (p *Port) Write(b []byte) (int, error) {
	return p.rw.Write(b)
}

// Close closes the device and drops buffered bytes.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf = nil
	return p.rw.Close()
}

func (p *Port) String() string {
	return p.name
}
