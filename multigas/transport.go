// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

var (
	// ErrNoAck is returned when a bus transaction with the module fails.
	ErrNoAck = errors.New("no ack from device")
	// ErrTimeout is returned when a streaming transport did not receive a
	// complete frame before its deadline.
	ErrTimeout = errors.New("timeout waiting for frame")
	// ErrChecksum is returned when a response frame fails verification.
	ErrChecksum = errors.New("invalid checksum")
)

// Transport moves frames between the driver and the module. reg is a register
// hint for addressed buses and ignored by streaming ones.
type Transport interface {
	// Send writes w to the module.
	Send(reg byte, w []byte) error
	// Receive reads up to n bytes into r and returns how many were read.
	Receive(reg byte, r []byte, n int) (int, error)
}

// Poller is implemented by transports that can report how many bytes are
// waiting without issuing a request.
type Poller interface {
	Buffered() (int, error)
}

const (
	// DefaultI2CAddr is the factory address: group 6 with A0 and A1 set low.
	DefaultI2CAddr uint16 = 0x74

	i2cGroupBase uint16 = 0x60
	i2cGroups           = 8
)

// I2CAddrForGroup returns the bus address selected by an address group (1-8,
// see Dev.ChangeAddrGroup) and the A0/A1 DIP switches.
func I2CAddrForGroup(group int, a0, a1 bool) (uint16, error) {
	if group < 1 || group > i2cGroups {
		return 0, fmt.Errorf("multigas: invalid address group %d", group)
	}
	addr := i2cGroupBase + uint16(group-1)*4
	if a0 {
		addr |= 0x02
	}
	if a1 {
		addr |= 0x01
	}
	return addr, nil
}

// I2C is the addressed transport. Each send is one write transaction of the
// register byte followed by the frame. Each receive writes the register byte,
// then reads the response in a second transaction.
type I2C struct {
	mu sync.Mutex
	d  *i2c.Dev
}

// NewI2CTransport returns a transport talking to the module at addr on b.
func NewI2CTransport(b i2c.Bus, addr uint16) *I2C {
	return &I2C{d: &i2c.Dev{Bus: b, Addr: addr}}
}

// Send implements Transport.
func (t *I2C) Send(reg byte, w []byte) error {
	buf := make([]byte, 0, len(w)+1)
	buf = append(buf, reg)
	buf = append(buf, w...)
	if err := t.conn().Tx(buf, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrNoAck, err)
	}
	return nil
}

// Receive implements Transport. The bus returns exactly n bytes or fails.
func (t *I2C) Receive(reg byte, r []byte, n int) (int, error) {
	c := t.conn()
	if err := c.Tx([]byte{reg}, nil); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoAck, err)
	}
	if err := c.Tx(nil, r[:n]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoAck, err)
	}
	return n, nil
}

// SetAddr changes the address used for subsequent transactions, for example
// after Dev.ChangeAddrGroup.
func (t *I2C) SetAddr(addr uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.d = &i2c.Dev{Bus: t.d.Bus, Addr: addr}
}

// Addr returns the current bus address.
func (t *I2C) Addr() uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.Addr
}

func (t *I2C) conn() conn.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d
}

func (t *I2C) String() string {
	return t.conn().String()
}
