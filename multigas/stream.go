// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"fmt"
	"io"
	"time"
)

// DefaultStreamTimeout is how long Stream.Receive waits for a frame.
const DefaultStreamTimeout = 3000 * time.Millisecond

// Port is a byte channel without addressing, such as a UART. Buffered returns
// the number of bytes that can be read without blocking.
type Port interface {
	io.ReadWriter
	Buffered() (int, error)
}

// Clock is the time source used by Stream while it waits for data.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Stream is the streaming transport. A response is considered complete when
// the port reports exactly the expected number of buffered bytes.
type Stream struct {
	p       Port
	clock   Clock
	timeout time.Duration
	poll    time.Duration
}

// StreamOpts configures a Stream. The zero value selects the defaults.
type StreamOpts struct {
	// Timeout bounds the wait for a frame. Defaults to DefaultStreamTimeout.
	Timeout time.Duration
	// PollInterval is the pause between two availability checks. Defaults to
	// one millisecond.
	PollInterval time.Duration
	// Clock overrides the system clock. Used by tests.
	Clock Clock
}

// NewStreamTransport returns a transport reading frames from p.
func NewStreamTransport(p Port, opts *StreamOpts) *Stream {
	s := &Stream{p: p, clock: systemClock{}, timeout: DefaultStreamTimeout, poll: time.Millisecond}
	if opts != nil {
		if opts.Timeout > 0 {
			s.timeout = opts.Timeout
		}
		if opts.PollInterval > 0 {
			s.poll = opts.PollInterval
		}
		if opts.Clock != nil {
			s.clock = opts.Clock
		}
	}
	return s
}

// Send implements Transport. reg is ignored.
func (s *Stream) Send(reg byte, w []byte) error {
	if _, err := s.p.Write(w); err != nil {
		return fmt.Errorf("stream write: %w", err)
	}
	return nil
}

// Receive implements Transport. Bytes are stored in r from index reg on. It
// returns n once r[8] has been filled, and 0 with ErrTimeout when the port ran
// out of bytes first.
func (s *Stream) Receive(reg byte, r []byte, n int) (int, error) {
	avail := 0
	deadline := s.clock.Now().Add(s.timeout)
	for s.clock.Now().Before(deadline) {
		var err error
		if avail, err = s.p.Buffered(); err != nil {
			return 0, fmt.Errorf("stream: %w", err)
		}
		if avail == n {
			break
		}
		s.clock.Sleep(s.poll)
	}

	b := make([]byte, 1)
	for ix := int(reg); ix < avail && ix < len(r); ix++ {
		if _, err := io.ReadFull(s.p, b); err != nil {
			return 0, fmt.Errorf("stream read: %w", err)
		}
		r[ix] = b[0]
		if ix >= FrameSize-1 {
			return n, nil
		}
	}
	return 0, ErrTimeout
}

// Buffered implements Poller.
func (s *Stream) Buffered() (int, error) {
	return s.p.Buffered()
}

func (s *Stream) String() string {
	if st, ok := s.p.(fmt.Stringer); ok {
		return st.String()
	}
	return "stream"
}
