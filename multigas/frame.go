// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"encoding/binary"

	"github.com/DFRobot/DFRobot-MultiGasSensor/common"
)

const (
	// FrameSize is the length of every frame exchanged with the module, in
	// both directions.
	FrameSize = 9
	// PayloadSize is the number of command bytes carried by a frame.
	PayloadSize = 6

	frameHead byte = 0xff
	frameAddr byte = 0x01
)

// Encode frames a command payload. The checksum covers bytes 1 through 7.
func Encode(payload [PayloadSize]byte) [FrameSize]byte {
	var f [FrameSize]byte
	f[0] = frameHead
	f[1] = frameAddr
	copy(f[2:8], payload[:])
	f[8] = common.SumComplement(f[1:8])
	return f
}

// Verify reports whether the checksum of frame matches its contents. Slices
// shorter than FrameSize never verify.
func Verify(frame []byte) bool {
	if len(frame) < FrameSize {
		return false
	}
	return common.SumComplement(frame[1:8]) == frame[8]
}

// raw16 returns the big endian value in bytes 2 and 3 of a response.
func raw16(frame []byte) uint16 {
	return binary.BigEndian.Uint16(frame[2:4])
}

// scaleDecimal applies the decimal exponent the module sends alongside a
// reading. Unknown exponents leave the value unscaled.
func scaleDecimal(raw uint16, exp byte) float64 {
	v := float64(raw)
	switch exp {
	case 1:
		v /= 10
	case 2:
		v /= 100
	}
	return v
}
