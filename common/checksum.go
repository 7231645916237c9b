// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the 8-bit sum checksum used by serial sensor frames.
package common

// SumComplement returns the two's-complement of the 8-bit sum of bytes. Adding
// the result to the sum of bytes yields zero modulo 256. Frames from the
// DFRobot/Winsen family of gas sensors carry this value as their last byte.
func SumComplement(bytes []byte) byte {
	var sum byte
	for _, val := range bytes {
		sum += val
	}
	return ^sum + 1
}
