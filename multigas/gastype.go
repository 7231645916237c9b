// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

// GasType identifies the probe fitted to the module.
type GasType int

const (
	// Unknown is reported for probe codes the driver does not recognize.
	Unknown GasType = iota
	O2
	CO
	H2S
	NO2
	O3
	CL2
	NH3
	H2
	HCL
	SO2
	HF
	PH3
	// NoGas is returned by QueryGasType when no valid response was received.
	NoGas
)

var gasCodes = map[GasType]byte{
	O2:  0x05,
	CO:  0x04,
	H2S: 0x03,
	NO2: 0x2c,
	O3:  0x2a,
	CL2: 0x31,
	NH3: 0x02,
	H2:  0x06,
	HCL: 0x2e,
	SO2: 0x2b,
	HF:  0x33,
	PH3: 0x45,
}

var gasLabels = map[GasType]string{
	O2:    "O2",
	CO:    "CO",
	H2S:   "H2S",
	NO2:   "NO2",
	O3:    "O3",
	CL2:   "CL2",
	NH3:   "NH3",
	H2:    "H2",
	HCL:   "HCL",
	SO2:   "SO2",
	HF:    "HF",
	PH3:   "PH3",
	NoGas: "NO GAS",
}

var codeGases = func() map[byte]GasType {
	m := make(map[byte]GasType, len(gasCodes))
	for g, c := range gasCodes {
		m[c] = g
	}
	return m
}()

// GasTypeFromCode maps a wire code to its GasType. Unrecognized codes map to
// Unknown.
func GasTypeFromCode(code byte) GasType {
	if g, ok := codeGases[code]; ok {
		return g
	}
	return Unknown
}

// Code returns the wire code of the gas type, or 0 for Unknown and NoGas.
func (g GasType) Code() byte {
	return gasCodes[g]
}

// String returns the chemical formula of the gas. Unknown returns an empty
// string.
func (g GasType) String() string {
	return gasLabels[g]
}

// thresholdScale is the factor the firmware expects alarm thresholds to be
// multiplied by. Probes reporting with one decimal digit take thresholds in
// tenths.
func (g GasType) thresholdScale() uint16 {
	switch g {
	case O2, NO2, O3, CL2, HCL, SO2, HF, PH3:
		return 10
	}
	return 1
}
