// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import "math"

const (
	// Reference voltage of the thermistor divider and of the ADC.
	vRef = 3.0
	// Full scale of the 10 bit ADC.
	adcCounts = 1024
	// Nominal NTC resistance at 25°C.
	rNominal = 10000.0

	// Readings below this are reported as zero.
	zeroFlush = 0.00001
)

// Kept as variables so the Beta model is evaluated one float64 operation at a
// time instead of being folded at compile time.
var (
	kelvinOffset = 273.15
	thermBeta    = 3380.13
)

// Compensation is the temperature compensation state of a Dev. AmbientC is the
// board temperature captured when compensation was last enabled or the
// temperature was last read.
type Compensation struct {
	Enabled  bool
	AmbientC float64
}

// ThermistorCelsius converts the board thermistor ADC count to degrees Celsius
// using the single point Beta model.
func ThermistorCelsius(adc uint16) float64 {
	v := vRef * float64(adc) / adcCounts
	r := v * rNominal / (vRef - v)
	return 1/(1/(kelvinOffset+25)+1/thermBeta*math.Log(r/rNominal)) - kelvinOffset
}

// compensators holds the firmware correction curves. Each entry maps a raw
// concentration and the ambient temperature in °C to a corrected value.
// Temperatures outside every range yield 0. Range boundaries are kept exactly
// as the vendor specifies them, including the ones that differ from the
// pattern used by the other probes.
var compensators = map[GasType]func(con, t float64) float64{
	CO: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 20:
			return con / (0.005*t + 0.9)
		case t > 20 && t <= 40:
			return con/(0.005*t+0.9) - (0.3*t - 6)
		}
		return 0
	},
	H2S: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 20:
			return con / (0.005*t + 0.92)
		case t > 20 && t <= 60:
			return con / (0.015*t - 0.3)
		}
		return 0
	},
	NO2: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 0:
			return con/(0.005*t+0.9) - (-0.0025*t + 0.005)
		case t > 0 && t <= 20:
			return con/(0.005*t+0.9) - (0.005*t + 0.005)
		case t > 20 && t <= 40:
			return con/(0.005*t+0.9) - (0.0025*t + 0.1)
		}
		return 0
	},
	O3: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 0:
			return con/(0.015*t+1.1) - 0.05
		case t > 0 && t <= 20:
			return con/1.1 - 0.01*t
		case t > 20 && t <= 40:
			return con/1.1 - (-0.005*t + 0.3)
		}
		return 0
	},
	CL2: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 0:
			return con/(0.015*t+1.1) - (-0.0025 * t)
		case t > 0 && t <= 20:
			return con/1.1 - 0.005*t
		case t > 20 && t <= 40:
			return con/1.1 - (-0.005*t + 0.3)
		}
		return 0
	},
	NH3: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 0:
			return con/(0.006*t+0.95) - (-0.006*t + 0.25)
		case t > 0 && t <= 20:
			return con/(0.006*t+0.95) - (-0.012*t + 0.25)
		case t > 20 && t <= 40:
			return con/(0.005*t+1.08) - (-0.1*t + 2)
		}
		return 0
	},
	H2: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 20:
			return con/(0.74*t+0.007) - 5
		case t > 20 && t <= 40:
			return con/(0.025*t+0.3) - 5
		case t > 40 && t <= 60:
			return con/(0.001*t+0.9) - (0.75*t - 25)
		}
		return 0
	},
	HF: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 0:
			return con - (-0.0025 * t)
		case t > 0 && t <= 20:
			return con + 0.1
		case t > 20 && t <= 40:
			return con - (0.0375*t - 0.85)
		}
		return 0
	},
	PH3: func(con, t float64) float64 {
		if t > -20 && t <= 40 {
			return con / (0.005*t + 0.9)
		}
		return 0
	},
	HCL: func(con, t float64) float64 {
		switch {
		case t > -20 && t <= 0:
			return con - (-0.0075*t - 0.1)
		case t > 0 && t <= 20:
			return con - (-0.1)
		case t > 20 && t < 50:
			return con - (-0.01*t + 0.1)
		}
		return 0
	},
	SO2: func(con, t float64) float64 {
		switch {
		case t > -40 && t <= 40:
			return con / (0.006*t + 0.95)
		case t > 40 && t <= 60:
			return con/(0.006*t+0.95) - (0.05*t - 2)
		}
		return 0
	},
}

// Compensate corrects a concentration reading of gas for the ambient
// temperature ambientC. O2 and unrecognized probes are returned unchanged. The
// result is never negative.
func Compensate(gas GasType, con, ambientC float64) float64 {
	if f, ok := compensators[gas]; ok {
		con = f(con, ambientC)
	}
	return clampConcentration(con)
}

// clampConcentration forces negative values and floating point residue to
// exactly zero.
func clampConcentration(con float64) float64 {
	if con < zeroFlush {
		return 0
	}
	return con
}

// apply returns con compensated for gas when c is enabled, clamped either way.
func (c Compensation) apply(gas GasType, con float64) float64 {
	if !c.Enabled {
		return clampConcentration(con)
	}
	return Compensate(gas, con, c.AmbientC)
}
