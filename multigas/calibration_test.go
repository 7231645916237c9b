// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas

import (
	"math"
	"testing"
)

// beta is the reference formula written out longhand.
func beta(adc uint16) float64 {
	v := 3 * float64(adc) / 1024
	r := v * 10000 / (3 - v)
	return 1/(1/(273.15+25)+(1/3380.13)*math.Log(r/10000)) - 273.15
}

// near compares floating point results computed along different paths.
func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestThermistorCelsius(t *testing.T) {
	if c := ThermistorCelsius(512); math.Abs(c-25) > 1e-9 {
		t.Errorf("ThermistorCelsius(512)=%.12f expected 25", c)
	}
	for _, adc := range []uint16{1, 100, 300, 512, 600, 800, 1000} {
		if c, expected := ThermistorCelsius(adc), beta(adc); !near(c, expected) {
			t.Errorf("ThermistorCelsius(%d)=%v expected %v", adc, c, expected)
		}
	}
	// Larger counts mean a larger NTC resistance, so a colder board.
	if c := ThermistorCelsius(600); c >= 25 || c < 10 {
		t.Errorf("ThermistorCelsius(600)=%.4f out of expected range", c)
	}
}

func TestCompensate(t *testing.T) {
	tests := []struct {
		name     string
		gas      GasType
		con      float64
		temp     float64
		expected float64
	}{
		{"o2 passthrough", O2, 20.9, 35, 20.9},
		{"o2 out of range", O2, 20.9, 95, 20.9},
		{"unknown passthrough", Unknown, 12, 95, 12},
		{"co low", CO, 100, 10, 100 / (0.005*10 + 0.9)},
		{"co high", CO, 100, 30, 100/(0.005*30+0.9) - (0.3*30 - 6)},
		{"co above range", CO, 100, 41, 0},
		{"co at lower bound", CO, 100, -20, 0},
		{"h2s high", H2S, 50, 45, 50 / (0.015*45 - 0.3)},
		{"no2 cold", NO2, 5, -10, 5/(0.005*-10+0.9) - (-0.0025*-10 + 0.005)},
		{"no2 warm", NO2, 5, 25, 5/(0.005*25+0.9) - (0.0025*25 + 0.1)},
		{"o3 mid", O3, 5, 10, 5/1.1 - 0.01*10},
		{"cl2 cold", CL2, 5, -5, 5/(0.015*-5+1.1) - (-0.0025 * -5)},
		{"nh3 warm", NH3, 50, 30, 50/(0.005*30+1.08) - (-0.1*30 + 2)},
		{"h2 hot", H2, 500, 50, 500/(0.001*50+0.9) - (0.75*50 - 25)},
		{"hf mid", HF, 3, 10, 3.1},
		{"ph3 edge", PH3, 10, 40, 10 / (0.005*40 + 0.9)},
		{"ph3 above", PH3, 10, 40.5, 0},
		{"hcl below 50", HCL, 10, 49.5, 10 - (-0.01*49.5 + 0.1)},
		{"hcl at 50", HCL, 10, 50, 0},
		{"so2 cold", SO2, 10, -30, 10 / (0.006*-30 + 0.95)},
		{"so2 hot", SO2, 10, 50, 10/(0.006*50+0.95) - (0.05*50 - 2)},
		{"clamp negative", CO, 1, 30, 0},
		{"flush residue", O2, 0.000004, 25, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := Compensate(test.gas, test.con, test.temp)
			if !near(res, test.expected) {
				t.Errorf("Compensate(%v, %v, %v)=%v expected %v", test.gas, test.con, test.temp, res, test.expected)
			}
			if res < 0 {
				t.Errorf("negative result %v", res)
			}
		})
	}
}

func TestCompensationDisabled(t *testing.T) {
	c := Compensation{Enabled: false, AmbientC: 95}
	for gas := range compensators {
		if v := c.apply(gas, 12.34); v != 12.34 {
			t.Errorf("apply(%v) with compensation disabled=%v expected 12.34", gas, v)
		}
	}
	c.Enabled = true
	if v := c.apply(CO, 12.34); v != 0 {
		t.Errorf("apply(CO) at 95°C=%v expected 0", v)
	}
}
