// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package multigas provides a driver for the DFRobot Gravity multi-gas sensor
// modules (SEN0465 through SEN0476 and the related probe boards). One driver
// handles every probe: the module reports which gas it measures, and the
// driver applies the matching temperature compensation when enabled.
//
// The module speaks a fixed 9 byte frame over either I²C or a UART. Use
// NewI2C for the former and NewStream with a Port (for example one from
// package serialport) for the latter.
//
// Range and resolution depend on the probe. Concentrations are returned in the
// unit the firmware reports: PPM for toxic gases, %VOL for O2.
//
// Refer to the product wiki for more information.
//
// https://wiki.dfrobot.com/SKU_SEN0465toSEN0476_Gravity_Gas_Sensor_Calibrated_I2C_UART
package multigas
