//go:build examples
// +build examples

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package multigas_test

import (
	"fmt"
	"log"
	"time"

	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas"
	"github.com/DFRobot/DFRobot-MultiGasSensor/multigas/serialport"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Reads a multi-gas module in passive mode on the default I²C bus.
//
// To execute this as a stand-alone program, copy the file to a new
// directory as main.go, rename Example to main and the package to main.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := multigas.NewI2C(bus, multigas.DefaultI2CAddr, nil)
	if err != nil {
		log.Fatal(err)
	}
	if ok, err := dev.SetAcquireMode(multigas.PassiveMode); err != nil || !ok {
		log.Fatalf("passive mode: %t %v", ok, err)
	}
	if err := dev.SetTempCompensation(true); err != nil {
		log.Fatal(err)
	}
	gas, err := dev.QueryGasType()
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		con, err := dev.ReadConcentration()
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s: %.2f\n", gas, con)
		time.Sleep(time.Second)
	}
}

// Captures the frames a UART module pushes on its own.
func Example_active() {
	p, err := serialport.Open("/dev/ttyAMA0", 9600)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	dev := multigas.NewStream(p, nil)
	if _, err := dev.SetAcquireMode(multigas.ActiveMode); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		ok, err := dev.DataAvailable()
		if err != nil {
			fmt.Println(err)
		} else if ok {
			fmt.Println(dev.Telemetry())
		}
		time.Sleep(time.Second)
	}
}
