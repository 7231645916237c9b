// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for the multi-gas sensor driver and the
// tooling built around it.
//
// The driver lives in package multigas. The Prometheus exporter lives in
// cmd/multigas-exporter.
package devices
