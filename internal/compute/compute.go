// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package compute lists GPUs in the order a compute runtime numbers them.
package compute

// Device is a GPU as seen by a compute runtime. Index is the device number
// the runtime assigns within its platform.
type Device struct {
	Platform string
	Index    int
	VendorID uint16
	Domain   uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// Enumerator lists compute devices.
type Enumerator interface {
	Devices() ([]Device, error)
}

// None is the enumerator used when no compute runtime is available.
type None struct{}

// Devices returns no devices.
func (None) Devices() ([]Device, error) {
	return nil, nil
}
