// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package pcibus enumerates PCI functions from sysfs and classifies the
// display adapters among them.
package pcibus

import (
	"fmt"
	"regexp"
	"strconv"

	pciaddr "github.com/jaypipes/ghw/pkg/pci/address"
	"github.com/pkg/errors"
)

// ClassDisplay is the PCI base class of display controllers.
const ClassDisplay = 0x03

// NumBARs is the number of base address registers of a type 0 header.
const NumBARs = 6

// Address is a PCI function address.
type Address struct {
	Domain   uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// ParseAddress parses a domain:bus:device.function address such as 0000:01:00.0.
func ParseAddress(s string) (Address, error) {
	a := pciaddr.FromString(s)
	if a == nil {
		return Address{}, errors.Errorf("invalid PCI address %q", s)
	}
	domain, err := strconv.ParseUint(a.Domain, 16, 16)
	if err != nil {
		return Address{}, errors.Wrapf(err, "invalid PCI domain in %q", s)
	}
	bus, err := strconv.ParseUint(a.Bus, 16, 8)
	if err != nil {
		return Address{}, errors.Wrapf(err, "invalid PCI bus in %q", s)
	}
	dev, err := strconv.ParseUint(a.Device, 16, 8)
	if err != nil || dev > 0x1f {
		return Address{}, errors.Errorf("invalid PCI device in %q", s)
	}
	fn, err := strconv.ParseUint(a.Function, 16, 8)
	if err != nil || fn > 7 {
		return Address{}, errors.Errorf("invalid PCI function in %q", s)
	}
	return Address{Domain: uint16(domain), Bus: uint8(bus), Device: uint8(dev), Function: uint8(fn)}, nil
}

// String returns the full sysfs form, e.g. 0000:01:00.0.
func (a Address) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%x", a.Domain, a.Bus, a.Device, a.Function)
}

// Short returns the bus:device.function form, e.g. 01:00.0.
func (a Address) Short() string {
	return fmt.Sprintf("%02x:%02x.%x", a.Bus, a.Device, a.Function)
}

// BAR is a base address region. Size is zero for unused regions.
type BAR struct {
	Base  uint64
	Size  uint64
	Flags uint64
}

// Device is a PCI function with the identification data needed to classify it.
type Device struct {
	Address             Address
	VendorID            uint16
	DeviceID            uint16
	Class               uint32 // base class, subclass, programming interface
	SubVendorID         uint16
	SubDeviceID         uint16
	Revision            uint8
	BARs                [NumBARs]BAR
	Name                string // device name from the PCI id database
	SubsystemVendorName string
	SysfsPath           string
}

// BaseClass returns the PCI base class code.
func (d *Device) BaseClass() uint8 {
	return uint8(d.Class >> 16)
}

// IsDisplay reports whether the function is a display controller of the given vendor.
func (d *Device) IsDisplay(vendorID uint16) bool {
	return d.BaseClass() == ClassDisplay && d.VendorID == vendorID
}

// Bus lists the PCI functions present on the system.
type Bus interface {
	Devices() ([]Device, error)
}

var apuRegex = regexp.MustCompile(`(?i)(Kaveri|Beavercreek|Sumo|Wrestler|Kabini|Mullins|Temash|Trinity|Richland|Stoney|Carrizo|Raven)`)

// IsAPU reports whether a device name belongs to an integrated (APU) graphics part.
func IsAPU(name string) bool {
	return apuRegex.MatchString(name)
}
