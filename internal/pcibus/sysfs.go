// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package pcibus

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/pkg/errors"
)

// DevicesDir is the sysfs directory holding one entry per PCI function.
const DevicesDir = "sys/bus/pci/devices"

// config space offsets
const (
	cfgVendorID    = 0x00
	cfgDeviceID    = 0x02
	cfgRevision    = 0x08
	cfgClass       = 0x09
	cfgSubVendorID = 0x2c
	cfgSubDeviceID = 0x2e
	cfgHeaderLen   = 0x30
)

// Sysfs enumerates PCI functions below Root (the filesystem root, "/" when empty).
type Sysfs struct {
	Root  string
	Names Names
}

// NewSysfs returns a bus rooted at root that looks up names in the PCI id database.
func NewSysfs(root string) *Sysfs {
	s := &Sysfs{Root: root}
	db, err := NewPCIDB(s.root())
	if err != nil {
		slog.Debug("PCI id database not available", slog.String("error", err.Error()))
		return s
	}
	s.Names = db
	return s
}

func (s *Sysfs) root() string {
	if s.Root == "" {
		return "/"
	}
	return s.Root
}

// DevicePath returns the sysfs directory of the function at addr.
func (s *Sysfs) DevicePath(addr Address) string {
	return filepath.Join(s.root(), DevicesDir, addr.String())
}

// Devices returns the PCI functions in address order. Functions whose config
// space cannot be read are skipped.
func (s *Sysfs) Devices() ([]Device, error) {
	addrs, err := s.addresses()
	if err != nil {
		return nil, err
	}
	productNames := s.productNames()
	devices := make([]Device, 0, len(addrs))
	for _, addr := range addrs {
		dev, err := s.readDevice(addr)
		if err != nil {
			slog.Warn("skipping PCI function", slog.String("address", addr.String()), slog.String("error", err.Error()))
			continue
		}
		dev.Name = productNames[addr.String()]
		if s.Names != nil {
			if dev.Name == "" {
				dev.Name = s.Names.DeviceName(dev.VendorID, dev.DeviceID)
			}
			dev.SubsystemVendorName = s.Names.VendorName(dev.SubVendorID)
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func (s *Sysfs) addresses() ([]Address, error) {
	dir := filepath.Join(s.root(), DevicesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}
	var addrs []Address
	for _, e := range entries {
		addr, err := ParseAddress(e.Name())
		if err != nil {
			slog.Debug("ignoring sysfs entry", slog.String("name", e.Name()))
			continue
		}
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b Address) int {
		return strings.Compare(a.String(), b.String())
	})
	return addrs, nil
}

// productNames maps addresses to product names as resolved by ghw.
func (s *Sysfs) productNames() map[string]string {
	info, err := ghw.PCI(ghw.WithChroot(s.root()))
	if err != nil {
		slog.Debug("ghw PCI enumeration failed", slog.String("error", err.Error()))
		return nil
	}
	names := make(map[string]string, len(info.Devices))
	for _, d := range info.Devices {
		if d == nil || d.Product == nil || d.Product.Name == "" || strings.EqualFold(d.Product.Name, "unknown") {
			continue
		}
		names[d.Address] = d.Product.Name
	}
	return names
}

func (s *Sysfs) readDevice(addr Address) (Device, error) {
	path := s.DevicePath(addr)
	dev := Device{Address: addr, SysfsPath: path}
	config, err := os.ReadFile(filepath.Join(path, "config"))
	if err != nil {
		return dev, errors.Wrap(err, "failed to read config space")
	}
	if err := ParseConfig(config, &dev); err != nil {
		return dev, err
	}
	resource, err := os.ReadFile(filepath.Join(path, "resource"))
	if err != nil {
		slog.Debug("no resource file", slog.String("address", addr.String()), slog.String("error", err.Error()))
		return dev, nil
	}
	bars, err := ParseResource(resource)
	if err != nil {
		return dev, err
	}
	dev.BARs = bars
	return dev, nil
}

// ParseConfig fills the identification fields of dev from the standard
// configuration header.
func ParseConfig(config []byte, dev *Device) error {
	if len(config) < cfgHeaderLen {
		return errors.Errorf("config space too short: %d bytes", len(config))
	}
	le := binary.LittleEndian
	dev.VendorID = le.Uint16(config[cfgVendorID:])
	dev.DeviceID = le.Uint16(config[cfgDeviceID:])
	dev.Revision = config[cfgRevision]
	dev.Class = uint32(config[cfgClass+2])<<16 | uint32(config[cfgClass+1])<<8 | uint32(config[cfgClass])
	dev.SubVendorID = le.Uint16(config[cfgSubVendorID:])
	dev.SubDeviceID = le.Uint16(config[cfgSubDeviceID:])
	return nil
}

// ParseResource parses the sysfs resource attribute. Each line holds the
// start, end and flags of a region; the first NumBARs lines are the BARs.
func ParseResource(data []byte) ([NumBARs]BAR, error) {
	var bars [NumBARs]BAR
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 0; i < NumBARs && scanner.Scan(); i++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			return bars, errors.Errorf("malformed resource line %d: %q", i, scanner.Text())
		}
		var vals [3]uint64
		for j, f := range fields {
			v, err := strconv.ParseUint(f, 0, 64)
			if err != nil {
				return bars, errors.Wrapf(err, "malformed resource line %d", i)
			}
			vals[j] = v
		}
		start, end := vals[0], vals[1]
		bars[i].Base = start
		bars[i].Flags = vals[2]
		if end > start {
			bars[i].Size = end - start + 1
		}
	}
	return bars, errors.Wrap(scanner.Err(), "failed to read resource")
}
