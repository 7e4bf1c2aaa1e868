// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package scan discovers AMD cards on the PCI bus and fills their records.
package scan

import (
	"fmt"
	"log/slog"

	"amdgpuinfo/internal/compute"
	"amdgpuinfo/internal/gpu"
	"amdgpuinfo/internal/gpudb"
	"amdgpuinfo/internal/memconfig"
	"amdgpuinfo/internal/pcibus"
	"amdgpuinfo/internal/report"
	"amdgpuinfo/internal/vbios"

	"github.com/pkg/errors"
)

// Stats counts non-fatal failures of a scan.
type Stats struct {
	DMAFailures  int // register windows that could not be mapped
	Unrecognized int // cards missing from the model table
}

// Scanner discovers cards. ROM returns the firmware resource of a device
// directory; Console receives per-device diagnostics and may be nil.
type Scanner struct {
	Bus     pcibus.Bus
	Mapper  memconfig.Mapper
	ROM     func(devicePath string) vbios.ROM
	Console *report.Console
}

// New returns a scanner using the system bus, /dev/mem and sysfs ROM resources.
func New(bus pcibus.Bus, console *report.Console) *Scanner {
	return &Scanner{
		Bus:     bus,
		Mapper:  memconfig.DevMem{},
		ROM:     func(path string) vbios.ROM { return vbios.NewSysfsROM(path) },
		Console: console,
	}
}

// Scan enumerates the bus and returns a record for every discrete AMD display
// adapter in discovery order. Per-device failures leave fields unset and do
// not stop the scan; only a failed bus enumeration is returned as an error.
func (s *Scanner) Scan() (*gpu.Registry, Stats, error) {
	registry := gpu.NewRegistry()
	var stats Stats
	devices, err := s.Bus.Devices()
	if err != nil {
		return registry, stats, errors.Wrap(err, "failed to enumerate PCI devices")
	}
	for i := range devices {
		dev := &devices[i]
		if !dev.IsDisplay(gpudb.AMDVendorID) {
			continue
		}
		if pcibus.IsAPU(dev.Name) {
			slog.Debug("skipping APU", slog.String("address", dev.Address.String()), slog.String("name", dev.Name))
			continue
		}
		rec := gpu.NewRecord(dev)
		registry.Append(rec)
		s.identify(rec, dev, &stats)
	}
	return registry, stats, nil
}

func (s *Scanner) identify(rec *gpu.Record, dev *pcibus.Device, stats *Stats) {
	addr := rec.Address.String()
	rec.Model = gpudb.FindModel(rec.DeviceID, rec.SubDeviceID, rec.Revision)
	if rec.Model == nil {
		stats.Unrecognized++
		slog.Info("model not found", slog.String("address", addr), slog.String("device", fmt.Sprintf("%04x", rec.DeviceID)))
		s.Console.Infof("AMD card found, but model not found.\n")
	} else {
		slog.Debug("model found", slog.String("address", addr), slog.String("model", rec.Model.Name), slog.String("asic", rec.Model.ASIC.String()))
	}

	s.readBIOS(rec)

	// the register offset depends on the family
	if rec.Model == nil {
		return
	}
	if cfg, ok := gpudb.FixedMemory(rec.Model.ASIC); ok {
		rec.MemConfig = cfg.MemConfig
		rec.MemType = cfg.Type
		rec.MemManufacturer = cfg.Manufacturer
		rec.MemModel = cfg.Model
		rec.Memory = gpudb.FindMemoryPart(cfg.Type, cfg.Manufacturer, cfg.Model)
		return
	}
	s.readMemConfig(rec, dev, stats)
}

func (s *Scanner) readBIOS(rec *gpu.Record) {
	if s.ROM == nil {
		return
	}
	image, err := vbios.Dump(s.ROM(rec.SysfsPath))
	if err != nil {
		slog.Warn("failed to read vbios", slog.String("address", rec.Address.String()), slog.String("error", err.Error()))
		var verr *vbios.Error
		if errors.As(err, &verr) {
			switch verr.Stage {
			case vbios.StageUnlock:
				s.Console.Errorf("%s: Unable to unlock vbios (try running as root)\n", rec.Address.Short())
			case vbios.StageRead:
				s.Console.Errorf("%s: Unable to read vbios\n", rec.Address.Short())
			case vbios.StageRelock:
				s.Console.Errorf("%s: Unable to relock vbios\n", rec.Address.Short())
			}
		}
		return
	}
	rec.VBIOS = image
	rec.BIOSVersion = vbios.ParseVersion(image)
}

// readMemConfig tries BARs 5 down to 1 and stops at the first one whose
// register decodes to a known memory part.
func (s *Scanner) readMemConfig(rec *gpu.Record, dev *pcibus.Device, stats *Stats) {
	for i := pcibus.NumBARs - 1; i > 0; i-- {
		bar := dev.BARs[i]
		if bar.Size != memconfig.RegisterBARSize {
			continue
		}
		base := memconfig.WindowBase(bar.Base)
		value, err := memconfig.Read(s.Mapper, base, rec.Model.ASIC)
		if err != nil {
			if memconfig.IsMapFailure(err) {
				stats.DMAFailures++
			}
			slog.Debug("failed to read memory configuration", slog.String("address", rec.Address.String()), slog.Int("bar", i), slog.String("error", err.Error()))
			continue
		}
		fields := memconfig.Decode(value)
		rec.MemConfig = value
		rec.MemType = fields.Type
		rec.MemManufacturer = fields.Manufacturer
		rec.MemModel = fields.Model
		rec.Memory = gpudb.FindMemoryPart(fields.Type, fields.Manufacturer, fields.Model)
		slog.Debug("memory configuration", slog.String("address", rec.Address.String()), slog.Int("bar", i), slog.String("value", fmt.Sprintf("0x%x", value)))
		if rec.Memory != nil {
			return
		}
	}
}

// Correlate assigns compute indexes to records from the enumerator's devices
// and returns the number of compute devices reported. When several devices
// share a bus address the first one wins.
func Correlate(registry *gpu.Registry, enumerator compute.Enumerator) (int, error) {
	devices, err := enumerator.Devices()
	if err != nil {
		return 0, errors.Wrap(err, "failed to enumerate compute devices")
	}
	for _, d := range devices {
		if d.VendorID != gpudb.AMDVendorID {
			continue
		}
		rec := registry.FindByBusAddress(d.Bus, d.Device, d.Function)
		if rec == nil {
			slog.Debug("compute device without PCI record", slog.Int("index", d.Index), slog.String("platform", d.Platform))
			continue
		}
		if rec.ComputeIndex != gpu.NoComputeIndex {
			slog.Debug("record already correlated", slog.String("address", rec.Address.String()), slog.Int("index", d.Index))
			continue
		}
		rec.ComputeIndex = d.Index
		rec.ComputePlatform = d.Platform
	}
	return len(devices), nil
}
