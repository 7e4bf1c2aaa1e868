// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package report renders discovered cards in the long and short text formats.
package report

import (
	"fmt"
	"io"
	"strings"

	"amdgpuinfo/internal/gpu"
	"amdgpuinfo/internal/gpudb"
)

// BlankBIOSVersion is displayed for cards whose BIOS version could not be read.
const BlankBIOSVersion = "xxx-xxx-xxxx"

// NoCardFound is the message printed when the scan found no card.
const NoCardFound = "No AMD Graphic Card found"

const separator = "-----------------------------------"

// Format selects the report layout.
type Format int

const (
	FormatLong Format = iota
	FormatShort
	FormatBIOSOnly
)

// Options controls rendering.
type Options struct {
	Format    Format
	MemConfig bool // include the raw memory configuration in the short form
}

// BIOSVersion returns the version to display for a record.
func BIOSVersion(rec *gpu.Record) string {
	if rec.BIOSVersion == "" {
		return BlankBIOSVersion
	}
	return rec.BIOSVersion
}

// ModelName returns the model name, or an id based placeholder for unknown cards.
func ModelName(rec *gpu.Record) string {
	if rec.Model != nil {
		return rec.Model.Name
	}
	return fmt.Sprintf("Unknown GPU %04x-%04xr%02x", rec.VendorID, rec.DeviceID, rec.Revision)
}

// MemoryName returns the memory part and technology label, or the raw codes
// when the part is unknown.
func MemoryName(rec *gpu.Record) (part string, label string) {
	if rec.Memory != nil {
		return rec.Memory.Name, rec.Memory.Type.Label()
	}
	return fmt.Sprintf("Unknown Memory %d-%d", rec.MemManufacturer, rec.MemModel), gpudb.MemUnknown.Label()
}

func gpuPrefix(rec *gpu.Record) string {
	if rec.ComputeIndex > gpu.NoComputeIndex {
		return fmt.Sprintf("GPU%d:", rec.ComputeIndex)
	}
	return "GPU:"
}

// Write renders records to w.
func Write(w io.Writer, records []*gpu.Record, opts Options) error {
	var sb strings.Builder
	for _, rec := range records {
		switch opts.Format {
		case FormatBIOSOnly:
			writeBIOSOnly(&sb, rec)
		case FormatShort:
			writeShort(&sb, rec, opts)
		default:
			writeLong(&sb, rec)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBIOSOnly(sb *strings.Builder, rec *gpu.Record) {
	sb.WriteString(gpuPrefix(rec))
	sb.WriteString(BIOSVersion(rec))
	sb.WriteString("\n")
}

func writeShort(sb *strings.Builder, rec *gpu.Record, opts Options) {
	sb.WriteString(gpuPrefix(rec))
	fmt.Fprintf(sb, "%02x.%02x.%x:", rec.Address.Bus, rec.Address.Device, rec.Address.Function)
	sb.WriteString(ModelName(rec) + ":")
	sb.WriteString(BIOSVersion(rec) + ":")
	if opts.MemConfig {
		fmt.Fprintf(sb, "0x%x:", rec.MemConfig)
	}
	part, label := MemoryName(rec)
	sb.WriteString(part + ":" + label + "\n")
}

func writeLong(sb *strings.Builder, rec *gpu.Record) {
	sb.WriteString(separator + "\n")
	if rec.Model == nil {
		fmt.Fprintf(sb, "Unknown card: %04x:%04x rev %02x\n", rec.VendorID, rec.DeviceID, rec.Revision)
		fmt.Fprintf(sb, "PCI: %s\n", rec.Address.Short())
		fmt.Fprintf(sb, "Subvendor:  0x%04x\n", rec.SubVendorID)
		fmt.Fprintf(sb, "Subdevice:  0x%04x\n", rec.SubDeviceID)
		return
	}
	platform := rec.ComputePlatform
	if platform == "" {
		platform = "None"
	}
	fmt.Fprintf(sb, "Found Card: %04x:%04x rev %02x (AMD %s)\n", rec.VendorID, rec.DeviceID, rec.Revision, rec.Model.Name)
	fmt.Fprintf(sb, "Chip Type: %s\n", rec.Model.ASIC)
	fmt.Fprintf(sb, "BIOS Version: %s\n", BIOSVersion(rec))
	fmt.Fprintf(sb, "PCI: %s\n", rec.Address.Short())
	fmt.Fprintf(sb, "Compute Platform: %s\n", platform)
	fmt.Fprintf(sb, "Compute ID: %d\n", rec.ComputeIndex)
	fmt.Fprintf(sb, "Subvendor:  0x%04x\n", rec.SubVendorID)
	fmt.Fprintf(sb, "Subdevice:  0x%04x\n", rec.SubDeviceID)
	fmt.Fprintf(sb, "Subsystem: %s\n", rec.SubsystemName)
	fmt.Fprintf(sb, "Sysfs Path: %s\n", rec.SysfsPath)
	fmt.Fprintf(sb, "Memory Configuration: 0x%x\n", rec.MemConfig)
	if rec.Memory != nil {
		fmt.Fprintf(sb, "Memory Model: %s:%s\n", rec.Memory.Name, rec.Memory.Type.Label())
	} else {
		fmt.Fprintf(sb, "Memory Model: Unknown Memory - Mfr:%d Model:%d\n", rec.MemManufacturer, rec.MemModel)
	}
}
