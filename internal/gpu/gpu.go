// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu holds the records of discovered cards.
package gpu

import (
	"slices"

	"amdgpuinfo/internal/gpudb"
	"amdgpuinfo/internal/pcibus"
)

// NoComputeIndex marks a record that is not correlated to a compute device.
const NoComputeIndex = -1

// Record describes one discovered card. Fields other than the address and
// ids are filled as discovery steps succeed and keep their zero value
// (ComputeIndex: NoComputeIndex) otherwise.
type Record struct {
	Address       pcibus.Address
	VendorID      uint16
	DeviceID      uint16
	SubVendorID   uint16
	SubDeviceID   uint16
	Revision      uint8
	SubsystemName string // subsystem vendor name
	SysfsPath     string

	Model  *gpudb.Model      // nil when the card is not in the model table
	Memory *gpudb.MemoryPart // nil when the memory part is not known

	MemConfig       uint32 // raw MC_SEQ_MISC0 value
	MemType         gpudb.MemoryType
	MemManufacturer int
	MemModel        int

	VBIOS       []byte
	BIOSVersion string // empty when the image has no version

	ComputeIndex    int
	ComputePlatform string
}

// NewRecord returns a record for a PCI function.
func NewRecord(dev *pcibus.Device) *Record {
	return &Record{
		Address:       dev.Address,
		VendorID:      dev.VendorID,
		DeviceID:      dev.DeviceID,
		SubVendorID:   dev.SubVendorID,
		SubDeviceID:   dev.SubDeviceID,
		Revision:      dev.Revision,
		SubsystemName: dev.SubsystemVendorName,
		SysfsPath:     dev.SysfsPath,
		ComputeIndex:  NoComputeIndex,
	}
}

// ASIC returns the chip family of the record, ASICUnknown when the model is unknown.
func (r *Record) ASIC() gpudb.ASIC {
	if r.Model == nil {
		return gpudb.ASICUnknown
	}
	return r.Model.ASIC
}

// Registry is the ordered set of discovered cards, in discovery order until
// reordered.
type Registry struct {
	records []*Record
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Append adds a record at the end.
func (r *Registry) Append(rec *Record) {
	r.records = append(r.records, rec)
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns the records in order. The slice is a copy; the records are shared.
func (r *Registry) Records() []*Record {
	return slices.Clone(r.records)
}

// FindByBusAddress returns the record at bus:device.function, or nil.
func (r *Registry) FindByBusAddress(bus, device, function uint8) *Record {
	for _, rec := range r.records {
		if rec.Address.Bus == bus && rec.Address.Device == device && rec.Address.Function == function {
			return rec
		}
	}
	return nil
}

// ReorderByComputeIndex sorts the records by ascending compute index. Records
// with equal indexes keep their relative order; uncorrelated records sort first.
func (r *Registry) ReorderByComputeIndex() {
	slices.SortStableFunc(r.records, func(a, b *Record) int {
		return a.ComputeIndex - b.ComputeIndex
	})
}
