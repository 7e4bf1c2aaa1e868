// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"slices"
	"testing"

	"amdgpuinfo/internal/gpudb"
	"amdgpuinfo/internal/pcibus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(indexes ...int) *Registry {
	reg := NewRegistry()
	for i, idx := range indexes {
		rec := NewRecord(&pcibus.Device{
			Address:  pcibus.Address{Bus: uint8(i + 1)},
			VendorID: gpudb.AMDVendorID,
			DeviceID: 0x67df,
		})
		rec.ComputeIndex = idx
		reg.Append(rec)
	}
	return reg
}

func computeIndexes(reg *Registry) []int {
	var out []int
	for _, rec := range reg.Records() {
		out = append(out, rec.ComputeIndex)
	}
	return out
}

func TestNewRecord(t *testing.T) {
	dev := &pcibus.Device{
		Address:             pcibus.Address{Bus: 3},
		VendorID:            0x1002,
		DeviceID:            0x67df,
		SubVendorID:         0x1043,
		SubDeviceID:         0x04fb,
		Revision:            0xe7,
		SubsystemVendorName: "ASUSTeK Computer Inc.",
		SysfsPath:           "/sys/bus/pci/devices/0000:03:00.0",
	}
	rec := NewRecord(dev)
	assert.Equal(t, NoComputeIndex, rec.ComputeIndex)
	assert.Equal(t, uint8(3), rec.Address.Bus)
	assert.Equal(t, uint16(0x04fb), rec.SubDeviceID)
	assert.Equal(t, "ASUSTeK Computer Inc.", rec.SubsystemName)
	assert.Equal(t, gpudb.ASICUnknown, rec.ASIC())
	rec.Model = gpudb.FindModel(0x67df, 0, 0xe7)
	assert.Equal(t, gpudb.ASICPolaris10, rec.ASIC())
}

func TestAppendKeepsDiscoveryOrder(t *testing.T) {
	reg := newTestRegistry(5, 4, 3)
	require.Equal(t, 3, reg.Len())
	recs := reg.Records()
	assert.Equal(t, uint8(1), recs[0].Address.Bus)
	assert.Equal(t, uint8(3), recs[2].Address.Bus)
}

func TestRecordsReturnsCopy(t *testing.T) {
	reg := newTestRegistry(0, 1)
	recs := reg.Records()
	recs[0], recs[1] = recs[1], recs[0]
	assert.Equal(t, []int{0, 1}, computeIndexes(reg))
}

func TestFindByBusAddress(t *testing.T) {
	reg := newTestRegistry(-1, -1)
	rec := reg.FindByBusAddress(2, 0, 0)
	require.NotNil(t, rec)
	assert.Equal(t, uint8(2), rec.Address.Bus)
	assert.Nil(t, reg.FindByBusAddress(2, 0, 1))
	assert.Nil(t, reg.FindByBusAddress(9, 0, 0))
}

func TestReorderByComputeIndex(t *testing.T) {
	reg := newTestRegistry(3, 1, 2)
	reg.ReorderByComputeIndex()
	assert.Equal(t, []int{1, 2, 3}, computeIndexes(reg))
	assert.Equal(t, 3, reg.Len())
}

func TestReorderUncorrelated(t *testing.T) {
	reg := newTestRegistry(-1, 1, 0)
	reg.ReorderByComputeIndex()
	got := computeIndexes(reg)
	assert.Equal(t, []int{-1, 0, 1}, got)
	assert.Less(t, slices.Index(got, 0), slices.Index(got, 1))
}

func TestReorderIsStable(t *testing.T) {
	reg := newTestRegistry(-1, 0, -1)
	reg.ReorderByComputeIndex()
	recs := reg.Records()
	assert.Equal(t, uint8(1), recs[0].Address.Bus)
	assert.Equal(t, uint8(3), recs[1].Address.Bus)
	assert.Equal(t, uint8(2), recs[2].Address.Bus)
}

func TestReorderEmpty(t *testing.T) {
	reg := NewRegistry()
	reg.ReorderByComputeIndex()
	assert.Equal(t, 0, reg.Len())
}
