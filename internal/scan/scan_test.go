// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package scan

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"testing"

	"amdgpuinfo/internal/compute"
	"amdgpuinfo/internal/gpudb"
	"amdgpuinfo/internal/memconfig"
	"amdgpuinfo/internal/pcibus"
	"amdgpuinfo/internal/report"
	"amdgpuinfo/internal/vbios"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBus struct {
	devices []pcibus.Device
	err     error
}

func (b fakeBus) Devices() ([]pcibus.Device, error) {
	return b.devices, b.err
}

type fakeWindow struct {
	value  uint32
	closed *int
}

func (w fakeWindow) Read32(offset int) (uint32, error) {
	return w.value, nil
}

func (w fakeWindow) Close() error {
	*w.closed++
	return nil
}

// fakeMapper returns windows by base address; unknown bases fail to map.
type fakeMapper struct {
	values map[int64]uint32
	mapped []int64
	closed int
}

func (m *fakeMapper) Map(base int64, length int) (memconfig.Window, error) {
	m.mapped = append(m.mapped, base)
	v, ok := m.values[base]
	if !ok {
		return nil, os.ErrPermission
	}
	return fakeWindow{value: v, closed: &m.closed}, nil
}

type fakeROM struct {
	image     []byte
	enableErr error
	locked    bool
}

func (r *fakeROM) Enable() error {
	if r.enableErr != nil {
		return r.enableErr
	}
	r.locked = false
	return nil
}

func (r *fakeROM) Disable() error {
	r.locked = true
	return nil
}

func (r *fakeROM) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(r.image)), nil
}

func romImage(version string) []byte {
	img := make([]byte, 0x200)
	img[0], img[1] = 0x55, 0xaa
	binary.LittleEndian.PutUint16(img[0x6e:], 0x100)
	copy(img[0x100:], version)
	return img
}

func amdDevice(bus uint8, deviceID uint16, rev uint8, name string) pcibus.Device {
	d := pcibus.Device{
		Address:   pcibus.Address{Bus: bus},
		VendorID:  gpudb.AMDVendorID,
		DeviceID:  deviceID,
		Class:     0x030000,
		Revision:  rev,
		Name:      name,
		SysfsPath: "/sys/bus/pci/devices/" + pcibus.Address{Bus: bus}.String(),
	}
	d.BARs[0] = pcibus.BAR{Base: 0xe0000000, Size: 0x10000000}
	d.BARs[5] = pcibus.BAR{Base: 0xfe60000c, Size: memconfig.RegisterBARSize}
	return d
}

type testScanner struct {
	*Scanner
	mapper *fakeMapper
	roms   map[string]*fakeROM
	out    *bytes.Buffer
}

func newTestScanner(devices ...pcibus.Device) *testScanner {
	ts := &testScanner{
		mapper: &fakeMapper{values: map[int64]uint32{}},
		roms:   map[string]*fakeROM{},
		out:    &bytes.Buffer{},
	}
	ts.Scanner = &Scanner{
		Bus:     fakeBus{devices: devices},
		Mapper:  ts.mapper,
		Console: &report.Console{Out: ts.out, Err: ts.out},
		ROM: func(path string) vbios.ROM {
			if r, ok := ts.roms[path]; ok {
				return r
			}
			r := &fakeROM{enableErr: os.ErrPermission}
			ts.roms[path] = r
			return r
		},
	}
	return ts
}

func TestScanNoDevices(t *testing.T) {
	ts := newTestScanner()
	reg, stats, err := ts.Scan()
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, Stats{}, stats)
}

func TestScanFiltersClassVendorAndAPU(t *testing.T) {
	audio := amdDevice(3, 0xaaf0, 0, "Ellesmere HDMI Audio")
	audio.Address.Function = 1
	audio.Class = 0x040300
	nvidia := amdDevice(4, 0x1b80, 0, "GP104")
	nvidia.VendorID = 0x10de
	apu := amdDevice(5, 0x15dd, 0xc6, "Raven Ridge [Radeon Vega Series / Radeon Vega Mobile Series]")
	gpu := amdDevice(3, 0x67df, 0xe7, "Ellesmere [Radeon RX 470/480/570/570X/580/580X/590]")

	ts := newTestScanner(gpu, audio, nvidia, apu)
	reg, _, err := ts.Scan()
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, uint16(0x67df), reg.Records()[0].DeviceID)
}

func TestScanPolaris(t *testing.T) {
	dev := amdDevice(3, 0x67df, 0xe7, "Ellesmere")
	ts := newTestScanner(dev)
	rom := &fakeROM{image: romImage("113-1E3660U-O4V")}
	ts.roms[dev.SysfsPath] = rom
	ts.mapper.values[0xfe600000] = 0x506021f2

	reg, stats, err := ts.Scan()
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	rec := reg.Records()[0]
	require.NotNil(t, rec.Model)
	assert.Equal(t, "Radeon RX 580", rec.Model.Name)
	assert.Equal(t, "113-1E3660U-O4V", rec.BIOSVersion)
	assert.Len(t, rec.VBIOS, vbios.ImageSize)
	assert.True(t, rom.locked)
	assert.Equal(t, uint32(0x506021f2), rec.MemConfig)
	assert.Equal(t, gpudb.MemGDDR5, rec.MemType)
	assert.Equal(t, 1, rec.MemManufacturer)
	assert.Equal(t, 2, rec.MemModel)
	require.NotNil(t, rec.Memory)
	assert.Equal(t, "Samsung K4G80325FB", rec.Memory.Name)
	assert.Equal(t, 0, stats.DMAFailures)
	assert.Equal(t, []int64{0xfe600000}, ts.mapper.mapped)
	assert.Equal(t, 1, ts.mapper.closed)
}

func TestScanBARLoop(t *testing.T) {
	dev := amdDevice(3, 0x67df, 0xe7, "Ellesmere")
	dev.BARs[5] = pcibus.BAR{Base: 0xfe700000, Size: memconfig.RegisterBARSize} // fails to map
	dev.BARs[4] = pcibus.BAR{Base: 0xfe640000, Size: memconfig.RegisterBARSize} // unknown manufacturer
	dev.BARs[2] = pcibus.BAR{Base: 0xfe600000, Size: memconfig.RegisterBARSize} // known part
	dev.BARs[1] = pcibus.BAR{Base: 0xfe500000, Size: memconfig.RegisterBARSize} // never reached
	ts := newTestScanner(dev)
	ts.mapper.values[0xfe640000] = 0x5000a000
	ts.mapper.values[0xfe600000] = 0x50007600
	ts.mapper.values[0xfe500000] = 0x50001200

	reg, stats, err := ts.Scan()
	require.NoError(t, err)
	rec := reg.Records()[0]
	assert.Equal(t, []int64{0xfe700000, 0xfe640000, 0xfe600000}, ts.mapper.mapped)
	assert.Equal(t, 2, ts.mapper.closed)
	assert.Equal(t, 1, stats.DMAFailures)
	require.NotNil(t, rec.Memory)
	assert.Equal(t, "SK Hynix H5GQ8H24MJR", rec.Memory.Name)
}

func TestScanMapFailure(t *testing.T) {
	dev := amdDevice(3, 0x67df, 0xe7, "Ellesmere")
	ts := newTestScanner(dev)
	reg, stats, err := ts.Scan()
	require.NoError(t, err)
	rec := reg.Records()[0]
	assert.Nil(t, rec.Memory)
	assert.Equal(t, uint32(0), rec.MemConfig)
	assert.Equal(t, 1, stats.DMAFailures)
	// the ROM could not be unlocked
	assert.Equal(t, "", rec.BIOSVersion)
	assert.Contains(t, ts.out.String(), "03:00.0: Unable to unlock vbios (try running as root)\n")
}

func TestScanVegaFixedMemory(t *testing.T) {
	dev := amdDevice(6, 0x687f, 0xc1, "Vega 10 XL/XT [Radeon RX Vega 56/64]")
	ts := newTestScanner(dev)
	reg, stats, err := ts.Scan()
	require.NoError(t, err)
	rec := reg.Records()[0]
	assert.Empty(t, ts.mapper.mapped)
	assert.Equal(t, 0, stats.DMAFailures)
	assert.Equal(t, uint32(0x61000000), rec.MemConfig)
	assert.Equal(t, gpudb.MemHBM, rec.MemType)
	require.NotNil(t, rec.Memory)
	assert.Equal(t, "Samsung KHA843801B", rec.Memory.Name)
	assert.Equal(t, gpudb.ASICVega10, rec.ASIC())
}

func TestScanUnknownModel(t *testing.T) {
	dev := amdDevice(9, 0x73bf, 0xc1, "Navi 21")
	ts := newTestScanner(dev)
	rom := &fakeROM{image: romImage("113-D4120100-100")}
	ts.roms[dev.SysfsPath] = rom
	reg, stats, err := ts.Scan()
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	rec := reg.Records()[0]
	assert.Nil(t, rec.Model)
	assert.Equal(t, "113-D4120100-100", rec.BIOSVersion)
	assert.Empty(t, ts.mapper.mapped)
	assert.Equal(t, 1, stats.Unrecognized)
	assert.Contains(t, ts.out.String(), "AMD card found, but model not found.\n")
}

func TestScanBusError(t *testing.T) {
	s := &Scanner{Bus: fakeBus{err: errors.New("no sysfs")}}
	reg, _, err := s.Scan()
	require.Error(t, err)
	assert.Equal(t, 0, reg.Len())
}

type fakeEnumerator struct {
	devices []compute.Device
	err     error
}

func (e fakeEnumerator) Devices() ([]compute.Device, error) {
	return e.devices, e.err
}

func TestCorrelate(t *testing.T) {
	ts := newTestScanner(
		amdDevice(3, 0x67df, 0xe7, ""),
		amdDevice(6, 0x687f, 0xc1, ""),
		amdDevice(9, 0x67df, 0xef, ""),
	)
	reg, _, err := ts.Scan()
	require.NoError(t, err)

	n, err := Correlate(reg, fakeEnumerator{devices: []compute.Device{
		{Platform: "ROCm", Index: 0, VendorID: 0x1002, Bus: 9},
		{Platform: "ROCm", Index: 1, VendorID: 0x1002, Bus: 3},
		{Platform: "ROCm", Index: 2, VendorID: 0x10de, Bus: 6},
		{Platform: "ROCm", Index: 3, VendorID: 0x1002, Bus: 0x42},
	}})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	recs := reg.Records()
	assert.Equal(t, 1, recs[0].ComputeIndex)
	assert.Equal(t, "ROCm", recs[0].ComputePlatform)
	assert.Equal(t, -1, recs[1].ComputeIndex)
	assert.Equal(t, 0, recs[2].ComputeIndex)

	reg.ReorderByComputeIndex()
	recs = reg.Records()
	assert.Equal(t, []uint8{6, 9, 3}, []uint8{recs[0].Address.Bus, recs[1].Address.Bus, recs[2].Address.Bus})
}

func TestCorrelateDuplicateLocation(t *testing.T) {
	ts := newTestScanner(amdDevice(3, 0x67df, 0xe7, ""), amdDevice(6, 0x67df, 0xe7, ""))
	reg, _, err := ts.Scan()
	require.NoError(t, err)
	n, err := Correlate(reg, fakeEnumerator{devices: []compute.Device{
		{Platform: "ROCm", Index: 0, VendorID: 0x1002, Bus: 3},
		{Platform: "ROCm", Index: 1, VendorID: 0x1002, Bus: 3},
		{Platform: "ROCm", Index: 2, VendorID: 0x1002, Bus: 6},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	recs := reg.Records()
	assert.Equal(t, 0, recs[0].ComputeIndex)
	assert.Equal(t, 2, recs[1].ComputeIndex)
}

func TestCorrelateNone(t *testing.T) {
	ts := newTestScanner(amdDevice(3, 0x67df, 0xe7, ""))
	reg, _, err := ts.Scan()
	require.NoError(t, err)
	n, err := Correlate(reg, compute.None{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, -1, reg.Records()[0].ComputeIndex)

	_, err = Correlate(reg, fakeEnumerator{err: errors.New("boom")})
	assert.Error(t, err)
}
