// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package memconfig reads and decodes the memory controller scratch register
// (MC_SEQ_MISC0) that describes the video memory installed on a card.
package memconfig

import (
	"amdgpuinfo/internal/gpudb"

	"github.com/pkg/errors"
)

const (
	// WindowSize is the length of the register window mapped from the BAR.
	WindowSize = 0x20000
	// RegisterBARSize is the size of the BAR holding the memory controller registers.
	RegisterBARSize = 0x40000

	// register indexes are in dwords
	mmMC_SEQ_MISC0      = 0xa80 //lint:ignore ST1003 register names follow the hardware documentation
	mmMC_SEQ_MISC0_FIJI = 0xa71 //lint:ignore ST1003 register names follow the hardware documentation
)

// Fields holds the memory identification codes from the scratch register.
type Fields struct {
	Type         gpudb.MemoryType
	Manufacturer int
	Model        int
}

// Decode extracts the memory technology (bits 31:28), model (bits 15:12) and
// manufacturer (bits 11:8) codes.
func Decode(v uint32) Fields {
	return Fields{
		Type:         gpudb.MemoryType((v >> 28) & 0xf),
		Model:        int((v >> 12) & 0xf),
		Manufacturer: int((v >> 8) & 0xf),
	}
}

// RegisterOffset returns the byte offset of MC_SEQ_MISC0 inside the register window.
func RegisterOffset(asic gpudb.ASIC) int {
	if asic == gpudb.ASICFiji {
		return mmMC_SEQ_MISC0_FIJI * 4
	}
	return mmMC_SEQ_MISC0 * 4
}

// WindowBase returns the physical address of the register window for a BAR base address.
func WindowBase(barBase uint64) int64 {
	return int64(barBase &^ 0xf)
}

// Window is a read-only view of mapped device registers.
type Window interface {
	Read32(offset int) (uint32, error)
	Close() error
}

// Mapper maps a physical address range for reading.
type Mapper interface {
	Map(base int64, length int) (Window, error)
}

// ErrMapFailed is returned by Read when the register window could not be mapped.
var ErrMapFailed = errors.New("failed to map register window")

// Read maps the register window at base, reads the scratch register for the
// given family and unmaps the window. Mapping errors wrap ErrMapFailed.
func Read(m Mapper, base int64, asic gpudb.ASIC) (value uint32, err error) {
	w, err := m.Map(base, WindowSize)
	if err != nil {
		return 0, errors.Wrapf(ErrMapFailed, "base 0x%x: %v", base, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to unmap register window")
		}
	}()
	value, err = w.Read32(RegisterOffset(asic))
	if err != nil {
		return 0, errors.Wrap(err, "failed to read MC_SEQ_MISC0")
	}
	return value, nil
}

// IsMapFailure reports whether err came from a failed mapping.
func IsMapFailure(err error) bool {
	return errors.Is(err, ErrMapFailed)
}
