// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package gpudb provides AMD GPU model and video memory part definitions and
// the tiered lookup rules used to identify a card from its PCI identifiers
// and its memory configuration register.
package gpudb

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// AMDVendorID is the PCI vendor id of AMD/ATI graphics devices.
const AMDVendorID = 0x1002

// Any is the manufacturer/model wildcard in memory part definitions.
const Any = -1

// ASIC identifies a GPU chip family.
type ASIC int

const (
	ASICUnknown ASIC = iota
	ASICCypress
	ASICHemlock
	ASICCaicos
	ASICBarts
	ASICCayman
	ASICAntilles
	ASICTahiti
	ASICPitcairn
	ASICVerde
	ASICOland
	ASICHainan
	ASICBonaire
	ASICKaveri
	ASICKabini
	ASICHawaii
	ASICMullins
	ASICTopaz
	ASICTonga
	ASICFiji
	ASICCarrizo
	ASICStoney
	ASICPolaris10
	ASICPolaris11
	ASICPolaris12
	ASICPolaris20
	ASICPolaris30
	ASICVega10
	ASICVega20
	ASICNavi10
	ASICNavi12
	ASICNavi14
	ASICRaven
)

var asicNames = []string{
	"Unknown",
	"Cypress",
	"Hemlock",
	"Caicos",
	"Barts",
	"Cayman",
	"Antilles",
	"Tahiti",
	"Pitcairn",
	"Verde",
	"Oland",
	"Hainan",
	"Bonaire",
	"Kaveri",
	"Kabini",
	"Hawaii",
	"Mullins",
	"Topaz",
	"Tonga",
	"Fiji",
	"Carrizo",
	"Stoney",
	"Polaris10",
	"Polaris11",
	"Polaris12",
	"Polaris20",
	"Polaris30",
	"Vega10",
	"Vega20",
	"Navi10",
	"Navi12",
	"Navi14",
	"Raven",
}

func (a ASIC) String() string {
	if a < 0 || int(a) >= len(asicNames) {
		return asicNames[ASICUnknown]
	}
	return asicNames[a]
}

// MemoryType is the memory technology code found in bits 31:28 of the
// memory configuration register.
type MemoryType int

const (
	MemUnknown MemoryType = 0
	MemDDR1    MemoryType = 1
	MemDDR2    MemoryType = 2
	MemDDR3    MemoryType = 3
	MemDDR4    MemoryType = 4
	MemGDDR5   MemoryType = 5
	MemHBM     MemoryType = 6
	MemGDDR6   MemoryType = 7
)

var memoryTypeLabels = map[MemoryType]string{
	MemUnknown: "Unknown",
	MemDDR1:    "DDR1",
	MemDDR2:    "DDR2",
	MemDDR3:    "DDR3",
	MemDDR4:    "DDR4",
	MemGDDR5:   "GDDR5",
	MemHBM:     "HBM",
	MemGDDR6:   "GDDR6",
}

// Label returns the display label of the memory technology.
func (m MemoryType) Label() string {
	if label, ok := memoryTypeLabels[m]; ok {
		return label
	}
	return memoryTypeLabels[MemUnknown]
}

func (m MemoryType) String() string {
	return m.Label()
}

// Model describes a GPU product. A zero SubsystemID or Revision matches any value.
type Model struct {
	DeviceID    uint16
	SubsystemID uint16
	Revision    uint8
	Name        string
	ASIC        ASIC
}

// MemoryPart describes a video memory chip. Manufacturer and Model may be Any.
type MemoryPart struct {
	Type         MemoryType
	Manufacturer int
	Model        int
	Name         string
}

// FixedMemoryConfig is the memory configuration reported for families that
// expose no readable scratch register.
type FixedMemoryConfig struct {
	MemConfig    uint32
	Type         MemoryType
	Manufacturer int
	Model        int
}

// noScratchRegister lists the families whose memory configuration cannot be read.
var noScratchRegister = mapset.NewThreadUnsafeSet(ASICVega10, ASICVega20)

var hbmFixedConfig = FixedMemoryConfig{MemConfig: 0x61000000, Type: MemHBM, Manufacturer: 1, Model: 0}

// HasScratchRegister reports whether the memory configuration register of the
// family can be read through a BAR mapping.
func HasScratchRegister(asic ASIC) bool {
	return !noScratchRegister.Contains(asic)
}

// FixedMemory returns the fixed memory configuration of a family without a
// scratch register. ok is false for families with a readable register.
func FixedMemory(asic ASIC) (cfg FixedMemoryConfig, ok bool) {
	if HasScratchRegister(asic) {
		return FixedMemoryConfig{}, false
	}
	return hbmFixedConfig, true
}

func findModelExact(deviceID, subsystemID uint16, revision uint8) *Model {
	for i := range models {
		m := &models[i]
		if m.DeviceID == deviceID && m.SubsystemID == subsystemID && m.Revision == revision {
			return m
		}
	}
	return nil
}

// FindModel looks up the model definition for a card. Tiers are tried from
// most to least specific: exact triple, subsystem relaxed, revision relaxed
// (subsystem kept), both relaxed. Returns nil if no tier matches.
func FindModel(deviceID, subsystemID uint16, revision uint8) *Model {
	if m := findModelExact(deviceID, subsystemID, revision); m != nil {
		return m
	}
	if subsystemID > 0 {
		if m := findModelExact(deviceID, 0, revision); m != nil {
			return m
		}
	}
	if revision > 0 {
		if m := findModelExact(deviceID, subsystemID, 0); m != nil {
			return m
		}
	}
	return findModelExact(deviceID, 0, 0)
}

func findMemoryPartExact(memType MemoryType, manufacturer, model int) *MemoryPart {
	for i := range memoryParts {
		p := &memoryParts[i]
		if p.Type == memType && p.Manufacturer == manufacturer && p.Model == model {
			return p
		}
	}
	return nil
}

// FindMemoryPart looks up the memory part for a decoded register. An unmatched
// model is retried once as Any; the manufacturer is never relaxed.
func FindMemoryPart(memType MemoryType, manufacturer, model int) *MemoryPart {
	if p := findMemoryPartExact(memType, manufacturer, model); p != nil {
		return p
	}
	if model != Any {
		return findMemoryPartExact(memType, manufacturer, Any)
	}
	return nil
}

// Models returns a copy of the model definitions in match order.
func Models() []Model {
	return append([]Model(nil), models...)
}

// MemoryParts returns a copy of the memory part definitions in match order.
func MemoryParts() []MemoryPart {
	return append([]MemoryPart(nil), memoryParts...)
}
