// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package gpudb

// Manufacturer codes found in bits 11:8 of the memory configuration register.
const (
	MfrSamsung  = 0x1
	MfrInfineon = 0x2
	MfrElpida   = 0x3
	MfrEtron    = 0x4
	MfrNanya    = 0x5
	MfrHynix    = 0x6
	MfrMosel    = 0x7
	MfrWinbond  = 0x8
	MfrESMT     = 0x9
	MfrMicron   = 0xf
)

// Video memory parts, matched in order. Generic per-technology entries come last.
var memoryParts = []MemoryPart{
	// GDDR5
	{Type: MemGDDR5, Manufacturer: MfrSamsung, Model: Any, Name: "Unknown Samsung GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrSamsung, Model: 0x0, Name: "Samsung K4G20325FD"},
	{Type: MemGDDR5, Manufacturer: MfrSamsung, Model: 0x2, Name: "Samsung K4G80325FB"},
	{Type: MemGDDR5, Manufacturer: MfrSamsung, Model: 0x3, Name: "Samsung K4G20325FD"},
	{Type: MemGDDR5, Manufacturer: MfrSamsung, Model: 0x6, Name: "Samsung K4G20325FS"},
	{Type: MemGDDR5, Manufacturer: MfrSamsung, Model: 0x9, Name: "Samsung K4G41325FE"},
	{Type: MemGDDR5, Manufacturer: MfrInfineon, Model: Any, Name: "Unknown Infineon GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrElpida, Model: Any, Name: "Unknown Elpida GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrElpida, Model: 0x0, Name: "Elpida EDW4032BABG"},
	{Type: MemGDDR5, Manufacturer: MfrElpida, Model: 0x1, Name: "Elpida EDW2032BBBG"},
	{Type: MemGDDR5, Manufacturer: MfrEtron, Model: Any, Name: "Unknown Etron GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrNanya, Model: Any, Name: "Unknown Nanya GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: Any, Name: "Unknown SK Hynix GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x2, Name: "SK Hynix H5GQ2H24MFR"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x3, Name: "SK Hynix H5GQ2H24AFR"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x4, Name: "SK Hynix H5GC2H24BFR"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x5, Name: "SK Hynix H5GQ4H24MFR"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x6, Name: "SK Hynix H5GC4H24AJR"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x7, Name: "SK Hynix H5GQ8H24MJR"},
	{Type: MemGDDR5, Manufacturer: MfrHynix, Model: 0x8, Name: "SK Hynix H5GC8H24AJR"},
	{Type: MemGDDR5, Manufacturer: MfrMosel, Model: Any, Name: "Unknown Mosel GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrWinbond, Model: Any, Name: "Unknown Winbond GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrESMT, Model: Any, Name: "Unknown ESMT GDDR5"},
	{Type: MemGDDR5, Manufacturer: MfrMicron, Model: Any, Name: "Unknown Micron"},
	{Type: MemGDDR5, Manufacturer: MfrMicron, Model: 0x1, Name: "Micron MT51J256M32"},
	{Type: MemGDDR5, Manufacturer: MfrMicron, Model: 0x0, Name: "Micron MT51J256M3"},

	// HBM
	{Type: MemHBM, Manufacturer: MfrSamsung, Model: Any, Name: "Unknown Samsung HBM"},
	{Type: MemHBM, Manufacturer: MfrSamsung, Model: 0x0, Name: "Samsung KHA843801B"},
	{Type: MemHBM, Manufacturer: MfrInfineon, Model: Any, Name: "Unknown Infineon HBM"},
	{Type: MemHBM, Manufacturer: MfrElpida, Model: Any, Name: "Unknown Elpida HBM"},
	{Type: MemHBM, Manufacturer: MfrEtron, Model: Any, Name: "Unknown Etron HBM"},
	{Type: MemHBM, Manufacturer: MfrNanya, Model: Any, Name: "Unknown Nanya HBM"},
	{Type: MemHBM, Manufacturer: MfrHynix, Model: Any, Name: "Unknown SK Hynix HBM"},
	{Type: MemHBM, Manufacturer: MfrHynix, Model: 0x0, Name: "SK Hynix H5VR2GCCM"},
	{Type: MemHBM, Manufacturer: MfrMosel, Model: Any, Name: "Unknown Mosel HBM"},
	{Type: MemHBM, Manufacturer: MfrWinbond, Model: Any, Name: "Unknown Winbond HBM"},
	{Type: MemHBM, Manufacturer: MfrESMT, Model: Any, Name: "Unknown ESMT HBM"},
	{Type: MemHBM, Manufacturer: MfrMicron, Model: Any, Name: "Unknown Micron HBM"},

	// GDDR6
	{Type: MemGDDR6, Manufacturer: MfrSamsung, Model: Any, Name: "Samsung GDDR6"},
	{Type: MemGDDR6, Manufacturer: MfrSamsung, Model: 0x8, Name: "Samsung K4Z80325BC"},
	{Type: MemGDDR6, Manufacturer: MfrHynix, Model: Any, Name: "Hynix GDDR6"},
	{Type: MemGDDR6, Manufacturer: MfrMicron, Model: Any, Name: "Micron GDDR6"},
	{Type: MemGDDR6, Manufacturer: MfrMicron, Model: 0x0, Name: "Micron MT61K256M32"},

	// generic
	{Type: MemGDDR5, Manufacturer: Any, Model: Any, Name: "GDDR5"},
	{Type: MemGDDR6, Manufacturer: Any, Model: Any, Name: "GDDR6"},
	{Type: MemHBM, Manufacturer: Any, Model: Any, Name: "Unknown HBM"},
	{Type: MemUnknown, Manufacturer: Any, Model: Any, Name: "Unknown Memory"},
}
