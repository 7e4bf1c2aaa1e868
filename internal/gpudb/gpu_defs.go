// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package gpudb

// AMD discrete GPUs
// references:
//
//	https://pci-ids.ucw.cz/read/PC/1002
//
// Entries are matched in order. Within a device id, specific revisions are
// listed before or after the revision 0 catch-all; FindModel only falls back
// to the catch-all when no specific entry matches.
var models = []Model{
	// Vega
	{DeviceID: 0x687f, Revision: 0x00, Name: "Radeon RX Vega", ASIC: ASICVega10},
	{DeviceID: 0x687f, Revision: 0xc0, Name: "Radeon RX Vega 64", ASIC: ASICVega10},
	{DeviceID: 0x687f, Revision: 0xc1, Name: "Radeon RX Vega 64", ASIC: ASICVega10},
	{DeviceID: 0x687f, Revision: 0xc3, Name: "Radeon RX Vega 56", ASIC: ASICVega10},
	{DeviceID: 0x6863, Revision: 0x00, Name: "Radeon Vega FE", ASIC: ASICVega10},

	// Vega 20
	{DeviceID: 0x66af, Revision: 0x00, Name: "Radeon VII", ASIC: ASICVega20},
	{DeviceID: 0x66af, Revision: 0xc4, Name: "Radeon VII", ASIC: ASICVega20},

	// Navi 10
	{DeviceID: 0x7310, Revision: 0x00, Name: "Radeon RX 5700", ASIC: ASICNavi10},
	{DeviceID: 0x7312, Revision: 0x00, Name: "Radeon Pro W5700", ASIC: ASICNavi10},
	{DeviceID: 0x7318, Revision: 0x00, Name: "Radeon RX 5700", ASIC: ASICNavi10},
	{DeviceID: 0x7319, Revision: 0x00, Name: "Radeon RX 5700", ASIC: ASICNavi10},
	{DeviceID: 0x731a, Revision: 0x00, Name: "Radeon RX 5700", ASIC: ASICNavi10},
	{DeviceID: 0x731b, Revision: 0x00, Name: "Radeon RX 5700", ASIC: ASICNavi10},
	{DeviceID: 0x731f, Revision: 0x00, Name: "Radeon RX 5600/5700", ASIC: ASICNavi10},
	{DeviceID: 0x731f, Revision: 0xc0, Name: "Radeon RX 5700 XT", ASIC: ASICNavi10}, // XTX or 50th Anniversary Edition
	{DeviceID: 0x731f, Revision: 0xc1, Name: "Radeon RX 5700 XT", ASIC: ASICNavi10},
	{DeviceID: 0x731f, Revision: 0xc4, Name: "Radeon RX 5700", ASIC: ASICNavi10},
	{DeviceID: 0x731f, Revision: 0xca, Name: "Radeon RX 5600 XT", ASIC: ASICNavi10},

	// Navi 12
	{DeviceID: 0x7360, Revision: 0x00, Name: "Radeon Navi 12", ASIC: ASICNavi12},
	{DeviceID: 0x7362, Revision: 0x00, Name: "Radeon Navi 12", ASIC: ASICNavi12},

	// Navi 14
	{DeviceID: 0x7340, Revision: 0x00, Name: "Radeon RX 5500", ASIC: ASICNavi14},
	{DeviceID: 0x7340, Revision: 0xc5, Name: "Radeon RX 5500 XT", ASIC: ASICNavi14},
	{DeviceID: 0x7341, Revision: 0x00, Name: "Radeon Pro W5500", ASIC: ASICNavi14},
	{DeviceID: 0x7347, Revision: 0x00, Name: "Radeon Pro W5500M", ASIC: ASICNavi14},
	{DeviceID: 0x734f, Revision: 0x00, Name: "Radeon Pro W5500M", ASIC: ASICNavi14},

	// Fiji
	{DeviceID: 0x7300, Revision: 0x00, Name: "Radeon R9 Fury/Nano/X", ASIC: ASICFiji},
	{DeviceID: 0x7300, Revision: 0xc8, Name: "Radeon R9 Fury/Nano/X", ASIC: ASICFiji},
	{DeviceID: 0x7300, Revision: 0xc9, Name: "Radeon R9 Fury/Nano/X", ASIC: ASICFiji},
	{DeviceID: 0x7300, Revision: 0xca, Name: "Radeon R9 Fury/Nano/X", ASIC: ASICFiji},
	{DeviceID: 0x7300, Revision: 0xcb, Name: "Radeon R9 Fury", ASIC: ASICFiji},

	// Polaris 2x/3x
	{DeviceID: 0x67df, Revision: 0xe7, Name: "Radeon RX 580", ASIC: ASICPolaris10},
	{DeviceID: 0x67df, Revision: 0xef, Name: "Radeon RX 570", ASIC: ASICPolaris10},
	{DeviceID: 0x67df, Revision: 0xe1, Name: "Radeon RX 590", ASIC: ASICPolaris30},
	{DeviceID: 0x6fdf, Revision: 0xef, Name: "Radeon RX 580", ASIC: ASICPolaris20}, // 2048SP
	{DeviceID: 0x67ff, Revision: 0xcf, Name: "Radeon RX 560", ASIC: ASICPolaris11},
	{DeviceID: 0x67ef, Revision: 0xe5, Name: "Radeon RX 560", ASIC: ASICPolaris11}, // RX 560D, 14 CU
	{DeviceID: 0x67ff, Revision: 0xff, Name: "Radeon RX 550", ASIC: ASICPolaris11}, // 640 shaders
	{DeviceID: 0x699f, Revision: 0xc7, Name: "Radeon RX 550", ASIC: ASICPolaris12},

	// Polaris
	{DeviceID: 0x67df, Revision: 0x00, Name: "Radeon RX 470/480", ASIC: ASICPolaris10},
	{DeviceID: 0x67df, Revision: 0xc7, Name: "Radeon RX 480", ASIC: ASICPolaris10},
	{DeviceID: 0x67df, Revision: 0xcf, Name: "Radeon RX 470", ASIC: ASICPolaris10},
	{DeviceID: 0x67ef, Revision: 0x00, Name: "Radeon RX 460", ASIC: ASICPolaris11},
	{DeviceID: 0x67ef, Revision: 0xc0, Name: "Radeon RX 460", ASIC: ASICPolaris11},
	{DeviceID: 0x67ef, Revision: 0xc1, Name: "Radeon RX 460", ASIC: ASICPolaris11},
	{DeviceID: 0x67ef, Revision: 0xc5, Name: "Radeon RX 460", ASIC: ASICPolaris11},
	{DeviceID: 0x67ef, Revision: 0xcf, Name: "Radeon RX 460", ASIC: ASICPolaris11},

	// R9 3xx
	{DeviceID: 0x67b1, Revision: 0x80, Name: "Radeon R9 390", ASIC: ASICHawaii},
	{DeviceID: 0x67b0, Revision: 0x80, Name: "Radeon R9 390x", ASIC: ASICHawaii},
	{DeviceID: 0x6939, Revision: 0xf1, Name: "Radeon R9 380", ASIC: ASICTonga},
	{DeviceID: 0x6938, Revision: 0x00, Name: "Radeon R9 380x", ASIC: ASICTonga},
	{DeviceID: 0x6810, Revision: 0x81, Name: "Radeon R7 370", ASIC: ASICPitcairn},
	{DeviceID: 0x665f, Revision: 0x81, Name: "Radeon R7 360", ASIC: ASICBonaire},

	// R9 2xx
	{DeviceID: 0x67b9, Revision: 0x00, Name: "Radeon R9 295x2", ASIC: ASICHawaii},
	{DeviceID: 0x67b1, Revision: 0x00, Name: "Radeon R9 290/R9 390", ASIC: ASICHawaii},
	{DeviceID: 0x67b0, Revision: 0x00, Name: "Radeon R9 290x/R9 390x", ASIC: ASICHawaii},
	{DeviceID: 0x6939, Revision: 0x00, Name: "Radeon R9 285/R9 380", ASIC: ASICTonga},
	{DeviceID: 0x6811, Revision: 0x00, Name: "Radeon R9 270", ASIC: ASICPitcairn},
	{DeviceID: 0x6810, Revision: 0x00, Name: "Radeon R9 270x/R7 370", ASIC: ASICPitcairn},
	{DeviceID: 0x6658, Revision: 0x00, Name: "Radeon R7 260x", ASIC: ASICBonaire},

	// HD7xxx
	{DeviceID: 0x679b, Revision: 0x00, Name: "Radeon HD7990", ASIC: ASICTahiti},
	{DeviceID: 0x6798, Revision: 0x00, Name: "Radeon HD7970/R9 280x", ASIC: ASICTahiti},
	{DeviceID: 0x679a, Revision: 0x00, Name: "Radeon HD7950/R9 280", ASIC: ASICTahiti},
	{DeviceID: 0x679e, Revision: 0x00, Name: "Radeon HD7870XT", ASIC: ASICTahiti},
	{DeviceID: 0x6818, Revision: 0x00, Name: "Radeon HD7870", ASIC: ASICPitcairn},
	{DeviceID: 0x6819, Revision: 0x00, Name: "Radeon HD7850", ASIC: ASICPitcairn},
	{DeviceID: 0x665c, Revision: 0x00, Name: "Radeon HD7790", ASIC: ASICBonaire},

	// HD6xxx
	{DeviceID: 0x671d, Revision: 0x00, Name: "Radeon HD6990", ASIC: ASICAntilles},
	{DeviceID: 0x6718, Revision: 0x00, Name: "Radeon HD6970", ASIC: ASICCayman},
	{DeviceID: 0x6719, Revision: 0x00, Name: "Radeon HD6950", ASIC: ASICCayman},
	{DeviceID: 0x671f, Revision: 0x00, Name: "Radeon HD6930", ASIC: ASICCayman},
	{DeviceID: 0x6738, Revision: 0x00, Name: "Radeon HD6870", ASIC: ASICBarts},
	{DeviceID: 0x6739, Revision: 0x00, Name: "Radeon HD6850", ASIC: ASICBarts},
	{DeviceID: 0x6778, Revision: 0x00, Name: "Radeon HD6450/HD7470", ASIC: ASICCaicos},
	{DeviceID: 0x6779, Revision: 0x00, Name: "Radeon HD6450", ASIC: ASICCaicos},

	// HD5xxx
	{DeviceID: 0x689c, Revision: 0x00, Name: "Radeon HD5970", ASIC: ASICHemlock},
	{DeviceID: 0x6898, Revision: 0x00, Name: "Radeon HD5870", ASIC: ASICCypress},
	{DeviceID: 0x6899, Revision: 0x00, Name: "Radeon HD5850", ASIC: ASICCypress},
	{DeviceID: 0x689e, Revision: 0x00, Name: "Radeon HD5830", ASIC: ASICCypress},
}
