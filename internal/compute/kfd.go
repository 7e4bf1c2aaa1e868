// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

const (
	// KFDNodesDir is the amdkfd topology directory, one subdirectory per node.
	KFDNodesDir = "sys/class/kfd/kfd/topology/nodes"
	// PlatformROCm labels devices found through the KFD topology.
	PlatformROCm = "ROCm"
)

// KFD enumerates GPUs from the amdkfd topology in the order used by the ROCm
// runtime: nodes in numeric order, CPU nodes skipped. Nodes sharing a PCI
// location each keep their own index.
type KFD struct {
	Root string
}

type nodeProperties struct {
	gfxTargetVersion uint64
	vendorID         uint64
	locationID       uint64
	domain           uint64
}

// Devices returns the GPU nodes of the topology. A missing topology means the
// kernel driver has no compute support and is not an error.
func (k KFD) Devices() ([]Device, error) {
	root := k.Root
	if root == "" {
		root = "/"
	}
	nodesDir := filepath.Join(root, KFDNodesDir)
	entries, err := os.ReadDir(nodesDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("no kfd topology", slog.String("dir", nodesDir))
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to list %s", nodesDir)
	}
	var nodes []int
	for _, e := range entries {
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)

	var devices []Device
	seen := mapset.NewThreadUnsafeSet[uint64]()
	for _, n := range nodes {
		path := filepath.Join(nodesDir, strconv.Itoa(n), "properties")
		props, err := readNodeProperties(path)
		if err != nil {
			slog.Debug("failed to read kfd node", slog.String("file", path), slog.String("error", err.Error()))
			continue
		}
		if props.gfxTargetVersion == 0 {
			slog.Debug("skipping CPU node", slog.Int("node", n))
			continue
		}
		// duplicates still take an index, as in the runtime's numbering
		key := props.domain<<16 | props.locationID
		if !seen.Add(key) {
			slog.Debug("duplicate kfd node location", slog.Int("node", n), slog.Uint64("location", props.locationID))
		}
		devices = append(devices, Device{
			Platform: PlatformROCm,
			Index:    len(devices),
			VendorID: uint16(props.vendorID),
			Domain:   uint16(props.domain),
			Bus:      uint8(props.locationID >> 8),
			Device:   uint8((props.locationID >> 3) & 0x1f),
			Function: uint8(props.locationID & 0x7),
		})
	}
	return devices, nil
}

// readNodeProperties parses a "<name> <value>" per line properties file.
func readNodeProperties(path string) (nodeProperties, error) {
	var props nodeProperties
	f, err := os.Open(path)
	if err != nil {
		return props, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		var dst *uint64
		switch fields[0] {
		case "gfx_target_version":
			dst = &props.gfxTargetVersion
		case "vendor_id":
			dst = &props.vendorID
		case "location_id":
			dst = &props.locationID
		case "domain":
			dst = &props.domain
		default:
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return props, errors.Wrapf(err, "malformed %s", fields[0])
		}
		*dst = v
	}
	return props, scanner.Err()
}
