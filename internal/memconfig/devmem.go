// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package memconfig

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DevMemPath is the physical memory device.
const DevMemPath = "/dev/mem"

// DevMem maps physical memory through /dev/mem. Path overrides DevMemPath.
type DevMem struct {
	Path string
}

// Map opens the device read-only and maps length bytes at base.
func (d DevMem) Map(base int64, length int) (Window, error) {
	path := d.Path
	if path == "" {
		path = DevMemPath
	}
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	// the mapping stays valid after the descriptor is closed
	defer unix.Close(fd)
	data, err := unix.Mmap(fd, base, length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to mmap %s at 0x%x", path, base)
	}
	return &mappedWindow{data: data}, nil
}

type mappedWindow struct {
	data []byte
}

func (w *mappedWindow) Read32(offset int) (uint32, error) {
	if w.data == nil {
		return 0, errors.New("window is closed")
	}
	if offset < 0 || offset+4 > len(w.data) {
		return 0, errors.Errorf("offset 0x%x outside window of 0x%x bytes", offset, len(w.data))
	}
	return binary.LittleEndian.Uint32(w.data[offset : offset+4]), nil
}

func (w *mappedWindow) Close() error {
	if w.data == nil {
		return nil
	}
	err := unix.Munmap(w.data)
	w.data = nil
	return err
}
