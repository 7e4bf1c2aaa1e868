// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package vbios reads a card's video BIOS image through the sysfs ROM
// resource and extracts the BIOS version string from it.
package vbios

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// ImageSize is the number of bytes read from the ROM resource.
	ImageSize = 0x10000
	// MaxVersionLength is the longest version string extracted from an image.
	MaxVersionLength = 63

	romSignature         = 0xaa55
	versionPointerOffset = 0x6e
)

// ROM is a firmware ROM resource that must be enabled before it can be read.
type ROM interface {
	Enable() error
	Disable() error
	Open() (io.ReadCloser, error)
}

// SysfsROM is the rom attribute of a PCI device in sysfs. Writing "1" enables
// reads of the ROM image, writing "0" disables them again.
type SysfsROM struct {
	Path string
}

// NewSysfsROM returns the ROM resource of the PCI device at devicePath.
func NewSysfsROM(devicePath string) *SysfsROM {
	return &SysfsROM{Path: filepath.Join(devicePath, "rom")}
}

func (r *SysfsROM) write(value string) error {
	f, err := os.OpenFile(r.Path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Enable unlocks the ROM for reading.
func (r *SysfsROM) Enable() error {
	return errors.Wrapf(r.write("1\n"), "failed to unlock %s", r.Path)
}

// Disable locks the ROM.
func (r *SysfsROM) Disable() error {
	return errors.Wrapf(r.write("0\n"), "failed to relock %s", r.Path)
}

// Open opens the ROM image for reading.
func (r *SysfsROM) Open() (io.ReadCloser, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.Path)
	}
	return f, nil
}

// Stage identifies the step of the read protocol that failed.
type Stage int

const (
	StageUnlock Stage = iota
	StageRead
	StageRelock
)

func (s Stage) String() string {
	switch s {
	case StageUnlock:
		return "unlock"
	case StageRead:
		return "read"
	case StageRelock:
		return "relock"
	}
	return "unknown"
}

// Error is returned by Dump. Stage reports which step failed.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return e.Stage.String() + " vbios: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Dump unlocks the ROM, reads up to ImageSize bytes into a zeroed buffer and
// relocks the ROM. The ROM is relocked whenever it was unlocked, even if the
// read fails. A short read is not an error. A relock failure discards the image.
func Dump(rom ROM) (image []byte, err error) {
	if err := rom.Enable(); err != nil {
		return nil, &Error{Stage: StageUnlock, Err: err}
	}
	defer func() {
		if rerr := rom.Disable(); rerr != nil {
			image = nil
			if err == nil {
				err = &Error{Stage: StageRelock, Err: rerr}
			}
		}
	}()
	r, err := rom.Open()
	if err != nil {
		return nil, &Error{Stage: StageRead, Err: err}
	}
	defer r.Close()
	buf := make([]byte, ImageSize)
	if _, err := io.ReadFull(r, buf); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, &Error{Stage: StageRead, Err: errors.Wrap(err, "failed to read rom")}
	}
	return buf, nil
}

// ParseVersion returns the BIOS version string of an image, or "" when the
// image has no ROM signature. The version is located through the pointer at
// offset 0x6e and ends at a NUL byte, MaxVersionLength bytes or the end of
// the image.
func ParseVersion(image []byte) string {
	if len(image) < versionPointerOffset+2 {
		return ""
	}
	if binary.LittleEndian.Uint16(image) != romSignature {
		return ""
	}
	start := int(binary.LittleEndian.Uint16(image[versionPointerOffset:]))
	if start >= len(image) {
		return ""
	}
	end := start
	for end < len(image) && end-start < MaxVersionLength && image[end] != 0 {
		end++
	}
	return string(image[start:end])
}
