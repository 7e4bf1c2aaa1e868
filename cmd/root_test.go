package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"amdgpuinfo/internal/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardResource = `0x00000000e0000000 0x00000000efffffff 0x000000000014220c
0x0000000000000000 0x0000000000000000 0x0000000000000000
0x00000000f0000000 0x00000000f01fffff 0x000000000014220c
0x0000000000000000 0x0000000000000000 0x0000000000000000
0x000000000000e000 0x000000000000e0ff 0x0000000000040101
0x00000000fe600000 0x00000000fe63ffff 0x0000000000040200
`

// writeCard creates a sysfs entry for a Polaris card below root. There is no
// dev/mem below root, so its register window cannot be mapped.
func writeCard(t *testing.T, root, addr string) {
	t.Helper()
	dir := filepath.Join(root, "sys/bus/pci/devices", addr)
	require.NoError(t, os.MkdirAll(dir, 0755))
	config := make([]byte, 0x40)
	binary.LittleEndian.PutUint16(config[0x00:], 0x1002)
	binary.LittleEndian.PutUint16(config[0x02:], 0x67df)
	config[0x08] = 0xe7
	config[0x0b] = 0x03
	binary.LittleEndian.PutUint16(config[0x2c:], 0x1043)
	binary.LittleEndian.PutUint16(config[0x2e:], 0x04fb)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), config, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resource"), []byte(cardResource), 0644))
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunShort(t *testing.T) {
	root := t.TempDir()
	writeCard(t, root, "0000:03:00.0")
	out, errOut, err := runCmd(t, "--root", root, "-s", "--no-compute", "--use-stderr")
	require.NoError(t, err)
	assert.Contains(t, out, "amdgpuinfo v9.9.9\n")
	assert.Contains(t, out, "GPU:03.00.0:Radeon RX 580:xxx-xxx-xxxx:")
	assert.NotContains(t, out, "No compute devices found.")
	assert.Contains(t, errOut, "03:00.0: Unable to unlock vbios (try running as root)\n")
	assert.Contains(t, errOut, "Direct PCI access failed. Run amdgpuinfo as root to get memory type information!\n")
}

func TestRunQuietNoCards(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sys/bus/pci/devices"), 0755))
	out, _, err := runCmd(t, "--root", root, "-q")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = runCmd(t, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No compute devices found.\n")
	assert.Contains(t, out, "No AMD Graphic Card found\n")
}

func TestRunMissingSysfs(t *testing.T) {
	out, _, err := runCmd(t, "--root", filepath.Join(t.TempDir(), "missing"), "--no-compute")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: failed to enumerate PCI devices")
	assert.Contains(t, out, "No AMD Graphic Card found\n")
}

func TestRunUnknownFlagsIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sys/bus/pci/devices"), 0755))
	_, _, err := runCmd(t, "--root", root, "--bogus", "-q", "extra")
	assert.NoError(t, err)
}

func TestRunInvalidFilter(t *testing.T) {
	_, _, err := runCmd(t, "--root", t.TempDir(), "--filter", "Colour == 1")
	assert.Error(t, err)
}

func TestRunConfigFile(t *testing.T) {
	root := t.TempDir()
	writeCard(t, root, "0000:03:00.0")
	writeCard(t, root, "0000:06:00.0")
	configPath := filepath.Join(t.TempDir(), "amdgpuinfo.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("biosonly: true\nquiet: true\nno-compute: true\nfilter: 'Bus == 6'\n"), 0600))
	out, _, err := runCmd(t, "--root", root, "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "GPU:xxx-xxx-xxxx\n", out)

	_, _, err = runCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunTextfile(t *testing.T) {
	root := t.TempDir()
	writeCard(t, root, "0000:03:00.0")
	path := filepath.Join(t.TempDir(), "gpus.prom")
	_, _, err := runCmd(t, "--root", root, "-q", "--no-compute", "--textfile", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `model="Radeon RX 580"`)
	assert.Contains(t, string(data), "amdgpuinfo_dma_failures 1")
}

func TestOpenCLAlias(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--opencl"}))
	v, err := cmd.Flags().GetBool(app.FlagComputeOrderName)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestBIOSOnlyImpliesShort(t *testing.T) {
	f := flagValues{biosOnly: true}
	opts := f.options()
	assert.True(t, opts.Short)
	assert.True(t, opts.BIOSOnly)
}

func TestSyslogFormat(t *testing.T) {
	h := &SyslogHandler{logLeveler: slog.LevelInfo}
	withAttrs := h.WithAttrs([]slog.Attr{slog.String("app", "amdgpuinfo")}).(*SyslogHandler)
	r := slog.NewRecord(time.Now(), slog.LevelWarn, "read failed", 0)
	r.AddAttrs(slog.String("address", "0000:03:00.0"))
	assert.Equal(t, `level=WARN msg="read failed" app="amdgpuinfo" address="0000:03:00.0"`, withAttrs.format(r))
	assert.Empty(t, h.attrs)
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}
