// Package app defines application-wide constants and the options that are
// shared by the command and the packages it composes.
package app

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"io"

	"amdgpuinfo/internal/report"
)

// Name is the name of the application executable.
const Name = "amdgpuinfo"

// Flag names shared by the command and the config file keys.
const (
	FlagShortName        = "short"
	FlagBIOSOnlyName     = "biosonly"
	FlagMemConfigName    = "memconfig"
	FlagComputeOrderName = "compute-order"
	FlagOpenCLName       = "opencl"
	FlagQuietName        = "quiet"
	FlagUseStderrName    = "use-stderr"
	FlagNoComputeName    = "no-compute"
	FlagFilterName       = "filter"
	FlagTextfileName     = "textfile"
	FlagConfigName       = "config"
	FlagRootName         = "root"
	FlagDebugName        = "debug"
	FlagSyslogName       = "syslog"
	FlagLogFileName      = "log-file"
)

// Options holds the settings of one run. It is built once after flags and
// the config file have been resolved and is not modified afterwards.
type Options struct {
	Short        bool   // one line per card
	BIOSOnly     bool   // one line per card with the firmware version only
	MemConfig    bool   // include the raw memory configuration value
	ComputeOrder bool   // order cards by compute index instead of bus order
	Quiet        bool   // suppress informational messages
	UseStderr    bool   // route error messages to stderr
	NoCompute    bool   // skip compute enumeration
	Filter       string // card selection expression
	Textfile     string // Prometheus textfile output path
	Root         string // filesystem root for sysfs and /dev
}

// Report returns the report options selected by o. BIOS-only output takes
// precedence over the short form.
func (o Options) Report() report.Options {
	format := report.FormatLong
	switch {
	case o.BIOSOnly:
		format = report.FormatBIOSOnly
	case o.Short:
		format = report.FormatShort
	}
	return report.Options{Format: format, MemConfig: o.MemConfig}
}

// Console returns the console for informational and error messages.
func (o Options) Console(out, errOut io.Writer) *report.Console {
	return &report.Console{Out: out, Err: errOut, Quiet: o.Quiet, UseStderr: o.UseStderr}
}
