// Package config reads the optional YAML file that supplies defaults for
// command line flags.
//
// Example:
//
//	short: true
//	memconfig: true
//	compute-order: true
//	filter: 'ASIC == "Polaris10"'
//	textfile: /var/lib/node_exporter/amdgpuinfo.prom
package config

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"os"
	"strconv"

	"amdgpuinfo/internal/app"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// File is the content of a config file. Nil fields are not set by the file.
type File struct {
	Short        *bool   `yaml:"short"`
	BIOSOnly     *bool   `yaml:"biosonly"`
	MemConfig    *bool   `yaml:"memconfig"`
	ComputeOrder *bool   `yaml:"compute-order"`
	Quiet        *bool   `yaml:"quiet"`
	UseStderr    *bool   `yaml:"use-stderr"`
	NoCompute    *bool   `yaml:"no-compute"`
	Filter       *string `yaml:"filter"`
	Textfile     *string `yaml:"textfile"`
	Root         *string `yaml:"root"`
	Debug        *bool   `yaml:"debug"`
	LogFile      *string `yaml:"log-file"`
}

// Load reads and parses the file at path. Unknown keys are an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return Parse(data)
}

// Parse parses config file content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	return &f, nil
}

// values returns the flag values set by the file, keyed by flag name.
func (f *File) values() map[string]string {
	values := make(map[string]string)
	setBool := func(name string, v *bool) {
		if v != nil {
			values[name] = strconv.FormatBool(*v)
		}
	}
	setString := func(name string, v *string) {
		if v != nil {
			values[name] = *v
		}
	}
	setBool(app.FlagShortName, f.Short)
	setBool(app.FlagBIOSOnlyName, f.BIOSOnly)
	setBool(app.FlagMemConfigName, f.MemConfig)
	setBool(app.FlagComputeOrderName, f.ComputeOrder)
	setBool(app.FlagQuietName, f.Quiet)
	setBool(app.FlagUseStderrName, f.UseStderr)
	setBool(app.FlagNoComputeName, f.NoCompute)
	setString(app.FlagFilterName, f.Filter)
	setString(app.FlagTextfileName, f.Textfile)
	setString(app.FlagRootName, f.Root)
	setBool(app.FlagDebugName, f.Debug)
	setString(app.FlagLogFileName, f.LogFile)
	return values
}

// Apply sets every flag named by the file that was not given on the command
// line. Flags missing from flags are skipped.
func (f *File) Apply(flags *pflag.FlagSet) error {
	for name, value := range f.values() {
		flag := flags.Lookup(name)
		if flag == nil {
			slog.Debug("config key has no flag", slog.String("key", name))
			continue
		}
		if flag.Changed {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return errors.Wrapf(err, "invalid config value for %s", name)
		}
		slog.Debug("flag set from config file", slog.String("flag", name), slog.String("value", value))
	}
	return nil
}
