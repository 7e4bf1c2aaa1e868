// Package cmd provides the command line interface for the application.
package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"amdgpuinfo/internal/app"
	"amdgpuinfo/internal/compute"
	"amdgpuinfo/internal/config"
	"amdgpuinfo/internal/filter"
	"amdgpuinfo/internal/memconfig"
	"amdgpuinfo/internal/pcibus"
	"amdgpuinfo/internal/report"
	"amdgpuinfo/internal/scan"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var gVersion = "9.9.9" // overwritten by ldflags

var examples = []string{
	fmt.Sprintf("  List cards with memory details:           $ %s", app.Name),
	fmt.Sprintf("  One line per card in compute order:       $ %s -s -o", app.Name),
	fmt.Sprintf("  Firmware versions only:                   $ %s --biosonly", app.Name),
	fmt.Sprintf("  Only Polaris cards, export for Prometheus: $ %s -s --filter 'ASIC == \"Polaris10\"' --textfile gpus.prom", app.Name),
}

// flagValues receives the parsed command line.
type flagValues struct {
	short        bool
	biosOnly     bool
	memConfig    bool
	computeOrder bool
	quiet        bool
	useStderr    bool
	noCompute    bool
	filter       string
	textfile     string
	configFile   string
	root         string
	debug        bool
	syslog       bool
	logFile      string
}

func (f *flagValues) options() app.Options {
	return app.Options{
		Short:        f.short || f.biosOnly,
		BIOSOnly:     f.biosOnly,
		MemConfig:    f.memConfig,
		ComputeOrder: f.computeOrder,
		Quiet:        f.quiet,
		UseStderr:    f.useStderr,
		NoCompute:    f.noCompute,
		Filter:       f.filter,
		Textfile:     f.textfile,
		Root:         f.root,
	}
}

// normalizeFlagName maps the legacy --opencl spelling onto --compute-order.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == app.FlagOpenCLName {
		name = app.FlagComputeOrderName
	}
	return pflag.NormalizedName(name)
}

func newRootCmd() *cobra.Command {
	var flags flagValues
	var logFile *os.File
	cmd := &cobra.Command{
		Use:     app.Name,
		Short:   app.Name,
		Long:    fmt.Sprintf(`%s lists the discrete AMD graphics cards in the system with their model, firmware version and memory part.`, app.Name),
		Example: strings.Join(examples, "\n"),
		Args:    cobra.ArbitraryArgs,
		Version: gVersion,
		// unknown arguments are ignored
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.configFile != "" {
				file, err := config.Load(flags.configFile)
				if err != nil {
					return err
				}
				if err := file.Apply(cmd.Flags()); err != nil {
					return err
				}
			}
			var err error
			logFile, err = configureLogging(cmd.ErrOrStderr(), flags.debug, flags.syslog, flags.logFile)
			if err != nil {
				return err
			}
			slog.Info("Starting up", slog.String("app", app.Name), slog.String("version", gVersion), slog.Int("PID", os.Getpid()), slog.String("arguments", strings.Join(os.Args, " ")))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				slog.Debug("ignoring arguments", slog.String("args", strings.Join(args, " ")))
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags.options())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Shutting down", slog.String("app", app.Name), slog.String("version", gVersion))
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
	}
	cmd.SetVersionTemplate(app.Name + " v{{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().SetNormalizeFunc(normalizeFlagName)

	cmd.Flags().BoolVarP(&flags.short, app.FlagShortName, "s", false, "one line per card")
	cmd.Flags().BoolVarP(&flags.biosOnly, app.FlagBIOSOnlyName, "b", false, "one line per card with the BIOS version only, implies --short")
	cmd.Flags().BoolVarP(&flags.memConfig, app.FlagMemConfigName, "c", false, "include the raw memory configuration value in short output")
	cmd.Flags().BoolVarP(&flags.computeOrder, app.FlagComputeOrderName, "o", false, "order cards by compute device index (alias --"+app.FlagOpenCLName+")")
	cmd.Flags().BoolVarP(&flags.quiet, app.FlagQuietName, "q", false, "suppress informational messages")
	cmd.Flags().BoolVar(&flags.useStderr, app.FlagUseStderrName, false, "write error messages to stderr")
	cmd.Flags().BoolVar(&flags.noCompute, app.FlagNoComputeName, false, "skip compute device enumeration")
	cmd.Flags().StringVar(&flags.filter, app.FlagFilterName, "", "only report cards matching the expression, fields: "+strings.Join(filter.Parameters, ", "))
	cmd.Flags().StringVar(&flags.textfile, app.FlagTextfileName, "", "also write card information in Prometheus text format to this file")
	cmd.Flags().StringVar(&flags.configFile, app.FlagConfigName, "", "YAML file with flag defaults")
	cmd.Flags().StringVar(&flags.root, app.FlagRootName, "/", "filesystem root for sysfs and /dev")
	cmd.Flags().BoolVar(&flags.debug, app.FlagDebugName, false, "enable debug logging")
	cmd.Flags().BoolVar(&flags.syslog, app.FlagSyslogName, false, "write logs to syslog")
	cmd.Flags().StringVar(&flags.logFile, app.FlagLogFileName, "", "append logs to this file")
	cmd.MarkFlagsMutuallyExclusive(app.FlagSyslogName, app.FlagLogFileName)
	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	cobra.EnableCaseInsensitive = true
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogging installs the default logger. Logs go to stderr at warning
// level unless a destination or debug logging is requested.
func configureLogging(stderr io.Writer, debug, toSyslog bool, logFilePath string) (*os.File, error) {
	logOpts := slog.HandlerOptions{Level: slog.LevelWarn}
	if debug {
		logOpts.Level = slog.LevelDebug
		logOpts.AddSource = true
	}
	switch {
	case toSyslog:
		handler, err := NewSyslogHandler(&logOpts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create syslog handler")
		}
		slog.SetDefault(slog.New(handler))
	case logFilePath != "":
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644) // #nosec G302 G304
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log file")
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &logOpts)))
		return logFile, nil
	default:
		slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &logOpts)))
	}
	return nil, nil
}

// run scans the system and writes the report. Only an invalid filter or an
// unwritable textfile is returned as an error; scan problems are reported on
// the console.
func run(stdout, stderr io.Writer, opts app.Options) error {
	sel, err := newFilter(opts.Filter)
	if err != nil {
		return err
	}
	console := opts.Console(stdout, stderr)
	console.Infof("%s v%s\n", app.Name, gVersion)

	scanner := scan.New(pcibus.NewSysfs(opts.Root), console)
	scanner.Mapper = memconfig.DevMem{Path: filepath.Join(opts.Root, "dev", "mem")}
	registry, stats, err := scanner.Scan()
	if err != nil {
		slog.Error("scan failed", slog.String("error", err.Error()))
		console.Errorf("Error: %v\n", err)
	}

	var enumerator compute.Enumerator = compute.None{}
	if !opts.NoCompute {
		enumerator = compute.KFD{Root: opts.Root}
	}
	count, err := scan.Correlate(registry, enumerator)
	if err != nil {
		slog.Warn("compute enumeration failed", slog.String("error", err.Error()))
	}
	if count == 0 && !opts.NoCompute {
		console.Infof("No compute devices found.\n")
	}
	if opts.ComputeOrder {
		registry.ReorderByComputeIndex()
	}

	records, err := sel.Apply(registry.Records())
	if err != nil {
		return err
	}
	if err := report.Write(stdout, records, opts.Report()); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	if registry.Len() == 0 {
		console.Infof("%s\n", report.NoCardFound)
	}
	if stats.DMAFailures > 0 {
		console.Errorf("Direct PCI access failed. Run %s as root to get memory type information!\n", app.Name)
	}
	if opts.Textfile != "" {
		if err := report.WriteTextfile(opts.Textfile, records, stats.DMAFailures); err != nil {
			return err
		}
	}
	slog.Debug("scan complete", slog.Int("cards", registry.Len()), slog.Int("reported", len(records)), slog.Int("dmaFailures", stats.DMAFailures), slog.Int("unrecognized", stats.Unrecognized))
	return nil
}

func newFilter(expression string) (*filter.Filter, error) {
	if expression == "" {
		return nil, nil
	}
	return filter.New(expression)
}
