// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"fmt"
	"io"
)

// Console prints informational and error messages next to the report.
// Quiet suppresses everything except errors routed to Err by UseStderr.
type Console struct {
	Out       io.Writer
	Err       io.Writer
	Quiet     bool
	UseStderr bool
}

// Infof prints an informational message to Out unless quiet.
func (c *Console) Infof(format string, args ...any) {
	if c == nil || c.Quiet {
		return
	}
	fmt.Fprintf(c.Out, format, args...)
}

// Errorf prints an error message, to Err when UseStderr is set and to Out
// otherwise. Quiet suppresses errors printed to Out.
func (c *Console) Errorf(format string, args ...any) {
	if c == nil {
		return
	}
	if c.UseStderr {
		fmt.Fprintf(c.Err, format, args...)
		return
	}
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Out, format, args...)
}
