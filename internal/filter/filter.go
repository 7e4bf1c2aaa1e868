// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package filter selects cards with a boolean expression over record fields,
// for example: ASIC == "Polaris10" && MemoryType == "GDDR5".
package filter

import (
	"fmt"
	"strings"

	"amdgpuinfo/internal/gpu"
	"amdgpuinfo/internal/report"

	"github.com/casbin/govaluate"
)

// Parameters lists the names usable in filter expressions.
var Parameters = []string{
	"Bus", "Device", "Function",
	"VendorID", "DeviceID", "Revision", "SubVendorID", "SubDeviceID",
	"Model", "ASIC", "BIOS",
	"MemoryType", "MemoryPart", "MemConfig",
	"ComputeIndex",
}

// Filter is a compiled selection expression.
type Filter struct {
	expr *govaluate.EvaluableExpression
}

// New compiles expression. Unknown parameter names are rejected.
func New(expression string) (*Filter, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}
	for _, v := range expr.Vars() {
		if !isParameter(v) {
			return nil, fmt.Errorf("invalid filter %q: unknown field %s, valid fields: %s", expression, v, strings.Join(Parameters, ", "))
		}
	}
	return &Filter{expr: expr}, nil
}

func isParameter(name string) bool {
	for _, p := range Parameters {
		if p == name {
			return true
		}
	}
	return false
}

func functions() map[string]govaluate.ExpressionFunction {
	functions := make(map[string]govaluate.ExpressionFunction)
	functions["contains"] = func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("contains expects 2 arguments, got %d", len(args))
		}
		return strings.Contains(fmt.Sprint(args[0]), fmt.Sprint(args[1])), nil
	}
	functions["hasPrefix"] = func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("hasPrefix expects 2 arguments, got %d", len(args))
		}
		return strings.HasPrefix(fmt.Sprint(args[0]), fmt.Sprint(args[1])), nil
	}
	return functions
}

func parameters(rec *gpu.Record) map[string]any {
	part, label := report.MemoryName(rec)
	// numbers are float64, the only numeric type the evaluator compares
	return map[string]any{
		"Bus":          float64(rec.Address.Bus),
		"Device":       float64(rec.Address.Device),
		"Function":     float64(rec.Address.Function),
		"VendorID":     float64(rec.VendorID),
		"DeviceID":     float64(rec.DeviceID),
		"Revision":     float64(rec.Revision),
		"SubVendorID":  float64(rec.SubVendorID),
		"SubDeviceID":  float64(rec.SubDeviceID),
		"Model":        report.ModelName(rec),
		"ASIC":         rec.ASIC().String(),
		"BIOS":         report.BIOSVersion(rec),
		"MemoryType":   label,
		"MemoryPart":   part,
		"MemConfig":    float64(rec.MemConfig),
		"ComputeIndex": float64(rec.ComputeIndex),
	}
}

// Match reports whether rec satisfies the expression.
func (f *Filter) Match(rec *gpu.Record) (bool, error) {
	result, err := f.expr.Evaluate(parameters(rec))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter for %s: %w", rec.Address, err)
	}
	match, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter must evaluate to true or false, got %v", result)
	}
	return match, nil
}

// Apply returns the records that match, in order. A nil filter matches all.
func (f *Filter) Apply(records []*gpu.Record) ([]*gpu.Record, error) {
	if f == nil {
		return records, nil
	}
	var out []*gpu.Record
	for _, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
