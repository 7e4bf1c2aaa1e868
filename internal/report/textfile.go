// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"strconv"
	"strings"

	"amdgpuinfo/internal/gpu"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const promMetricPrefix = "amdgpuinfo_"

var gpuInfoLabels = []string{"address", "device_id", "revision", "model", "asic", "bios", "memory_part", "memory_type", "compute_index"}

// labelValue replaces invalid UTF-8, which ROM derived strings may contain.
func labelValue(v string) string {
	return strings.ToValidUTF8(v, "\uFFFD")
}

// WriteTextfile writes the records as Prometheus metrics in the text
// exposition format, for the node_exporter textfile collector.
func WriteTextfile(path string, records []*gpu.Record, dmaFailures int) error {
	registry := prometheus.NewRegistry()
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: promMetricPrefix + "gpu_info",
			Help: "Discovered AMD GPU, value is always 1",
		},
		gpuInfoLabels,
	)
	memConfig := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: promMetricPrefix + "memory_config",
			Help: "Raw memory configuration register (MC_SEQ_MISC0)",
		},
		[]string{"address"},
	)
	failures := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: promMetricPrefix + "dma_failures",
		Help: "Register windows that could not be mapped during the scan",
	})
	registry.MustRegister(info, memConfig, failures)

	for _, rec := range records {
		addr := rec.Address.String()
		part, label := MemoryName(rec)
		info.WithLabelValues(
			addr,
			"0x"+strconv.FormatUint(uint64(rec.DeviceID), 16),
			"0x"+strconv.FormatUint(uint64(rec.Revision), 16),
			labelValue(ModelName(rec)),
			rec.ASIC().String(),
			labelValue(BIOSVersion(rec)),
			labelValue(part),
			labelValue(label),
			strconv.Itoa(rec.ComputeIndex),
		).Set(1)
		memConfig.WithLabelValues(addr).Set(float64(rec.MemConfig))
	}
	failures.Set(float64(dmaFailures))

	return errors.Wrapf(prometheus.WriteToTextfile(path, registry), "failed to write %s", path)
}
