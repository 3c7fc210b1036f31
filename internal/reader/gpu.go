/*
 * MIT License
 *
 * Copyright (c) 2026 Anh Pham
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package reader

import (
	"log/slog"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// GPU reads GPU metrics through a chain of vendor backends. NVML is the
// only backend currently wired; on machines without an NVIDIA driver the
// chain exhausts and every read reports a defaulted record. That is the
// normal, supported outcome, not an error.
type GPU struct {
	logger *slog.Logger

	initOnce  sync.Once
	nvmlReady bool
}

// NewGPU creates a GPU reader.
func NewGPU(logger *slog.Logger) *GPU {
	return &GPU{logger: logger}
}

// Read returns the current GPU metrics, or a defaulted record if no
// backend can produce a value.
func (g *GPU) Read() metrics.GPUMetrics {
	return readChain(g.logger, "gpu", []backend[metrics.GPUMetrics]{
		{name: "nvml", read: g.readNVML},
	}, metrics.GPUMetrics{Name: metrics.UnknownName})
}

// readNVML probes the first NVML device for utilization, temperature and
// VRAM. Any NVML failure reports no-value.
func (g *GPU) readNVML() (metrics.GPUMetrics, bool) {
	g.initOnce.Do(func() {
		if ret := nvml.Init(); ret != nvml.SUCCESS {
			g.logger.Debug("NVML initialization failed", "status", nvml.ErrorString(ret))
			return
		}
		g.nvmlReady = true
	})

	if !g.nvmlReady {
		return metrics.GPUMetrics{}, false
	}

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return metrics.GPUMetrics{}, false
	}

	record := metrics.GPUMetrics{Name: metrics.UnknownName}

	util, ret := device.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return metrics.GPUMetrics{}, false
	}
	record.UsagePercent = float64(util.Gpu)

	// Temperature and VRAM are best-effort on top of a working utilization
	// read; missing values stay 0.
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		record.Temperature = float64(temp)
	}
	if memInfo, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
		record.VRAMUsedMB = int64(memInfo.Used / (1024 * 1024))
		record.VRAMTotalMB = int64(memInfo.Total / (1024 * 1024))
	}
	if name, ret := device.GetName(); ret == nvml.SUCCESS && name != "" {
		record.Name = name
	}

	return record, true
}

// Close shuts down the NVML session if one was established.
func (g *GPU) Close() {
	if g.nvmlReady {
		if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
			g.logger.Debug("NVML shutdown failed", "status", nvml.ErrorString(ret))
		}
		g.nvmlReady = false
	}
}

// Name returns the reader name for logging purposes.
func (g *GPU) Name() string {
	return "GPU"
}
