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

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// Memory reads RAM utilization.
type Memory struct {
	logger *slog.Logger
}

// NewMemory creates a memory reader.
func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{logger: logger}
}

// Read returns the current RAM metrics, or a zeroed record on failure.
func (m *Memory) Read() metrics.MemoryMetrics {
	vmStat, err := mem.VirtualMemory()
	if err != nil || vmStat.Total == 0 {
		m.logger.Debug("Memory stats unavailable", "error", err)
		return metrics.MemoryMetrics{}
	}

	return metrics.MemoryMetrics{
		UsedMB:       int64(vmStat.Used / (1024 * 1024)),
		TotalMB:      int64(vmStat.Total / (1024 * 1024)),
		UsagePercent: metrics.CalculateMemoryUtilization(vmStat.Used, vmStat.Total),
	}
}

// Name returns the reader name for logging purposes.
func (m *Memory) Name() string {
	return "Memory"
}
