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
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// Sensor key fragments that identify a CPU package temperature across the
// platforms gopsutil knows about.
var cpuTempSensorKeys = []string{
	"coretemp_package",
	"coretemp",
	"k10temp",
	"cpu_thermal",
	"cpu thermal",
}

// CPU reads CPU usage, temperature and static identity. Usage is computed
// from cumulative CPU time deltas between consecutive reads; the first read
// only establishes the baseline and reports 0.
type CPU struct {
	logger *slog.Logger

	mu        sync.Mutex
	prevStats metrics.CPUTimeStats

	// Static identity, resolved once
	infoOnce  sync.Once
	name      string
	coreCount int
	freqMHz   int
}

// NewCPU creates a CPU reader.
func NewCPU(logger *slog.Logger) *CPU {
	return &CPU{logger: logger, name: metrics.UnknownName}
}

// Read returns the current CPU metrics. It never fails: values that cannot
// be determined come back as 0 / "Unknown".
func (c *CPU) Read() metrics.CPUMetrics {
	c.resolveInfo()

	record := metrics.CPUMetrics{
		UsagePercent: c.usage(),
		Name:         c.name,
		CoreCount:    c.coreCount,
		FrequencyMHz: c.freqMHz,
	}

	record.Temperature = readChain(c.logger, "cpu", []backend[float64]{
		{name: "host-sensors", read: c.sensorTemperature},
	}, 0.0)

	return record
}

// usage computes utilization from the delta against the previous read.
func (c *CPU) usage() float64 {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		c.logger.Debug("CPU times unavailable", "error", err)
		return 0.0
	}

	t := times[0]
	current := metrics.CPUTimeStats{
		User:      t.User,
		System:    t.System,
		Idle:      t.Idle,
		IOWait:    t.Iowait,
		Irq:       t.Irq,
		SoftIrq:   t.Softirq,
		Steal:     t.Steal,
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	usage := metrics.CalculateCPUUtilization(&c.prevStats, &current)
	c.prevStats = current
	return usage
}

// sensorTemperature probes the host temperature sensors for a CPU package
// reading.
func (c *CPU) sensorTemperature() (float64, bool) {
	sensors, err := host.SensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return 0, false
	}

	for _, key := range cpuTempSensorKeys {
		for _, s := range sensors {
			if strings.Contains(strings.ToLower(s.SensorKey), key) && s.Temperature > 0 {
				return s.Temperature, true
			}
		}
	}
	return 0, false
}

// resolveInfo caches the CPU name, core count and base frequency.
func (c *CPU) resolveInfo() {
	c.infoOnce.Do(func() {
		if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
			if infos[0].ModelName != "" {
				c.name = infos[0].ModelName
			}
			c.freqMHz = int(infos[0].Mhz)
		}
		if count, err := cpu.Counts(true); err == nil {
			c.coreCount = count
		}
	})
}

// Name returns the reader name for logging purposes.
func (c *CPU) Name() string {
	return "CPU"
}
