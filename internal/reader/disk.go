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

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// Sensor key fragments that identify a drive temperature.
var diskTempSensorKeys = []string{
	"nvme",
	"drivetemp",
	"ssd",
	"hdd",
}

// Disk reads the primary disk's temperature and name. Temperature is
// frequently unavailable; 0 is the expected degraded value.
type Disk struct {
	logger *slog.Logger

	nameOnce sync.Once
	name     string
}

// NewDisk creates a disk reader.
func NewDisk(logger *slog.Logger) *Disk {
	return &Disk{logger: logger, name: metrics.UnknownName}
}

// Read returns the current disk metrics.
func (d *Disk) Read() metrics.DiskMetrics {
	d.resolveName()

	temperature := readChain(d.logger, "disk", []backend[float64]{
		{name: "host-sensors", read: d.sensorTemperature},
	}, 0.0)

	return metrics.DiskMetrics{
		Temperature: temperature,
		Name:        d.name,
	}
}

// sensorTemperature probes the host temperature sensors for a drive reading.
func (d *Disk) sensorTemperature() (float64, bool) {
	sensors, err := host.SensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return 0, false
	}

	for _, key := range diskTempSensorKeys {
		for _, s := range sensors {
			if strings.Contains(strings.ToLower(s.SensorKey), key) && s.Temperature > 0 {
				return s.Temperature, true
			}
		}
	}
	return 0, false
}

// resolveName caches the primary partition's device name.
func (d *Disk) resolveName() {
	d.nameOnce.Do(func() {
		partitions, err := disk.Partitions(false)
		if err != nil || len(partitions) == 0 {
			return
		}
		if partitions[0].Device != "" {
			d.name = partitions[0].Device
		}
	})
}

// Name returns the reader name for logging purposes.
func (d *Disk) Name() string {
	return "Disk"
}
