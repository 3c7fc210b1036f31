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

// Package metrics defines the hardware metric records, the snapshot aggregate
// and the benchmark data model shared by all GamePulse components.
//
// All records follow the same contract: a zero value (or the name "Unknown")
// is a legitimate "could not determine", not an error. Callers must not
// assume that 0 means idle.
package metrics

import "time"

// UnknownName is the sentinel device name used when detection fails.
const UnknownName = "Unknown"

// CPUMetrics holds CPU performance metrics for one sample.
type CPUMetrics struct {
	UsagePercent float64 // Utilization percentage [0,100]
	Temperature  float64 // Degrees Celsius, 0 if unavailable
	CoreCount    int
	FrequencyMHz int
	Name         string
}

// Valid reports whether the record is within its bounded ranges.
func (c CPUMetrics) Valid() bool {
	return c.UsagePercent >= 0 && c.UsagePercent <= 100 && c.Temperature >= 0
}

// GPUMetrics holds GPU performance metrics for one sample.
type GPUMetrics struct {
	UsagePercent float64 // Utilization percentage [0,100]
	Temperature  float64 // Degrees Celsius, 0 if unavailable
	VRAMUsedMB   int64
	VRAMTotalMB  int64
	Name         string
}

// Valid reports whether the record is within its bounded ranges.
func (g GPUMetrics) Valid() bool {
	return g.UsagePercent >= 0 && g.UsagePercent <= 100 &&
		g.Temperature >= 0 && g.VRAMUsedMB >= 0
}

// MemoryMetrics holds RAM metrics for one sample.
type MemoryMetrics struct {
	UsedMB       int64
	TotalMB      int64
	UsagePercent float64 // Utilization percentage [0,100]
}

// Valid reports whether the record is within its bounded ranges.
func (m MemoryMetrics) Valid() bool {
	return m.UsagePercent >= 0 && m.UsagePercent <= 100 &&
		m.UsedMB >= 0 && m.TotalMB >= 0
}

// DiskMetrics holds disk/SSD metrics for one sample.
type DiskMetrics struct {
	Temperature float64 // Degrees Celsius, 0 if unavailable
	Name        string
}

// Valid reports whether the record is within its bounded ranges.
func (d DiskMetrics) Valid() bool {
	return d.Temperature >= 0
}

// NetworkMetrics holds network performance metrics for one sample.
type NetworkMetrics struct {
	PingMs       float64
	UploadKbps   float64
	DownloadKbps float64
}

// Valid reports whether the record is within its bounded ranges.
func (n NetworkMetrics) Valid() bool {
	return n.PingMs >= 0 && n.UploadKbps >= 0 && n.DownloadKbps >= 0
}

// Snapshot is one immutable, timestamped bundle of all hardware metric
// records produced in a single monitoring tick. Snapshots are passed by
// value; subscribers must not retain pointers into a shared snapshot.
type Snapshot struct {
	Timestamp time.Time
	CPU       CPUMetrics
	GPU       GPUMetrics
	Memory    MemoryMetrics
	Disk      DiskMetrics
	Network   NetworkMetrics
}

// Valid reports whether every record in the snapshot is valid.
func (s Snapshot) Valid() bool {
	return s.CPU.Valid() && s.GPU.Valid() && s.Memory.Valid() &&
		s.Disk.Valid() && s.Network.Valid()
}

// FPSPercentiles carries the percentile-based low-FPS figures that
// accompany a current FPS reading.
type FPSPercentiles struct {
	FPS1PercentLow  float64
	FPS01PercentLow float64
}

// Valid reports whether the percentiles are consistent: the more extreme
// low must not exceed the looser one.
func (p FPSPercentiles) Valid() bool {
	return p.FPS01PercentLow <= p.FPS1PercentLow
}

// LogEntry is one row of a benchmark session: a snapshot joined with the
// FPS figures that were current at logging time. The snapshot and the FPS
// sample are taken on independent cadences; no ordering between the two is
// guaranteed.
type LogEntry struct {
	Timestamp       time.Time
	FPS             float64
	FrameTime       float64 // Milliseconds
	FPS1PercentLow  float64
	FPS01PercentLow float64
	CPUUsage        float64
	CPUTemp         float64
	GPUUsage        float64
	GPUTemp         float64
	RAMUsageMB      int64
	VRAMUsageMB     int64
}

// Complete reports whether all fields of the entry are present and bounded.
func (e LogEntry) Complete() bool {
	return !e.Timestamp.IsZero() &&
		e.FPS >= 0 && e.FrameTime >= 0 &&
		e.FPS1PercentLow >= 0 && e.FPS01PercentLow >= 0 &&
		e.CPUUsage >= 0 && e.CPUUsage <= 100 && e.CPUTemp >= 0 &&
		e.GPUUsage >= 0 && e.GPUUsage <= 100 && e.GPUTemp >= 0 &&
		e.RAMUsageMB >= 0 && e.VRAMUsageMB >= 0
}

// BenchmarkStatistics summarizes a recorded benchmark session. All FPS
// figures are computed over entries with FPS > 0 only.
type BenchmarkStatistics struct {
	MinFPS          float64
	MaxFPS          float64
	AvgFPS          float64
	FPS1PercentLow  float64
	FPS01PercentLow float64
	AvgFrameTime    float64 // Milliseconds
	DurationSeconds float64
	TotalFrames     int
	FrameDrops      []int // Indices into the full entry sequence
}

// Valid checks the ordering invariant of a non-empty statistics record:
// min <= 0.1% low <= 1% low <= avg <= max.
func (b BenchmarkStatistics) Valid() bool {
	if b.TotalFrames == 0 {
		return true
	}
	return b.MinFPS <= b.FPS01PercentLow &&
		b.FPS01PercentLow <= b.FPS1PercentLow &&
		b.FPS1PercentLow <= b.AvgFPS &&
		b.AvgFPS <= b.MaxFPS
}
