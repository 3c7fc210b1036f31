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

// Package benchmark records bounded sessions of (snapshot, FPS)
// observations, computes session statistics and round-trips entries
// through CSV.
package benchmark

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/anhpham/gamepulse/internal/config"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

// DefaultDropThreshold is the fraction of average FPS below which a frame
// counts as a drop.
const DefaultDropThreshold = 0.5

// Logger records a time-bounded sequence of benchmark entries.
//
// Sessions move Idle -> Recording (StartSession) -> Idle (EndSession);
// only one session is ever active. LogEntry is typically driven by an
// engine subscriber while EndSession comes from the CLI goroutine, so all
// state is mutex-guarded.
type Logger struct {
	outputDir     string
	dropThreshold float64
	loc           *time.Location
	logger        *slog.Logger

	mu           sync.Mutex
	entries      []metrics.LogEntry
	sessionStart time.Time
	sessionEnd   time.Time
	recording    bool
}

// NewLogger creates a benchmark logger from the runtime configuration:
// exports go into the output directory, statistics use the configured
// frame-drop threshold and exported timestamps the configured timezone.
func NewLogger(cfg *config.Config, logger *slog.Logger) *Logger {
	return &Logger{
		outputDir:     cfg.OutputDir,
		dropThreshold: cfg.FrameDropThreshold,
		loc:           cfg.Location(),
		logger:        logger,
	}
}

// StartSession clears any prior unsaved entries and begins recording.
func (l *Logger) StartSession() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.sessionStart = time.Now()
	l.sessionEnd = time.Time{}
	l.recording = true

	l.logger.Info("Benchmark session started")
}

// LogEntry appends one row joining a snapshot with the FPS figures that
// are current at call time. The snapshot tick and the FPS sample are not
// causally ordered; the join is deliberately loose. Always succeeds.
func (l *Logger) LogEntry(snapshot metrics.Snapshot, fps, frameTime float64, lows metrics.FPSPercentiles) {
	entry := metrics.LogEntry{
		Timestamp:       time.Now(),
		FPS:             fps,
		FrameTime:       frameTime,
		FPS1PercentLow:  lows.FPS1PercentLow,
		FPS01PercentLow: lows.FPS01PercentLow,
		CPUUsage:        snapshot.CPU.UsagePercent,
		CPUTemp:         snapshot.CPU.Temperature,
		GPUUsage:        snapshot.GPU.UsagePercent,
		GPUTemp:         snapshot.GPU.Temperature,
		RAMUsageMB:      snapshot.Memory.UsedMB,
		VRAMUsageMB:     snapshot.GPU.VRAMUsedMB,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// EndSession stamps the end time, stops recording and returns the session
// statistics.
func (l *Logger) EndSession() metrics.BenchmarkStatistics {
	l.mu.Lock()
	l.sessionEnd = time.Now()
	l.recording = false
	l.mu.Unlock()

	stats := l.Statistics()
	l.logger.Info("Benchmark session ended",
		"frames", stats.TotalFrames,
		"avg_fps", stats.AvgFPS,
		"duration_s", stats.DurationSeconds,
	)
	return stats
}

// IsRecording reports whether a session is active.
func (l *Logger) IsRecording() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.recording
}

// Entries returns a copy of the recorded entries.
func (l *Logger) Entries() []metrics.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]metrics.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// DetectFrameDrops returns the indices of entries whose FPS is below the
// configured threshold times the session average. Indices are positional
// into the full entry sequence. Entries with FPS 0 are excluded from both
// the average and the scan.
func (l *Logger) DetectFrameDrops() []int {
	return DetectFrameDrops(l.Entries(), l.dropThreshold)
}

// Statistics computes the session statistics. Degenerate input (no
// entries, or none with FPS > 0) yields a zero-valued record, never an
// error.
func (l *Logger) Statistics() metrics.BenchmarkStatistics {
	l.mu.Lock()
	entries := make([]metrics.LogEntry, len(l.entries))
	copy(entries, l.entries)
	start, end := l.sessionStart, l.sessionEnd
	l.mu.Unlock()

	return ComputeStatistics(entries, sessionDuration(start, end, entries), l.dropThreshold)
}

// sessionDuration resolves the session length in seconds: end-start when
// both timestamps are set, last-entry-start when only the start is, else 0.
func sessionDuration(start, end time.Time, entries []metrics.LogEntry) float64 {
	switch {
	case !start.IsZero() && !end.IsZero():
		return end.Sub(start).Seconds()
	case !start.IsZero() && len(entries) > 0:
		return entries[len(entries)-1].Timestamp.Sub(start).Seconds()
	default:
		return 0
	}
}

// DetectFrameDrops is the entry-slice form used for both live sessions and
// imported data.
func DetectFrameDrops(entries []metrics.LogEntry, threshold float64) []int {
	if len(entries) == 0 {
		return nil
	}

	var sum float64
	var count int
	for _, e := range entries {
		if e.FPS > 0 {
			sum += e.FPS
			count++
		}
	}
	if count == 0 {
		return nil
	}

	thresholdFPS := (sum / float64(count)) * threshold

	var drops []int
	for i, e := range entries {
		if e.FPS > 0 && e.FPS < thresholdFPS {
			drops = append(drops, i)
		}
	}
	return drops
}

// ComputeStatistics derives aggregate statistics from an entry list.
//
// FPS aggregates cover entries with FPS > 0 only. The percentile lows pick
// the values at ascending-sort indices floor(n*0.01) and floor(n*0.001);
// the low end of the ascending order holds the worst frames. This
// convention intentionally differs from the FPS calculator's rolling-window
// percentile; the two agree as p approaches 0 but are separate algorithms.
func ComputeStatistics(entries []metrics.LogEntry, durationSeconds, dropThreshold float64) metrics.BenchmarkStatistics {
	if len(entries) == 0 {
		return metrics.BenchmarkStatistics{}
	}

	fpsValues := make([]float64, 0, len(entries))
	var frameTimeSum float64
	var frameTimeCount int
	for _, e := range entries {
		if e.FPS > 0 {
			fpsValues = append(fpsValues, e.FPS)
		}
		if e.FrameTime > 0 {
			frameTimeSum += e.FrameTime
			frameTimeCount++
		}
	}
	if len(fpsValues) == 0 {
		return metrics.BenchmarkStatistics{}
	}

	sorted := make([]float64, len(fpsValues))
	copy(sorted, fpsValues)
	sort.Float64s(sorted)

	idx1Percent := int(float64(len(sorted)) * 0.01)
	idx01Percent := int(float64(len(sorted)) * 0.001)

	var sum float64
	for _, v := range fpsValues {
		sum += v
	}

	var avgFrameTime float64
	if frameTimeCount > 0 {
		avgFrameTime = frameTimeSum / float64(frameTimeCount)
	}

	return metrics.BenchmarkStatistics{
		MinFPS:          sorted[0],
		MaxFPS:          sorted[len(sorted)-1],
		AvgFPS:          sum / float64(len(fpsValues)),
		FPS1PercentLow:  sorted[idx1Percent],
		FPS01PercentLow: sorted[idx01Percent],
		AvgFrameTime:    avgFrameTime,
		DurationSeconds: durationSeconds,
		TotalFrames:     len(entries),
		FrameDrops:      DetectFrameDrops(entries, dropThreshold),
	}
}
