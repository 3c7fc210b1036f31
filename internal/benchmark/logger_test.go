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

package benchmark

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/anhpham/gamepulse/internal/config"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

const epsilon = 0.00001

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func entriesWithFPS(fps ...float64) []metrics.LogEntry {
	base := time.Now()
	entries := make([]metrics.LogEntry, len(fps))
	for i, v := range fps {
		entries[i] = metrics.LogEntry{
			Timestamp: base.Add(time.Duration(i) * 500 * time.Millisecond),
			FPS:       v,
		}
		if v > 0 {
			entries[i].FrameTime = 1000.0 / v
		}
	}
	return entries
}

func TestDetectFrameDrops(t *testing.T) {
	tests := []struct {
		name      string
		fps       []float64
		threshold float64
		want      []int
	}{
		{
			// Average of [60,60,60,10,60] is 50, cutoff 25: only the
			// 10 FPS entry at index 3 qualifies.
			name:      "Single drop below half of average",
			fps:       []float64{60, 60, 60, 10, 60},
			threshold: 0.5,
			want:      []int{3},
		},
		{
			name:      "Steady run has no drops",
			fps:       []float64{60, 61, 59, 60},
			threshold: 0.5,
			want:      nil,
		},
		{
			// Zero-FPS entries are excluded from the average and never
			// reported as drops themselves.
			name:      "Zero FPS entries ignored",
			fps:       []float64{0, 60, 60, 20, 0},
			threshold: 0.5,
			want:      []int{3},
		},
		{
			name:      "No positive entries",
			fps:       []float64{0, 0, 0},
			threshold: 0.5,
			want:      nil,
		},
		{
			name:      "Empty input",
			fps:       nil,
			threshold: 0.5,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFrameDrops(entriesWithFPS(tt.fps...), tt.threshold)
			if len(got) != len(tt.want) {
				t.Fatalf("DetectFrameDrops() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("drop index %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComputeStatistics(t *testing.T) {
	entries := entriesWithFPS(60, 55, 10, 58, 62)

	stats := ComputeStatistics(entries, 2.5, DefaultDropThreshold)

	if stats.TotalFrames != 5 {
		t.Errorf("TotalFrames = %d, want 5", stats.TotalFrames)
	}
	if math.Abs(stats.MinFPS-10) > epsilon {
		t.Errorf("MinFPS = %v, want 10", stats.MinFPS)
	}
	if math.Abs(stats.MaxFPS-62) > epsilon {
		t.Errorf("MaxFPS = %v, want 62", stats.MaxFPS)
	}
	if math.Abs(stats.AvgFPS-49) > epsilon {
		t.Errorf("AvgFPS = %v, want 49", stats.AvgFPS)
	}
	// n=5: floor(5*0.01) = 0 and floor(5*0.001) = 0, both pick the
	// worst ascending-sorted value.
	if math.Abs(stats.FPS1PercentLow-10) > epsilon {
		t.Errorf("FPS1PercentLow = %v, want 10", stats.FPS1PercentLow)
	}
	if math.Abs(stats.FPS01PercentLow-10) > epsilon {
		t.Errorf("FPS01PercentLow = %v, want 10", stats.FPS01PercentLow)
	}
	if math.Abs(stats.DurationSeconds-2.5) > epsilon {
		t.Errorf("DurationSeconds = %v, want 2.5", stats.DurationSeconds)
	}
	if len(stats.FrameDrops) != 1 || stats.FrameDrops[0] != 2 {
		t.Errorf("FrameDrops = %v, want [2]", stats.FrameDrops)
	}
	if !stats.Valid() {
		t.Error("computed statistics violate min <= lows <= avg <= max ordering")
	}
}

func TestComputeStatistics_PercentileIndexOnLargeSession(t *testing.T) {
	// 200 entries: floor(200*0.01) = 2, floor(200*0.001) = 0.
	fps := make([]float64, 200)
	for i := range fps {
		fps[i] = float64(i + 1)
	}
	stats := ComputeStatistics(entriesWithFPS(fps...), 100, DefaultDropThreshold)

	if math.Abs(stats.FPS1PercentLow-3) > epsilon {
		t.Errorf("FPS1PercentLow = %v, want 3 (ascending index 2)", stats.FPS1PercentLow)
	}
	if math.Abs(stats.FPS01PercentLow-1) > epsilon {
		t.Errorf("FPS01PercentLow = %v, want 1 (ascending index 0)", stats.FPS01PercentLow)
	}
}

func TestComputeStatistics_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		entries []metrics.LogEntry
	}{
		{"No entries", nil},
		{"Only zero FPS entries", entriesWithFPS(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStatistics(tt.entries, 10, DefaultDropThreshold)
			if stats.TotalFrames != 0 || stats.AvgFPS != 0 || stats.MinFPS != 0 ||
				stats.MaxFPS != 0 || stats.FPS1PercentLow != 0 || stats.FPS01PercentLow != 0 ||
				stats.DurationSeconds != 0 {
				t.Errorf("ComputeStatistics() = %+v, want zero record", stats)
			}
			if stats.FrameDrops != nil {
				t.Errorf("FrameDrops = %v, want nil", stats.FrameDrops)
			}
		})
	}
}

func TestLoggerSessionLifecycle(t *testing.T) {
	l := NewLogger(testConfig(t), testLogger())

	if l.IsRecording() {
		t.Error("IsRecording() = true before StartSession")
	}

	l.StartSession()
	if !l.IsRecording() {
		t.Fatal("IsRecording() = false after StartSession")
	}

	snapshot := metrics.Snapshot{
		Timestamp: time.Now(),
		CPU:       metrics.CPUMetrics{UsagePercent: 35, Temperature: 60},
		GPU:       metrics.GPUMetrics{UsagePercent: 80, Temperature: 70, VRAMUsedMB: 4000},
		Memory:    metrics.MemoryMetrics{UsedMB: 12000},
	}
	lows := metrics.FPSPercentiles{FPS1PercentLow: 50, FPS01PercentLow: 45}
	l.LogEntry(snapshot, 60, 16.7, lows)
	l.LogEntry(snapshot, 58, 17.2, lows)

	stats := l.EndSession()
	if l.IsRecording() {
		t.Error("IsRecording() = true after EndSession")
	}
	if stats.TotalFrames != 2 {
		t.Errorf("TotalFrames = %d, want 2", stats.TotalFrames)
	}
	if math.Abs(stats.AvgFPS-59) > epsilon {
		t.Errorf("AvgFPS = %v, want 59", stats.AvgFPS)
	}
	if stats.DurationSeconds <= 0 {
		t.Errorf("DurationSeconds = %v, want > 0", stats.DurationSeconds)
	}

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() length = %d, want 2", len(entries))
	}
	if entries[0].CPUUsage != 35 || entries[0].GPUTemp != 70 || entries[0].RAMUsageMB != 12000 {
		t.Errorf("entry did not capture snapshot fields: %+v", entries[0])
	}
	if entries[0].FPS1PercentLow != 50 || entries[0].FPS01PercentLow != 45 {
		t.Errorf("entry did not capture percentile lows: %+v", entries[0])
	}

	// A new session discards the previous entries.
	l.StartSession()
	if got := len(l.Entries()); got != 0 {
		t.Errorf("Entries() length = %d after restart, want 0", got)
	}
	l.EndSession()
}

func TestLoggerUsesConfiguredDropThreshold(t *testing.T) {
	// Average of [60,60,40] is 53.33. At threshold 0.8 the cutoff is
	// 42.67 and the 40 FPS entry is a drop; the default 0.5 cutoff
	// (26.67) would report none.
	cfg := testConfig(t)
	cfg.FrameDropThreshold = 0.8
	l := NewLogger(cfg, testLogger())

	snapshot := metrics.Snapshot{Timestamp: time.Now()}
	l.StartSession()
	for _, fps := range []float64{60, 60, 40} {
		l.LogEntry(snapshot, fps, 1000.0/fps, metrics.FPSPercentiles{})
	}
	stats := l.EndSession()

	if len(stats.FrameDrops) != 1 || stats.FrameDrops[0] != 2 {
		t.Errorf("FrameDrops = %v at threshold 0.8, want [2]", stats.FrameDrops)
	}
	if drops := l.DetectFrameDrops(); len(drops) != 1 || drops[0] != 2 {
		t.Errorf("DetectFrameDrops() = %v, want [2]", drops)
	}

	defaultLogger := NewLogger(testConfig(t), testLogger())
	defaultLogger.StartSession()
	for _, fps := range []float64{60, 60, 40} {
		defaultLogger.LogEntry(snapshot, fps, 1000.0/fps, metrics.FPSPercentiles{})
	}
	if stats := defaultLogger.EndSession(); len(stats.FrameDrops) != 0 {
		t.Errorf("FrameDrops = %v at default threshold, want none", stats.FrameDrops)
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Now()
	end := start.Add(3 * time.Second)
	entries := []metrics.LogEntry{
		{Timestamp: start.Add(1 * time.Second)},
		{Timestamp: start.Add(2 * time.Second)},
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		entries  []metrics.LogEntry
		expected float64
	}{
		{"End timestamp wins", start, end, entries, 3.0},
		{"Last entry fallback", start, time.Time{}, entries, 2.0},
		{"No start yields zero", time.Time{}, time.Time{}, entries, 0.0},
		{"Start but no entries", start, time.Time{}, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sessionDuration(tt.start, tt.end, tt.entries)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("sessionDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}
