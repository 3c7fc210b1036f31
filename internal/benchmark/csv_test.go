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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anhpham/gamepulse/internal/config"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

func TestExportImport_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	dir := cfg.OutputDir
	l := NewLogger(cfg, testLogger())
	l.StartSession()

	snapshots := []metrics.Snapshot{
		{
			CPU:    metrics.CPUMetrics{UsagePercent: 42.123456789, Temperature: 61.5},
			GPU:    metrics.GPUMetrics{UsagePercent: 97.3, Temperature: 72.25, VRAMUsedMB: 6144},
			Memory: metrics.MemoryMetrics{UsedMB: 12345},
		},
		{
			CPU:    metrics.CPUMetrics{UsagePercent: 0, Temperature: 0},
			GPU:    metrics.GPUMetrics{},
			Memory: metrics.MemoryMetrics{},
		},
	}
	l.LogEntry(snapshots[0], 143.7123, 6.958333,
		metrics.FPSPercentiles{FPS1PercentLow: 120.5, FPS01PercentLow: 98.75})
	l.LogEntry(snapshots[1], 0, 0, metrics.FPSPercentiles{})
	l.EndSession()

	path, err := l.Export(filepath.Join(dir, "session.csv"))
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	imported, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error: %v", err)
	}

	original := l.Entries()
	if len(imported) != len(original) {
		t.Fatalf("imported %d entries, want %d", len(imported), len(original))
	}
	for i := range original {
		want, got := original[i], imported[i]
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("entry %d timestamp = %v, want %v", i, got.Timestamp, want.Timestamp)
		}
		// Shortest round-trip float formatting means exact equality, not
		// epsilon comparison.
		if got.FPS != want.FPS || got.FrameTime != want.FrameTime {
			t.Errorf("entry %d fps/frame_time = %v/%v, want %v/%v",
				i, got.FPS, got.FrameTime, want.FPS, want.FrameTime)
		}
		if got.FPS1PercentLow != want.FPS1PercentLow || got.FPS01PercentLow != want.FPS01PercentLow {
			t.Errorf("entry %d lows = %v/%v, want %v/%v",
				i, got.FPS1PercentLow, got.FPS01PercentLow, want.FPS1PercentLow, want.FPS01PercentLow)
		}
		if got.CPUUsage != want.CPUUsage || got.CPUTemp != want.CPUTemp {
			t.Errorf("entry %d cpu = %v/%v, want %v/%v",
				i, got.CPUUsage, got.CPUTemp, want.CPUUsage, want.CPUTemp)
		}
		if got.GPUUsage != want.GPUUsage || got.GPUTemp != want.GPUTemp {
			t.Errorf("entry %d gpu = %v/%v, want %v/%v",
				i, got.GPUUsage, got.GPUTemp, want.GPUUsage, want.GPUTemp)
		}
		if got.RAMUsageMB != want.RAMUsageMB || got.VRAMUsageMB != want.VRAMUsageMB {
			t.Errorf("entry %d ram/vram = %d/%d, want %d/%d",
				i, got.RAMUsageMB, got.VRAMUsageMB, want.RAMUsageMB, want.VRAMUsageMB)
		}
	}
}

func TestExport_GeneratesFilenameInOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	cfg := config.Default()
	cfg.OutputDir = dir
	l := NewLogger(cfg, testLogger())
	l.StartSession()
	l.LogEntry(metrics.Snapshot{}, 60, 16.7,
		metrics.FPSPercentiles{FPS1PercentLow: 55, FPS01PercentLow: 50})
	l.EndSession()

	path, err := l.Export("")
	if err != nil {
		t.Fatalf("Export(\"\") error: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("export path %q not under output dir %q", path, dir)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "benchmark_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("generated filename %q, want benchmark_<timestamp>.csv", name)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestExport_HeaderAndEmptySession(t *testing.T) {
	cfg := testConfig(t)
	dir := cfg.OutputDir
	l := NewLogger(cfg, testLogger())
	l.StartSession()
	l.EndSession()

	path, err := l.Export(filepath.Join(dir, "empty.csv"))
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	want := strings.Join(csvHeader, ",") + "\n"
	if string(data) != want {
		t.Errorf("empty session export = %q, want header only %q", data, want)
	}

	imported, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error on header-only file: %v", err)
	}
	if len(imported) != 0 {
		t.Errorf("imported %d entries from empty session, want 0", len(imported))
	}
}

func TestExport_UsesConfiguredTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timezone = "UTC"
	l := NewLogger(cfg, testLogger())
	l.StartSession()
	l.LogEntry(metrics.Snapshot{}, 60, 16.7, metrics.FPSPercentiles{})
	l.EndSession()

	path, err := l.Export(filepath.Join(cfg.OutputDir, "utc.csv"))
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want header + 1 row", len(lines))
	}
	stamp := strings.SplitN(lines[1], ",", 2)[0]
	if !strings.HasSuffix(stamp, "Z") {
		t.Errorf("timestamp %q not rendered in UTC", stamp)
	}

	// Rendering in another zone must not move the instant.
	imported, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error: %v", err)
	}
	if want := l.Entries()[0].Timestamp; !imported[0].Timestamp.Equal(want) {
		t.Errorf("imported timestamp %v, want instant %v", imported[0].Timestamp, want)
	}
}

func TestImportCSV_RejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	validRow := "2026-08-24T10:00:00.5Z,60,16.7,55,50,40,65,80,70,12000,4000"

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "Empty file",
			content: "",
			errPart: "empty benchmark file",
		},
		{
			name:    "Wrong header",
			content: "time,fps,frame_time,fps_1_percent_low,fps_0_1_percent_low,cpu_usage,cpu_temp,gpu_usage,gpu_temp,ram_usage,vram_usage\n" + validRow + "\n",
			errPart: "unexpected column 0",
		},
		{
			name:    "Bad timestamp",
			content: strings.Join(csvHeader, ",") + "\nnot-a-time,60,16.7,55,50,40,65,80,70,12000,4000\n",
			errPart: "invalid timestamp",
		},
		{
			name:    "Bad float field",
			content: strings.Join(csvHeader, ",") + "\n2026-08-24T10:00:00Z,sixty,16.7,55,50,40,65,80,70,12000,4000\n",
			errPart: "invalid fps",
		},
		{
			name:    "Bad integer field",
			content: strings.Join(csvHeader, ",") + "\n2026-08-24T10:00:00Z,60,16.7,55,50,40,65,80,70,12.5,4000\n",
			errPart: "invalid ram_usage",
		},
		{
			name:    "Short row",
			content: strings.Join(csvHeader, ",") + "\n2026-08-24T10:00:00Z,60,16.7\n",
			errPart: "failed to read CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			_, err := ImportCSV(path)
			if err == nil {
				t.Fatal("ImportCSV() error = nil, want parse failure")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err, tt.errPart)
			}
		})
	}

	if _, err := ImportCSV(filepath.Join(dir, "does-not-exist.csv")); err == nil {
		t.Error("ImportCSV() on missing file returned nil error")
	}
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	if !strings.HasPrefix(name, "benchmark_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("GenerateFilename() = %q, want benchmark_<timestamp>.csv", name)
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "benchmark_"), ".csv")
	if _, err := time.Parse("20060102T150405", stamp); err != nil {
		t.Errorf("timestamp portion %q does not parse: %v", stamp, err)
	}
}
