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
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// csvHeader is the fixed column order of the export format. Import rejects
// files whose header does not match.
var csvHeader = []string{
	"timestamp",
	"fps",
	"frame_time",
	"fps_1_percent_low",
	"fps_0_1_percent_low",
	"cpu_usage",
	"cpu_temp",
	"gpu_usage",
	"gpu_temp",
	"ram_usage",
	"vram_usage",
}

// GenerateFilename returns a timestamp-based export filename.
func GenerateFilename() string {
	return fmt.Sprintf("benchmark_%s.csv", time.Now().Format("20060102T150405"))
}

// Export serializes the recorded entries to a CSV file and returns the
// path written. An empty path exports into the logger's output directory
// under a generated timestamp filename. I/O failures propagate.
func (l *Logger) Export(path string) (string, error) {
	if path == "" {
		if err := os.MkdirAll(l.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		path = filepath.Join(l.outputDir, GenerateFilename())
	}

	entries := l.Entries()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	bufWriter := bufio.NewWriterSize(file, 8192)
	writer := csv.NewWriter(bufWriter)

	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write(entryToRow(entry, l.loc)); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("CSV writer error: %w", err)
	}
	if err := bufWriter.Flush(); err != nil {
		return "", fmt.Errorf("buffer writer error: %w", err)
	}

	l.logger.Info("Benchmark exported", "path", path, "entries", len(entries))
	return path, nil
}

// ImportCSV parses an exported benchmark file back into log entries.
// Numeric fields reproduce exactly: floats are written with the shortest
// round-trip representation and timestamps in RFC 3339 with nanoseconds.
// Malformed files surface as explicit parse errors; import never
// substitutes defaults.
func ImportCSV(path string) ([]metrics.LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = len(csvHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty benchmark file: %s", path)
	}

	for i, col := range records[0] {
		if col != csvHeader[i] {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, col, csvHeader[i])
		}
	}

	entries := make([]metrics.LogEntry, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// entryToRow formats one entry in the fixed column order. Timestamps are
// rendered in the configured timezone; RFC 3339 keeps the offset so the
// instant survives the round trip regardless of zone.
func entryToRow(e metrics.LogEntry, loc *time.Location) []string {
	return []string{
		e.Timestamp.In(loc).Format(time.RFC3339Nano),
		formatFloat(e.FPS),
		formatFloat(e.FrameTime),
		formatFloat(e.FPS1PercentLow),
		formatFloat(e.FPS01PercentLow),
		formatFloat(e.CPUUsage),
		formatFloat(e.CPUTemp),
		formatFloat(e.GPUUsage),
		formatFloat(e.GPUTemp),
		strconv.FormatInt(e.RAMUsageMB, 10),
		strconv.FormatInt(e.VRAMUsageMB, 10),
	}
}

// rowToEntry parses one data row, reporting the first malformed field.
func rowToEntry(row []string) (metrics.LogEntry, error) {
	var entry metrics.LogEntry
	var err error

	entry.Timestamp, err = time.Parse(time.RFC3339Nano, row[0])
	if err != nil {
		return entry, fmt.Errorf("invalid timestamp %q: %w", row[0], err)
	}

	floatFields := []struct {
		name string
		dst  *float64
		raw  string
	}{
		{"fps", &entry.FPS, row[1]},
		{"frame_time", &entry.FrameTime, row[2]},
		{"fps_1_percent_low", &entry.FPS1PercentLow, row[3]},
		{"fps_0_1_percent_low", &entry.FPS01PercentLow, row[4]},
		{"cpu_usage", &entry.CPUUsage, row[5]},
		{"cpu_temp", &entry.CPUTemp, row[6]},
		{"gpu_usage", &entry.GPUUsage, row[7]},
		{"gpu_temp", &entry.GPUTemp, row[8]},
	}
	for _, f := range floatFields {
		*f.dst, err = strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return entry, fmt.Errorf("invalid %s %q: %w", f.name, f.raw, err)
		}
	}

	entry.RAMUsageMB, err = strconv.ParseInt(row[9], 10, 64)
	if err != nil {
		return entry, fmt.Errorf("invalid ram_usage %q: %w", row[9], err)
	}
	entry.VRAMUsageMB, err = strconv.ParseInt(row[10], 10, 64)
	if err != nil {
		return entry, fmt.Errorf("invalid vram_usage %q: %w", row[10], err)
	}

	return entry, nil
}

// formatFloat writes the shortest representation that round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
