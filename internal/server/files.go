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

package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anhpham/gamepulse/internal/benchmark"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

const (
	// MaxFileSize limits benchmark CSV size to prevent memory issues (50MB).
	MaxFileSize = 50 * 1024 * 1024
	// MaxFiles limits the number of loaded files.
	MaxFiles = 50
)

// BenchmarkFile describes one registered benchmark export.
type BenchmarkFile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	RowCount int       `json:"rowCount"`
	MinTime  time.Time `json:"minTime"`
	MaxTime  time.Time `json:"maxTime"`
	IsLoaded bool      `json:"isLoaded"`
}

// FileService manages registered benchmark files and their parsed entries.
type FileService struct {
	mu      sync.RWMutex
	files   map[string]*BenchmarkFile
	entries map[string][]metrics.LogEntry
	logger  *slog.Logger
}

// NewFileService creates an empty benchmark file registry.
func NewFileService(logger *slog.Logger) *FileService {
	return &FileService{
		files:   make(map[string]*BenchmarkFile),
		entries: make(map[string][]metrics.LogEntry),
		logger:  logger,
	}
}

// Register adds a benchmark file to the registry without loading it and
// returns its generated ID.
func (s *FileService) Register(name, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (limit %d)", info.Size(), MaxFileSize)
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.files) >= MaxFiles {
		return "", fmt.Errorf("maximum number of files reached (%d)", MaxFiles)
	}

	s.files[id] = &BenchmarkFile{
		ID:   id,
		Name: name,
		Path: path,
	}
	return id, nil
}

// ScanDir registers every .csv file under dir. Files that cannot be
// registered are logged and skipped.
func (s *FileService) ScanDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("Cannot scan benchmark directory", "dir", dir, "error", err)
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		if _, err := s.Register(e.Name(), filepath.Join(dir, e.Name())); err != nil {
			s.logger.Warn("Skipping benchmark file", "name", e.Name(), "error", err)
		}
	}
}

// Load parses the registered file's entries into memory. Loading an
// already-loaded file is a no-op; concurrent loads of the same file may
// parse twice but publish consistently.
func (s *FileService) Load(id string) error {
	s.mu.RLock()
	file, exists := s.files[id]
	loaded := exists && file.IsLoaded
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("file not found: %s", id)
	}
	if loaded {
		return nil
	}

	// Path and Name are immutable after Register, safe to read unlocked.
	entries, err := benchmark.ImportCSV(file.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", file.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock: a concurrent Load may have won, or a
	// Delete may have removed the file while we were parsing.
	if _, ok := s.files[id]; !ok {
		return fmt.Errorf("file not found: %s", id)
	}
	if file.IsLoaded {
		return nil
	}

	file.RowCount = len(entries)
	if len(entries) > 0 {
		file.MinTime = entries[0].Timestamp
		file.MaxTime = entries[len(entries)-1].Timestamp
	}
	file.IsLoaded = true
	s.entries[id] = entries
	return nil
}

// Delete removes a file from the registry and drops its entries.
func (s *FileService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[id]; !exists {
		return fmt.Errorf("file not found: %s", id)
	}
	delete(s.files, id)
	delete(s.entries, id)
	return nil
}

// Files returns all registered files sorted by name.
func (s *FileService) Files() []*BenchmarkFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*BenchmarkFile, 0, len(s.files))
	for _, f := range s.files {
		copied := *f
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Entries returns the parsed entries of a loaded file.
func (s *FileService) Entries(id string) ([]metrics.LogEntry, error) {
	if err := s.Load(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[id]
	out := make([]metrics.LogEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Statistics recomputes session statistics from a file's entries. Duration
// spans the first to the last entry timestamp since imported files carry
// no session bounds.
func (s *FileService) Statistics(id string) (metrics.BenchmarkStatistics, error) {
	entries, err := s.Entries(id)
	if err != nil {
		return metrics.BenchmarkStatistics{}, err
	}

	var duration float64
	if len(entries) > 1 {
		duration = entries[len(entries)-1].Timestamp.Sub(entries[0].Timestamp).Seconds()
	}

	return benchmark.ComputeStatistics(entries, duration, benchmark.DefaultDropThreshold), nil
}
