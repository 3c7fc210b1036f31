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

// Package reader provides one metric reader per hardware domain.
//
// Every reader satisfies the same contract: Read never fails past its own
// boundary. Internally a reader is a chain of backend probes tried in
// priority order; each probe either yields a value or reports no-value, and
// chain exhaustion degrades to a defaulted record. The monitoring engine
// never sees which backends exist.
package reader

import (
	"log/slog"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// CPUReader reads CPU metrics. Implementations never return an error;
// unavailable values degrade to zero / "Unknown".
type CPUReader interface {
	Read() metrics.CPUMetrics
}

// GPUReader reads GPU metrics.
type GPUReader interface {
	Read() metrics.GPUMetrics
}

// MemoryReader reads RAM metrics.
type MemoryReader interface {
	Read() metrics.MemoryMetrics
}

// DiskReader reads disk metrics.
type DiskReader interface {
	Read() metrics.DiskMetrics
}

// NetworkReader reads network metrics.
type NetworkReader interface {
	Read() metrics.NetworkMetrics
}

// Readers bundles the five domain readers injected into the monitoring
// engine at construction time.
type Readers struct {
	CPU     CPUReader
	GPU     GPUReader
	Memory  MemoryReader
	Disk    DiskReader
	Network NetworkReader
}

// backend is one member of a reader's fallback chain: a named probe that
// either yields a value or reports that it could not.
type backend[T any] struct {
	name string
	read func() (T, bool)
}

// readChain tries each backend in priority order and returns the first
// value produced. Exhaustion yields the fallback value.
func readChain[T any](logger *slog.Logger, domain string, backends []backend[T], fallback T) T {
	for _, b := range backends {
		if v, ok := b.read(); ok {
			return v
		}
		logger.Debug("Sensor backend yielded no value", "domain", domain, "backend", b.name)
	}
	return fallback
}

// NewReaders constructs the default production reader set.
func NewReaders(pingHost string, logger *slog.Logger) *Readers {
	return &Readers{
		CPU:     NewCPU(logger),
		GPU:     NewGPU(logger),
		Memory:  NewMemory(logger),
		Disk:    NewDisk(logger),
		Network: NewNetwork(pingHost, logger),
	}
}
