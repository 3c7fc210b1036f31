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

// Package fps derives frame-rate statistics from a stream of per-frame
// durations over a bounded rolling window.
package fps

import (
	"math"
	"sort"
	"sync"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// DefaultWindowSize is the default rolling window capacity in frames.
const DefaultWindowSize = 1000

// Calculator converts raw frame durations into current FPS and
// percentile-based low-FPS figures.
//
// The window is a pure sliding window: size never exceeds capacity and the
// oldest entries are evicted first. All query methods return 0 on an empty
// window, never an error. Calculator is safe for concurrent use; the frame
// source and the consumers typically run on different goroutines.
type Calculator struct {
	mu         sync.Mutex
	frameTimes []float64 // Ring buffer, milliseconds
	head       int       // Index of the oldest entry
	size       int
}

// NewCalculator creates a calculator with the given rolling window capacity.
// Non-positive capacities fall back to DefaultWindowSize.
func NewCalculator(windowSize int) *Calculator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Calculator{
		frameTimes: make([]float64, windowSize),
	}
}

// AddFrame appends a frame duration in milliseconds to the rolling window.
// Non-positive durations are sensor glitches and are silently ignored; the
// window never contains a value <= 0.
func (c *Calculator) AddFrame(frameTimeMs float64) {
	if frameTimeMs <= 0 || math.IsNaN(frameTimeMs) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	capacity := len(c.frameTimes)
	if c.size < capacity {
		c.frameTimes[(c.head+c.size)%capacity] = frameTimeMs
		c.size++
		return
	}

	// Window full: overwrite the oldest entry
	c.frameTimes[c.head] = frameTimeMs
	c.head = (c.head + 1) % capacity
}

// CurrentFPS calculates current FPS from the average frame time.
// Formula: 1000 / mean(window)
func (c *Calculator) CurrentFPS() float64 {
	avg := c.FrameTimeAvg()
	if avg <= 0 {
		return 0.0
	}
	return 1000.0 / avg
}

// FrameTimeAvg returns the arithmetic mean of the window in milliseconds,
// 0 if the window is empty.
func (c *Calculator) FrameTimeAvg() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size == 0 {
		return 0.0
	}

	var sum float64
	for i := 0; i < c.size; i++ {
		sum += c.frameTimes[(c.head+i)%len(c.frameTimes)]
	}
	return sum / float64(c.size)
}

// PercentileFPS calculates the FPS value at the given percentile in [0,100].
//
// The window is sorted descending by duration so the worst frames come
// first; index floor(count * p/100) is selected, clamped to the last valid
// index. The duration at that index is converted to FPS.
func (c *Calculator) PercentileFPS(percentile float64) float64 {
	sorted := c.windowSnapshot()
	if len(sorted) == 0 {
		return 0.0
	}

	// Longest frame times first
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	index := int(float64(len(sorted)) * (percentile / 100.0))
	if index > len(sorted)-1 {
		index = len(sorted) - 1
	}
	if index < 0 {
		index = 0
	}

	frameTime := sorted[index]
	if frameTime <= 0 {
		return 0.0
	}
	return 1000.0 / frameTime
}

// OnePercentLow returns the 1% low FPS value.
func (c *Calculator) OnePercentLow() float64 {
	return c.PercentileFPS(1.0)
}

// PointOnePercentLow returns the 0.1% low FPS value.
func (c *Calculator) PointOnePercentLow() float64 {
	return c.PercentileFPS(0.1)
}

// Percentiles returns both low-FPS figures in one call.
func (c *Calculator) Percentiles() metrics.FPSPercentiles {
	return metrics.FPSPercentiles{
		FPS1PercentLow:  c.OnePercentLow(),
		FPS01PercentLow: c.PointOnePercentLow(),
	}
}

// Size returns the number of frames currently in the window.
func (c *Calculator) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Window returns a copy of the window contents, oldest first.
func (c *Calculator) Window() []float64 {
	return c.windowSnapshot()
}

// Reset clears the rolling window.
func (c *Calculator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head = 0
	c.size = 0
}

// windowSnapshot copies the live window into a fresh slice, oldest first.
func (c *Calculator) windowSnapshot() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]float64, c.size)
	for i := 0; i < c.size; i++ {
		out[i] = c.frameTimes[(c.head+i)%len(c.frameTimes)]
	}
	return out
}

// FPSFromFrameTime converts a frame time in milliseconds to FPS,
// 0 if the frame time is not positive.
func FPSFromFrameTime(frameTimeMs float64) float64 {
	if frameTimeMs <= 0 {
		return 0.0
	}
	return 1000.0 / frameTimeMs
}

// FrameTimeBetween returns the absolute difference between two timestamps
// in milliseconds.
func FrameTimeBetween(t1, t2 float64) float64 {
	return math.Abs(t2 - t1)
}
