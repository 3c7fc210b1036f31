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

// Package frames provides frame-timing sources that feed an fps.Calculator.
//
// In the full application frame durations come from a render hook. Without
// one, the simulated source stands in: it ticks at a target rate and feeds
// the calculator the durations it actually measures, scheduler jitter
// included. The source runs on its own cadence, independent of the
// monitoring engine's ticks.
package frames

import (
	"context"
	"time"

	"github.com/anhpham/gamepulse/pkg/fps"
)

// DefaultTargetRate is the simulated frame rate in frames per second.
const DefaultTargetRate = 60

// Simulator feeds a calculator with measured inter-tick durations.
type Simulator struct {
	calc       *fps.Calculator
	targetRate int
}

// NewSimulator creates a simulated frame source targeting the given rate.
// Non-positive rates fall back to DefaultTargetRate.
func NewSimulator(calc *fps.Calculator, targetRate int) *Simulator {
	if targetRate <= 0 {
		targetRate = DefaultTargetRate
	}
	return &Simulator{calc: calc, targetRate: targetRate}
}

// Run feeds the calculator until the context is canceled. Each tick adds
// the measured duration since the previous tick, not the nominal interval.
func (s *Simulator) Run(ctx context.Context) {
	interval := time.Second / time.Duration(s.targetRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.calc.AddFrame(float64(now.Sub(last).Microseconds()) / 1000.0)
			last = now
		}
	}
}
