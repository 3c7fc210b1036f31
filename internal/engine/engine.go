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

// Package engine owns the background sampling loop that polls all metric
// readers on a fixed cadence and broadcasts snapshots to subscribers.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/anhpham/gamepulse/internal/reader"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

// stopTimeout bounds how long Stop waits for the sampling loop to exit.
const stopTimeout = 2 * time.Second

// Subscriber consumes one snapshot per tick. It runs on the engine's
// sampling goroutine and must not block for long; a UI-bound subscriber is
// responsible for marshaling to its own rendering context.
type Subscriber func(metrics.Snapshot)

// Engine polls the injected readers once per tick, caches the latest
// snapshot for polling consumers and pushes it to subscribers.
//
// The loop never dies: a misbehaving reader or a panicking subscriber is
// logged and the next tick proceeds on schedule. One slow sensor delays its
// own tick but never serializes future ticks beyond the sequential loop.
type Engine struct {
	readers  *reader.Readers
	interval time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	running     bool
	stopCh      chan struct{}
	doneCh      chan struct{}
	current     metrics.Snapshot
	hasSnapshot bool
	subscribers map[int]Subscriber
	nextSubID   int
}

// New creates a monitoring engine. The readers are owned by the caller and
// injected here so tests can substitute doubles per domain.
func New(readers *reader.Readers, interval time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		readers:     readers,
		interval:    interval,
		logger:      logger,
		subscribers: make(map[int]Subscriber),
	}
}

// Start launches the sampling loop. Calling Start on a running engine is a
// no-op; there is never more than one loop goroutine.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return
	}

	e.running = true
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})

	e.logger.Info("Starting monitoring engine", "interval", e.interval)
	go e.pollingLoop(e.stopCh, e.doneCh)
}

// Stop signals the loop to exit and waits for it, bounded by stopTimeout.
// Stopping a stopped engine is a no-op. After Stop returns, IsRunning
// reports false and no further subscriber callbacks fire.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	stopCh, doneCh := e.stopCh, e.doneCh
	e.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		e.logger.Info("Monitoring engine stopped")
	case <-time.After(stopTimeout):
		e.logger.Warn("Monitoring engine did not stop within timeout", "timeout", stopTimeout)
	}
}

// IsRunning reports whether the sampling loop is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Subscribe registers a snapshot consumer and returns its subscription ID.
// Safe to call concurrently with an in-progress tick.
func (e *Engine) Subscribe(fn Subscriber) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	return id
}

// Unsubscribe removes a subscriber. Unknown IDs are ignored. A subscriber
// removed mid-dispatch may still receive the snapshot of that tick.
func (e *Engine) Unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.subscribers, id)
}

// CurrentMetrics returns the most recently published snapshot without
// blocking on the sampling loop. ok is false before the first tick.
func (e *Engine) CurrentMetrics() (snapshot metrics.Snapshot, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.hasSnapshot
}

// pollingLoop runs until stopCh closes. The stop flag is checked at the
// top of each iteration and again after waking from the interval sleep.
func (e *Engine) pollingLoop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return
		default:
		}

		e.tick()

		select {
		case <-stopCh:
			return
		case <-time.After(e.interval):
		}
	}
}

// tick collects one snapshot and distributes it. Panics anywhere in the
// tick are caught so the loop always reaches its next sleep.
func (e *Engine) tick() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Panic in polling tick", "panic", r)
		}
	}()

	snapshot := e.collect()

	e.mu.Lock()
	e.current = snapshot
	e.hasSnapshot = true
	subscribers := make([]Subscriber, 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subscribers = append(subscribers, fn)
	}
	e.mu.Unlock()

	for _, fn := range subscribers {
		e.notify(fn, snapshot)
	}
}

// collect reads all five domains sequentially and assembles a snapshot.
// Domain order carries no meaning; readers degrade internally and never
// fail, so the snapshot is always complete (possibly with zeroed records).
func (e *Engine) collect() metrics.Snapshot {
	return metrics.Snapshot{
		Timestamp: time.Now(),
		CPU:       e.readers.CPU.Read(),
		GPU:       e.readers.GPU.Read(),
		Memory:    e.readers.Memory.Read(),
		Disk:      e.readers.Disk.Read(),
		Network:   e.readers.Network.Read(),
	}
}

// notify delivers one snapshot to one subscriber, isolating its faults:
// a panicking callback is logged and the remaining subscribers still
// receive the snapshot.
func (e *Engine) notify(fn Subscriber, snapshot metrics.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Panic in subscriber callback", "panic", r)
		}
	}()
	fn(snapshot)
}
