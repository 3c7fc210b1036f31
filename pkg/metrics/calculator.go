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

package metrics

import "time"

// CPUTimeStats represents cumulative CPU time counters for delta calculations.
type CPUTimeStats struct {
	User      float64
	System    float64
	Idle      float64
	IOWait    float64
	Irq       float64
	SoftIrq   float64
	Steal     float64
	Timestamp time.Time
}

// NetworkIOStats represents network I/O counters for delta calculations.
type NetworkIOStats struct {
	BytesSent uint64
	BytesRecv uint64
	Timestamp time.Time
}

// CalculateCPUUtilization calculates CPU utilization percentage from two
// cumulative CPU time snapshots.
// Formula: 100 * (1 - ΔIdle / ΔTotal)
func CalculateCPUUtilization(prev, current *CPUTimeStats) float64 {
	if prev.Timestamp.IsZero() {
		return 0.0
	}

	prevTotal := prev.User + prev.System + prev.Idle + prev.IOWait + prev.Irq + prev.SoftIrq + prev.Steal
	currentTotal := current.User + current.System + current.Idle + current.IOWait + current.Irq + current.SoftIrq + current.Steal

	deltaTotal := currentTotal - prevTotal
	deltaIdle := current.Idle - prev.Idle

	if deltaTotal <= 0 {
		return 0.0
	}

	utilization := 100.0 * (1.0 - deltaIdle/deltaTotal)

	// Clamp to the valid percentage range (counters can jitter backwards)
	if utilization < 0 {
		return 0.0
	}
	if utilization > 100.0 {
		return 100.0
	}
	return utilization
}

// CalculateNetworkThroughput calculates upload and download throughput in
// kilobits per second from two network counter snapshots.
// Formula: (ΔBytes × 8 / 1000) / Δt
func CalculateNetworkThroughput(prev, current NetworkIOStats) (uploadKbps, downloadKbps float64) {
	if prev.Timestamp.IsZero() {
		return 0.0, 0.0
	}

	deltaTime := current.Timestamp.Sub(prev.Timestamp).Seconds()
	if deltaTime <= 0 {
		return 0.0, 0.0
	}

	// Counters reset to zero when an interface restarts; an unsigned
	// subtraction would wrap to an absurd rate, so treat a backwards
	// counter as no traffic for this sample.
	var deltaSent, deltaRecv float64
	if current.BytesSent >= prev.BytesSent {
		deltaSent = float64(current.BytesSent - prev.BytesSent)
	}
	if current.BytesRecv >= prev.BytesRecv {
		deltaRecv = float64(current.BytesRecv - prev.BytesRecv)
	}

	uploadKbps = deltaSent * 8 / 1000 / deltaTime
	downloadKbps = deltaRecv * 8 / 1000 / deltaTime
	return uploadKbps, downloadKbps
}

// CalculateMemoryUtilization calculates memory utilization percentage.
// Formula: (Used / Total) × 100
func CalculateMemoryUtilization(usedBytes, totalBytes uint64) float64 {
	if totalBytes == 0 {
		return 0.0
	}
	return (float64(usedBytes) / float64(totalBytes)) * 100.0
}
