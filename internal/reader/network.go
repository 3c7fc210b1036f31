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

package reader

import (
	"log/slog"
	gonet "net"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/anhpham/gamepulse/pkg/metrics"
)

// pingTimeout bounds the latency probe so a dead host cannot stall a tick.
const pingTimeout = 500 * time.Millisecond

// Network reads upload/download throughput from I/O counter deltas and a
// best-effort TCP-dial latency. The first read only establishes the counter
// baseline and reports zero throughput.
type Network struct {
	logger   *slog.Logger
	pingHost string // host:port, empty disables the latency probe

	mu        sync.Mutex
	prevStats metrics.NetworkIOStats
}

// NewNetwork creates a network reader. pingHost is the host:port probed
// for latency; pass "" to skip the probe entirely.
func NewNetwork(pingHost string, logger *slog.Logger) *Network {
	return &Network{logger: logger, pingHost: pingHost}
}

// Read returns the current network metrics. Unreachable counters or probe
// hosts degrade to zeros.
func (n *Network) Read() metrics.NetworkMetrics {
	upload, download := n.throughput()

	ping := readChain(n.logger, "network", []backend[float64]{
		{name: "tcp-dial", read: n.tcpPing},
	}, 0.0)

	return metrics.NetworkMetrics{
		PingMs:       ping,
		UploadKbps:   upload,
		DownloadKbps: download,
	}
}

// throughput computes kbps figures from the delta against the previous read.
func (n *Network) throughput() (uploadKbps, downloadKbps float64) {
	counters, err := net.IOCounters(false)
	if err != nil || len(counters) == 0 {
		n.logger.Debug("Network counters unavailable", "error", err)
		return 0, 0
	}

	current := metrics.NetworkIOStats{
		BytesSent: counters[0].BytesSent,
		BytesRecv: counters[0].BytesRecv,
		Timestamp: time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	uploadKbps, downloadKbps = metrics.CalculateNetworkThroughput(n.prevStats, current)
	n.prevStats = current
	return uploadKbps, downloadKbps
}

// tcpPing measures the time to establish a TCP connection to the probe
// host. This stands in for ICMP, which needs elevated privileges.
func (n *Network) tcpPing() (float64, bool) {
	if n.pingHost == "" {
		return 0, false
	}

	start := time.Now()
	conn, err := gonet.DialTimeout("tcp", n.pingHost, pingTimeout)
	if err != nil {
		return 0, false
	}
	elapsed := time.Since(start)
	_ = conn.Close()

	return float64(elapsed.Microseconds()) / 1000.0, true
}

// Name returns the reader name for logging purposes.
func (n *Network) Name() string {
	return "Network"
}
