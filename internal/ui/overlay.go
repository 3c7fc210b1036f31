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

// Package ui renders live snapshots and FPS figures as a terminal overlay.
//
// The overlay is an engine subscriber like any other: snapshots arrive on
// the sampling goroutine and are handed to the bubbletea event loop via a
// buffered channel, so the engine never blocks on rendering.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anhpham/gamepulse/internal/engine"
	"github.com/anhpham/gamepulse/pkg/fps"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	fpsStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
	gaugeFill  = "█"
	gaugeEmpty = "░"
)

// Model renders live snapshots from the monitoring engine.
type Model struct {
	eng        *engine.Engine
	calc       *fps.Calculator
	snapshots  chan metrics.Snapshot
	subID      int
	latest     metrics.Snapshot
	haveSample bool
	width      int
	height     int
}

// Messages
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} })
}

// New creates an overlay model subscribed to the engine. The calculator is
// shared with whatever drives the frame source.
func New(eng *engine.Engine, calc *fps.Calculator) *Model {
	m := &Model{
		eng:       eng,
		calc:      calc,
		snapshots: make(chan metrics.Snapshot, 4),
		width:     100,
		height:    30,
	}
	m.subID = eng.Subscribe(func(s metrics.Snapshot) {
		// Drop the snapshot when the UI lags; the next tick supersedes it
		select {
		case m.snapshots <- s:
		default:
		}
	})
	return m
}

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.eng.Unsubscribe(m.subID)
			return m, tea.Quit
		}
	case tickMsg:
		select {
		case s := <-m.snapshots:
			m.latest = s
			m.haveSample = true
		default:
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.haveSample {
		return subtleStyle.Render("Waiting for first snapshot...")
	}

	s := m.latest
	header := titleStyle.Render("GamePulse") + "  " +
		subtleStyle.Render(s.Timestamp.Format("15:04:05"))

	lows := m.calc.Percentiles()
	fpsCard := card("FPS", fmt.Sprintf("%s  avg %.1fms | 1%% %.0f | 0.1%% %.0f",
		fpsStyle.Render(fmt.Sprintf("%5.1f", m.calc.CurrentFPS())),
		m.calc.FrameTimeAvg(), lows.FPS1PercentLow, lows.FPS01PercentLow))

	cpuCard := card("CPU", fmt.Sprintf("%s %s %s",
		gaugeBar(s.CPU.UsagePercent, 20),
		tempString(s.CPU.Temperature),
		subtleStyle.Render(truncate(s.CPU.Name, 24))))

	gpuCard := card("GPU", fmt.Sprintf("%s %s vram %d/%dMB %s",
		gaugeBar(s.GPU.UsagePercent, 20),
		tempString(s.GPU.Temperature),
		s.GPU.VRAMUsedMB, s.GPU.VRAMTotalMB,
		subtleStyle.Render(truncate(s.GPU.Name, 24))))

	ramCard := card("RAM", fmt.Sprintf("%s %d/%dMB",
		gaugeBar(s.Memory.UsagePercent, 20),
		s.Memory.UsedMB, s.Memory.TotalMB))

	netCard := card("NET", fmt.Sprintf("ping %.1fms  up %.0f kbps  down %.0f kbps",
		s.Network.PingMs, s.Network.UploadKbps, s.Network.DownloadKbps))

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, fpsCard, cpuCard, gpuCard)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, ramCard, netCard)

	footer := subtleStyle.Render("q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, line1, line2, footer)
}

// Helpers

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return fmt.Sprintf("%s%s %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

// tempString renders a temperature, or a dash when the sensor chain could
// not produce one.
func tempString(t float64) string {
	if t <= 0 {
		return subtleStyle.Render("--°C")
	}
	return fmt.Sprintf("%2.0f°C", t)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
