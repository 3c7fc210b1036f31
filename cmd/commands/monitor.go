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

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anhpham/gamepulse/internal/config"
	"github.com/anhpham/gamepulse/internal/engine"
	"github.com/anhpham/gamepulse/internal/frames"
	"github.com/anhpham/gamepulse/internal/reader"
	"github.com/anhpham/gamepulse/internal/ui"
	"github.com/anhpham/gamepulse/pkg/fps"
	"github.com/anhpham/gamepulse/pkg/metrics"
	"github.com/anhpham/gamepulse/pkg/version"
)

var (
	// Monitor command specific flags
	monitorInterval time.Duration
	monitorTUI      bool
	monitorRate     int
	pingHost        string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Start live system monitoring",
	Long: `Start the monitoring engine and show live metrics.

By default each snapshot is printed as one line; --tui renders a live
terminal overlay instead.

Examples:
  # Plain line-per-tick output
  gamepulse monitor --interval 500ms

  # Terminal overlay
  gamepulse monitor --tui`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", config.DefaultPollingInterval,
		"Polling interval (e.g., 500ms, 1s)")
	monitorCmd.Flags().BoolVar(&monitorTUI, "tui", false,
		"Render a live terminal overlay instead of line output")
	monitorCmd.Flags().IntVar(&monitorRate, "frame-rate", frames.DefaultTargetRate,
		"Simulated frame source rate (frames per second)")
	monitorCmd.Flags().StringVar(&pingHost, "ping-host", config.DefaultPingHost,
		"host:port probed for network latency (empty = skip)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.PollingInterval = monitorInterval
	cfg.PingHost = pingHost
	cfg.LogLevel = logLevel
	cfg.LogFile = logFile
	cfg.Timezone = timezone
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)

	logger.Info("Starting GamePulse",
		"version", version.Info(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())

	readers := reader.NewReaders(cfg.PingHost, logger)
	eng := engine.New(readers, cfg.PollingInterval, logger)
	calc := fps.NewCalculator(cfg.FPSWindowSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go frames.NewSimulator(calc, monitorRate).Run(ctx)

	eng.Start()
	defer eng.Stop()

	if monitorTUI {
		program := tea.NewProgram(ui.New(eng, calc), tea.WithAltScreen())
		_, err := program.Run()
		return err
	}

	// Line-per-tick output until interrupted, timestamps in the
	// configured timezone
	loc := cfg.Location()
	subID := eng.Subscribe(func(s metrics.Snapshot) {
		fmt.Printf("%s  fps=%.1f  cpu=%.1f%% (%s)  gpu=%.1f%% (%s)  ram=%d/%dMB  ping=%.1fms\n",
			s.Timestamp.In(loc).Format("15:04:05.000"),
			calc.CurrentFPS(),
			s.CPU.UsagePercent, tempLabel(s.CPU.Temperature),
			s.GPU.UsagePercent, tempLabel(s.GPU.Temperature),
			s.Memory.UsedMB, s.Memory.TotalMB,
			s.Network.PingMs,
		)
	})
	defer eng.Unsubscribe(subID)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Received shutdown signal")
	return nil
}

// tempLabel formats a temperature, using the unavailable sentinel when the
// sensor chain produced nothing.
func tempLabel(t float64) string {
	if t <= 0 {
		return metrics.UnknownName
	}
	return fmt.Sprintf("%.0f°C", t)
}
