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
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/anhpham/gamepulse/internal/benchmark"
	"github.com/anhpham/gamepulse/internal/config"
	"github.com/anhpham/gamepulse/internal/engine"
	"github.com/anhpham/gamepulse/internal/frames"
	"github.com/anhpham/gamepulse/internal/reader"
	"github.com/anhpham/gamepulse/pkg/fps"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

var (
	// Benchmark command specific flags
	benchDuration      time.Duration
	benchInterval      time.Duration
	benchOutput        string
	benchRate          int
	benchDropThreshold float64
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Record a benchmark session and export it to CSV",
	Long: `Record a bounded benchmark session: one log entry per monitoring tick,
joining the snapshot with the FPS figures current at that moment. At the
end the session statistics are printed and the entries exported to CSV.

Examples:
  # 60 second run into the default output directory
  gamepulse benchmark --duration 60s

  # Explicit output file
  gamepulse benchmark --duration 30s --output run1.csv`,
	RunE: runBenchmark,
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().DurationVar(&benchDuration, "duration", 60*time.Second,
		"Session length (0 = until interrupted)")
	benchmarkCmd.Flags().DurationVar(&benchInterval, "interval", config.DefaultPollingInterval,
		"Polling interval (e.g., 500ms, 1s)")
	benchmarkCmd.Flags().StringVarP(&benchOutput, "output", "o", "",
		"Output CSV file path (default: <output-dir>/benchmark_<timestamp>.csv)")
	benchmarkCmd.Flags().IntVar(&benchRate, "frame-rate", frames.DefaultTargetRate,
		"Simulated frame source rate (frames per second)")
	benchmarkCmd.Flags().Float64Var(&benchDropThreshold, "drop-threshold", config.DefaultFrameDropThreshold,
		"Fraction of average FPS below which a frame counts as a drop")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.PollingInterval = benchInterval
	cfg.FrameDropThreshold = benchDropThreshold
	cfg.LogLevel = logLevel
	cfg.LogFile = logFile
	cfg.Timezone = timezone
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)

	readers := reader.NewReaders(cfg.PingHost, logger)
	eng := engine.New(readers, cfg.PollingInterval, logger)
	calc := fps.NewCalculator(cfg.FPSWindowSize)
	benchLogger := benchmark.NewLogger(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go frames.NewSimulator(calc, benchRate).Run(ctx)

	// One log entry per engine tick; the FPS values are read from the
	// calculator at dispatch time, on the frame source's own cadence.
	subID := eng.Subscribe(func(s metrics.Snapshot) {
		benchLogger.LogEntry(s, calc.CurrentFPS(), calc.FrameTimeAvg(), calc.Percentiles())
	})

	benchLogger.StartSession()
	eng.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if benchDuration > 0 {
		select {
		case <-time.After(benchDuration):
		case <-sigCh:
			logger.Info("Benchmark interrupted")
		}
	} else {
		<-sigCh
		logger.Info("Benchmark interrupted")
	}

	eng.Unsubscribe(subID)
	eng.Stop()

	stats := benchLogger.EndSession()
	printStatistics(stats)

	path, err := benchLogger.Export(benchOutput)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("\nExported to %s\n", path)
	return nil
}

func printStatistics(stats metrics.BenchmarkStatistics) {
	fmt.Println("\n========================================")
	fmt.Println("   GamePulse - Benchmark Results")
	fmt.Println("========================================")
	fmt.Printf("Duration:      %.1f s\n", stats.DurationSeconds)
	fmt.Printf("Total frames:  %d\n", stats.TotalFrames)
	fmt.Printf("FPS avg:       %.1f\n", stats.AvgFPS)
	fmt.Printf("FPS min/max:   %.1f / %.1f\n", stats.MinFPS, stats.MaxFPS)
	fmt.Printf("1%% low:        %.1f\n", stats.FPS1PercentLow)
	fmt.Printf("0.1%% low:      %.1f\n", stats.FPS01PercentLow)
	fmt.Printf("Frame time:    %.2f ms\n", stats.AvgFrameTime)
	fmt.Printf("Frame drops:   %d\n", len(stats.FrameDrops))
}
