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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anhpham/gamepulse/internal/reader"
	"github.com/anhpham/gamepulse/internal/sensors"
	"github.com/anhpham/gamepulse/pkg/metrics"
)

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List available hardware sensors and devices",
	Long: `List temperature sensors, disk devices, network interfaces and GPU
availability. Useful for diagnosing why a metric permanently reads 0 or
"Unknown": if no matching sensor appears here, the fallback chain has
nothing to probe.`,
	RunE: runSensors,
}

func init() {
	rootCmd.AddCommand(sensorsCmd)
}

func runSensors(cmd *cobra.Command, args []string) error {
	fmt.Println("\n========================================")
	fmt.Println("   GamePulse - Available Sensors")
	fmt.Println("========================================")

	// Temperature sensors
	temps, err := sensors.ListTemperatureSensors()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing temperature sensors: %v\n", err)
	case len(temps) == 0:
		fmt.Println("\nNo temperature sensors found. CPU/GPU/disk temperatures will read 0.")
	default:
		fmt.Print(sensors.FormatSensorsTable(temps))
	}

	// Disk devices
	disks, err := sensors.ListDisks()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing disks: %v\n", err)
	case len(disks) == 0:
		fmt.Println("\nNo disk devices found.")
	default:
		fmt.Print(sensors.FormatDisksTable(disks))
	}

	// Network interfaces
	networks, err := sensors.ListNetworkInterfaces()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing network interfaces: %v\n", err)
	case len(networks) == 0:
		fmt.Println("\nNo network interfaces found.")
	default:
		fmt.Print(sensors.FormatNetworksTable(networks))
	}

	// GPU availability through the production reader chain
	logger := InitLogger("error", "")
	gpu := reader.NewGPU(logger)
	record := gpu.Read()
	gpu.Close()

	fmt.Println("\nGPU:")
	if record.Name == metrics.UnknownName && record.UsagePercent == 0 {
		fmt.Println("  No GPU backend available (NVML not found). GPU metrics will read 0.")
	} else {
		fmt.Printf("  %s  vram %d/%d MB\n", record.Name, record.VRAMUsedMB, record.VRAMTotalMB)
	}
	fmt.Println()

	return nil
}
