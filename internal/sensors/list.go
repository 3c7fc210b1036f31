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

// Package sensors enumerates the hardware sources the metric readers can
// draw from, for diagnosing permanently-"Unknown" readings.
package sensors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/net"
)

// Dependency injection points for testing
var (
	hostSensors    = host.SensorsTemperatures
	diskPartitions = disk.Partitions
	netInterfaces  = net.Interfaces
)

// TemperatureSensor represents one temperature probe exposed by the host.
type TemperatureSensor struct {
	Key         string
	Temperature float64
}

// DiskInfo represents disk device information.
type DiskInfo struct {
	Name       string
	Mountpoint string
	Filesystem string
}

// NetworkInfo represents network interface information.
type NetworkInfo struct {
	Name      string
	Addresses []string
}

// ListTemperatureSensors returns the host temperature sensors sorted by key.
func ListTemperatureSensors() ([]TemperatureSensor, error) {
	readings, err := hostSensors()
	if err != nil {
		return nil, fmt.Errorf("failed to read temperature sensors: %w", err)
	}

	out := make([]TemperatureSensor, 0, len(readings))
	for _, r := range readings {
		out = append(out, TemperatureSensor{Key: r.SensorKey, Temperature: r.Temperature})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// ListDisks returns the available disk devices.
func ListDisks() ([]DiskInfo, error) {
	partitions, err := diskPartitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	disks := make([]DiskInfo, 0)
	seen := make(map[string]bool)

	for _, partition := range partitions {
		// Skip duplicate devices
		if seen[partition.Device] {
			continue
		}
		seen[partition.Device] = true

		disks = append(disks, DiskInfo{
			Name:       partition.Device,
			Mountpoint: partition.Mountpoint,
			Filesystem: partition.Fstype,
		})
	}

	sort.Slice(disks, func(i, j int) bool { return disks[i].Name < disks[j].Name })
	return disks, nil
}

// ListNetworkInterfaces returns the network interfaces that carry addresses.
func ListNetworkInterfaces() ([]NetworkInfo, error) {
	interfaces, err := netInterfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	networks := make([]NetworkInfo, 0)

	for _, iface := range interfaces {
		if len(iface.Addrs) == 0 {
			continue
		}

		addresses := make([]string, 0, len(iface.Addrs))
		for _, addr := range iface.Addrs {
			addresses = append(addresses, addr.Addr)
		}

		networks = append(networks, NetworkInfo{
			Name:      iface.Name,
			Addresses: addresses,
		})
	}

	sort.Slice(networks, func(i, j int) bool { return networks[i].Name < networks[j].Name })
	return networks, nil
}

// FormatSensorsTable formats temperature sensors as a table.
func FormatSensorsTable(items []TemperatureSensor) string {
	var sb strings.Builder

	sb.WriteString("\nTemperature Sensors:\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-45s %s\n", "SENSOR KEY", "READING"))
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")

	for _, s := range items {
		sb.WriteString(fmt.Sprintf("%-45s %.1f°C\n", s.Key, s.Temperature))
	}

	return sb.String()
}

// FormatDisksTable formats disk information as a table.
func FormatDisksTable(disks []DiskInfo) string {
	var sb strings.Builder

	sb.WriteString("\nDisk Devices:\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", "DEVICE", "MOUNTPOINT", "FILESYSTEM"))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, d := range disks {
		sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", d.Name, d.Mountpoint, d.Filesystem))
	}

	return sb.String()
}

// FormatNetworksTable formats network interface information as a table.
func FormatNetworksTable(networks []NetworkInfo) string {
	var sb strings.Builder

	sb.WriteString("\nNetwork Interfaces:\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-20s %s\n", "INTERFACE", "ADDRESSES"))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, n := range networks {
		sb.WriteString(fmt.Sprintf("%-20s %s\n", n.Name, strings.Join(n.Addresses, ", ")))
	}

	return sb.String()
}
