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

// Package config holds the GamePulse runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config represents application configuration.
type Config struct {
	PollingInterval    time.Duration // Interval between monitoring ticks
	FPSWindowSize      int           // Rolling frame-time window capacity
	FrameDropThreshold float64       // Fraction of average FPS below which a frame is a drop
	OutputDir          string        // Directory for benchmark CSV exports

	// Network reader
	PingHost string // host:port probed for latency (empty = skip ping)

	// Results server
	ListenAddr string // Address for the benchmark results HTTP server

	// Logging
	LogLevel string // Log level: debug, info, warn, error
	LogFile  string // Log file path (empty = stdout)

	// Timezone
	Timezone string // Timezone location for exported timestamps
}

// Default configuration values.
const (
	DefaultPollingInterval    = 500 * time.Millisecond
	DefaultFPSWindowSize      = 1000
	DefaultFrameDropThreshold = 0.5
	DefaultPingHost           = "8.8.8.8:53"
	DefaultListenAddr         = "127.0.0.1:8572"
	DefaultLogLevel           = "info"
)

// Default creates a configuration populated with defaults.
func Default() *Config {
	return &Config{
		PollingInterval:    DefaultPollingInterval,
		FPSWindowSize:      DefaultFPSWindowSize,
		FrameDropThreshold: DefaultFrameDropThreshold,
		OutputDir:          DefaultOutputDir(),
		PingHost:           DefaultPingHost,
		ListenAddr:         DefaultListenAddr,
		LogLevel:           DefaultLogLevel,
		Timezone:           "Local",
	}
}

// DefaultOutputDir returns the default benchmark export directory:
// <working dir>/benchmarks, falling back to "benchmarks".
func DefaultOutputDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "benchmarks"
	}
	return wd + string(os.PathSeparator) + "benchmarks"
}

// Location resolves the configured timezone to a time.Location. Empty,
// "Local" or unresolvable values fall back to the system local zone;
// Validate reports unresolvable values before this is reached.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ParseCommaSeparated parses a comma-separated string into a slice of
// trimmed, non-empty strings.
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.PollingInterval < 100*time.Millisecond {
		return errors.New("polling interval must be at least 100ms")
	}

	if c.PollingInterval > 1*time.Hour {
		return errors.New("polling interval must not exceed 1 hour")
	}

	if c.FPSWindowSize < 1 {
		return errors.New("FPS window size must be at least 1")
	}

	if c.FrameDropThreshold <= 0 || c.FrameDropThreshold >= 1 {
		return errors.New("frame drop threshold must be in (0, 1)")
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	// Validate timezone
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone: %s (%w)", c.Timezone, err)
		}
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Interval=%v, WindowSize=%d, DropThreshold=%.2f, OutputDir=%s, Timezone=%s}",
		c.PollingInterval, c.FPSWindowSize, c.FrameDropThreshold, c.OutputDir, c.Timezone)
}
