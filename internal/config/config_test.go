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

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.PollingInterval != DefaultPollingInterval {
		t.Errorf("PollingInterval = %v, want %v", cfg.PollingInterval, DefaultPollingInterval)
	}
	if cfg.FPSWindowSize != DefaultFPSWindowSize {
		t.Errorf("FPSWindowSize = %d, want %d", cfg.FPSWindowSize, DefaultFPSWindowSize)
	}
	if cfg.FrameDropThreshold != DefaultFrameDropThreshold {
		t.Errorf("FrameDropThreshold = %v, want %v", cfg.FrameDropThreshold, DefaultFrameDropThreshold)
	}
	if cfg.OutputDir == "" {
		t.Error("OutputDir should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "Interval too short",
			mutate:  func(c *Config) { c.PollingInterval = 50 * time.Millisecond },
			wantErr: "at least 100ms",
		},
		{
			name:    "Interval too long",
			mutate:  func(c *Config) { c.PollingInterval = 2 * time.Hour },
			wantErr: "must not exceed 1 hour",
		},
		{
			name:    "Window size zero",
			mutate:  func(c *Config) { c.FPSWindowSize = 0 },
			wantErr: "window size",
		},
		{
			name:    "Drop threshold at zero",
			mutate:  func(c *Config) { c.FrameDropThreshold = 0 },
			wantErr: "drop threshold",
		},
		{
			name:    "Drop threshold at one",
			mutate:  func(c *Config) { c.FrameDropThreshold = 1 },
			wantErr: "drop threshold",
		},
		{
			name:    "Empty output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: "output directory",
		},
		{
			name:    "Unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "Bad timezone",
			mutate:  func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr: "invalid timezone",
		},
		{
			name:   "UTC timezone accepted",
			mutate: func(c *Config) { c.Timezone = "UTC" },
		},
		{
			name:   "Empty timezone accepted",
			mutate: func(c *Config) { c.Timezone = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want failure")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		expected string
	}{
		{"Empty falls back to local", "", time.Local.String()},
		{"Local keyword", "Local", time.Local.String()},
		{"UTC", "UTC", "UTC"},
		{"Named zone", "Asia/Ho_Chi_Minh", "Asia/Ho_Chi_Minh"},
		{"Unresolvable falls back to local", "Mars/Olympus", time.Local.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Timezone = tt.timezone
			if got := cfg.Location().String(); got != tt.expected {
				t.Errorf("Location() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Empty string", "", nil},
		{"Single value", "eth0", []string{"eth0"}},
		{"Multiple values", "eth0,wlan0,lo", []string{"eth0", "wlan0", "lo"}},
		{"Whitespace trimmed", " eth0 , wlan0 ", []string{"eth0", "wlan0"}},
		{"Empty segments dropped", "eth0,,wlan0,", []string{"eth0", "wlan0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCommaSeparated(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseCommaSeparated(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("element %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestString(t *testing.T) {
	s := Default().String()
	for _, part := range []string{"Interval=", "WindowSize=", "DropThreshold=", "OutputDir="} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q missing %q", s, part)
		}
	}
}
