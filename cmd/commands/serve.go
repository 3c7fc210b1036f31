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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anhpham/gamepulse/internal/config"
	"github.com/anhpham/gamepulse/internal/server"
)

var (
	// Serve command specific flags
	serveAddr string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded benchmark sessions over HTTP",
	Long: `Serve exported benchmark CSV files as a JSON API for external tooling.
All .csv files in the benchmark directory are registered at startup;
further files can be registered through the API.

Examples:
  gamepulse serve
  gamepulse serve --listen 0.0.0.0:9000 --dirs ./benchmarks,./archive`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "listen", config.DefaultListenAddr,
		"Listen address for the results server")
	serveCmd.Flags().StringVar(&serveDir, "dirs", "",
		"Comma-separated benchmark directories to scan at startup (default: <working dir>/benchmarks)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := InitLogger(logLevel, logFile)

	dirs := config.ParseCommaSeparated(serveDir)
	if len(dirs) == 0 {
		dirs = []string{config.DefaultOutputDir()}
	}

	files := server.NewFileService(logger)
	for _, dir := range dirs {
		files.ScanDir(dir)
	}
	logger.Info("Registered benchmark files", "dirs", dirs, "count", len(files.Files()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(serveAddr, files, logger).Start(ctx)
}
