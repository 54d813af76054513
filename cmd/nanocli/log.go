// Copyright (c) 2025 The Shell developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/toole-brendan/nanogo/block"
	"github.com/toole-brendan/nanogo/pow"
)

// logRotator rolls the log file once it crosses maxLogFileSize, keeping
// maxLogRolls backups, the same scheme the teacher node uses for its
// on-disk logs.
var logRotator *rotator.Rotator

const (
	maxLogFileSize = 10 * 1024 // KiB
	maxLogRolls    = 3
)

// logWriter implements io.Writer by fanning out to both stdout and the
// rotator, so a foreground run shows log output without losing the on-disk
// trail.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

var backendLog = btclog.NewBackend(logWriter{})

func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, maxLogFileSize, false, maxLogRolls)
	if err != nil {
		return fmt.Errorf("failed to create log rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevels wires the package-scoped loggers in block and pow to a
// shared backend subsystem, the same "one logger per package, opt-in"
// convention those packages' doc comments describe.
func setLogLevels(levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		level = btclog.LevelInfo
	}

	powLog := backendLog.Logger("POW")
	powLog.SetLevel(level)
	pow.UseLogger(powLog)

	blockLog := backendLog.Logger("BLK")
	blockLog.SetLevel(level)
	block.UseLogger(blockLog)
}
