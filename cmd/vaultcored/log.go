// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	"github.com/reservevault/core/ledger"
	"github.com/reservevault/core/tokenprog"
	"github.com/reservevault/core/vault"
)

var (
	backendLog *btclog.Backend
	logRotator *rotator.Rotator

	// log is replaced by initLogRotator once the daemon's config is
	// parsed; until then it is disabled, matching every other package's
	// UseLogger/DisableLog convention.
	log btclog.Logger = btclog.Disabled
)

// initLogRotator opens logFile for rotating writes, following the
// btcsuite daemon convention of a single logrotate-backed file plus
// stdout.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o700); err != nil {
			return err
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r

	backendLog = btclog.NewBackend(io.MultiWriter(os.Stdout, logWriter{}))
	log = backendLog.Logger("MAIN")

	vault.UseLogger(backendLog.Logger("VLT"))
	ledger.UseLogger(backendLog.Logger("LDGR"))
	tokenprog.UseLogger(backendLog.Logger("TOKN"))

	return nil
}

func setLogLevels(levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		level = btclog.LevelInfo
	}
	log.SetLevel(level)
}

// logWriter implements io.Writer by forwarding to the active rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logRotator.Write(p)
	return len(p), nil
}
