// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

const (
	defaultDataDirname  = "data"
	defaultLogLevel     = "info"
	defaultLogFilename  = "vaultcored.log"
	defaultRPCListen    = "127.0.0.1:9109"
	defaultConfigFile   = "vaultcored.conf"
	defaultUpgradeAdmin = ""
)

// config defines the reference daemon's command-line and config-file
// options, following the Options-struct + flags.NewParser convention
// common to btcsuite-family daemons (shelld/shellctl-style): every option
// is a tagged struct field, parsed once at startup by go-flags from both
// the command line and an INI-style config file.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store vault state (leveldb); empty uses an in-memory store"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	LogLevel   string `short:"d" long:"debuglevel" description:"Logging level of the MAIN subsystem: trace, debug, info, warn, error, critical (the VLT, LDGR and TOKN subsystems log at info)"`
	RPCListen  string `long:"rpclisten" description:"Address for the reference JSON-RPC surface to listen on"`

	// Bootstrap Config fields (§4.4's initialize operation).
	UpgradeAuthority      string   `long:"upgradeauthority" description:"Hex-encoded 32-byte upgrade authority key"`
	ReserveTokenID        string   `long:"reservetokenid" description:"Hex-encoded 32-byte reserve token id"`
	ReceiptTokenID        string   `long:"receipttokenid" description:"Hex-encoded 32-byte receipt token id"`
	ReserveCustodyAccount string   `long:"reservecustody" description:"Hex-encoded 32-byte reserve custody account"`
	RedeemCustodyAccount  string   `long:"redeemcustody" description:"Hex-encoded 32-byte redeem custody account"`
	FreezeAdmins          []string `long:"freezeadmin" description:"Hex-encoded freeze administrator key (may be repeated up to 5 times)"`
	RewardsAdmins         []string `long:"rewardsadmin" description:"Hex-encoded rewards administrator key (may be repeated up to 5 times)"`
}

// defaultConfig returns a config populated with the daemon's defaults,
// prior to flag/file parsing.
func defaultConfig() config {
	return config{
		DataDir:   "",
		LogDir:    "",
		LogLevel:  defaultLogLevel,
		RPCListen: defaultRPCListen,
	}
}

// loadConfig parses command-line flags, reading the config file they (or
// the default location) point to first.
func loadConfig() (*config, error) {
	cfg := defaultConfig()

	preParser := flags.NewParser(&cfg, flags.Default|flags.IgnoreUnknown)
	if _, err := preParser.Parse(); err != nil {
		return nil, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = filepath.Join(defaultAppDataDir(), defaultConfigFile)
	}
	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		fileParser := flags.NewParser(&cfg, flags.Default)
		if err := flags.NewIniParser(fileParser).ParseFile(cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultAppDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".vaultcored")
}
