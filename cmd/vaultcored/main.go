// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command vaultcored is the reference host for the vault core: it loads
// (or bootstraps) a Config, wires an in-memory or on-disk ledger.Store, and
// serves the C11 JSON-RPC command surface over HTTP so integration tests
// and operators can drive the state machine without a host ledger
// runtime. It is a test harness / reference daemon, not the production
// ledger runtime the core ultimately runs under (spec.md §1 places that
// runtime out of scope).
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/ledger"
	"github.com/reservevault/core/rpc"
	"github.com/reservevault/core/tokenprog"
	"github.com/reservevault/core/vault"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile := cfg.LogDir
	if logFile == "" {
		logFile = filepath.Join(defaultAppDataDir(), defaultLogFilename)
	} else {
		logFile = filepath.Join(logFile, defaultLogFilename)
	}
	if err := initLogRotator(logFile); err != nil {
		return err
	}
	setLogLevels(cfg.LogLevel)

	store, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}

	programID := deriveProgramID()
	upgradeAuthority, err := decodeOrZero(cfg.UpgradeAuthority)
	if err != nil {
		return fmt.Errorf("invalid upgradeauthority: %w", err)
	}

	token := tokenprog.New(store)
	engine := vault.NewEngine(programID, store, token, vault.SystemClock{}, upgradeAuthority)
	rpc.SetUpgradeSigner(upgradeAuthority)
	server := rpc.New(engine)

	if cfg.ReserveTokenID != "" {
		if err := bootstrap(engine, cfg, upgradeAuthority); err != nil {
			return fmt.Errorf("bootstrap initialize failed: %w", err)
		}
	}

	log.Infof("vaultcored listening on %s", cfg.RPCListen)
	return serve(cfg.RPCListen, server)
}

// openStore opens an on-disk LevelStore when dataDir is set, otherwise
// falls back to an in-memory MemStore -- the same narrow Store interface
// either way, so Engine never knows which backend it is talking to.
func openStore(dataDir string) (ledger.Store, error) {
	if dataDir == "" {
		return ledger.NewMemStore(), nil
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	return ledger.OpenLevelStore(dataDir)
}

// deriveProgramID derives a fixed program identity for this daemon
// instance. A real deployment's program identity is assigned by the host
// ledger's loader; the reference daemon has exactly one, derived from a
// fixed label the way a test fixture would.
func deriveProgramID() chainhash.Hash {
	return chainhash.Hash(sha256.Sum256([]byte("vaultcored-reference-program")))
}

func decodeHexKey(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

func decodeHexKeys(ss []string) ([][32]byte, error) {
	out := make([][32]byte, len(ss))
	for i, s := range ss {
		k, err := decodeHexKey(s)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

func decodeOrZero(s string) ([32]byte, error) {
	var out [32]byte
	if s == "" {
		return out, nil
	}
	return decodeHexKey(s)
}

// bootstrap initializes the Config singleton from config-file/command-line
// values when the operator has supplied a reserve token id, so a fresh
// reference daemon can come up already initialized instead of requiring a
// separate initialize RPC call.
func bootstrap(engine *vault.Engine, cfg *config, upgradeAuthority [32]byte) error {
	reserveTokenID, err := decodeHexKey(cfg.ReserveTokenID)
	if err != nil {
		return err
	}
	receiptTokenID, err := decodeHexKey(cfg.ReceiptTokenID)
	if err != nil {
		return err
	}
	reserveCustody, err := decodeHexKey(cfg.ReserveCustodyAccount)
	if err != nil {
		return err
	}
	redeemCustody, err := decodeHexKey(cfg.RedeemCustodyAccount)
	if err != nil {
		return err
	}
	freezeAdmins, err := decodeHexKeys(cfg.FreezeAdmins)
	if err != nil {
		return err
	}
	rewardsAdmins, err := decodeHexKeys(cfg.RewardsAdmins)
	if err != nil {
		return err
	}
	return engine.Initialize(upgradeAuthority, reserveTokenID, receiptTokenID, reserveCustody, redeemCustody, freezeAdmins, rewardsAdmins)
}

func serve(addr string, server *rpc.Server) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, err := server.Dispatch(req.Method, req.Params)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(result)
	})
	return http.ListenAndServe(addr, mux)
}
