// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault implements the custodial vault-and-mint core: the
// configuration registry (C4), the deposit/redeem engine (C5), the
// rewards engine (C6), the freeze controller (C7), and the event surface
// (C8), wired together by Engine, which dispatches every externally
// triggered operation through the C3 guards and the C4 config load first
// (§2's control-flow note).
//
// Engine owns no concurrency of its own: every public method takes its
// own lock before touching state, modeling the host ledger's
// single-threaded-transaction scheduling (§5) for the purposes of local
// testing. This mirrors the host project's covenants/vault.VaultState,
// which a single goroutine mutates per call under its own mutex.
package vault

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/authority"
	"github.com/reservevault/core/ledger"
	"github.com/reservevault/core/tokenprog"
	"github.com/reservevault/core/vaulterr"
)

// Engine is the top-level entry point for every §6 operation. One Engine
// corresponds to one deployed instance of the program (one programID, one
// Config singleton).
type Engine struct {
	mu sync.Mutex

	programID chainhash.Hash
	store     ledger.Store
	token     *tokenprog.Program
	clock     Clock

	upgradeAuthority [32]byte

	vaultAuthority       authority.Authority
	mintAuthority        authority.Authority
	freezeAuthority      authority.Authority
	redeemVaultAuthority authority.Authority

	events []Event
}

// NewEngine constructs an Engine. upgradeAuthority is the host loader
// metadata's recorded upgrade authority for this program (§4.3); it is
// supplied here rather than derived, since it is an external loader
// concept, not a program-derived authority.
func NewEngine(programID chainhash.Hash, store ledger.Store, token *tokenprog.Program, clock Clock, upgradeAuthority [32]byte) *Engine {
	vaultAuth, mintAuth, freezeAuth, redeemVaultAuth := authority.DeriveAll(programID)
	return &Engine{
		programID:            programID,
		store:                store,
		token:                token,
		clock:                clock,
		upgradeAuthority:     upgradeAuthority,
		vaultAuthority:       vaultAuth,
		mintAuthority:        mintAuth,
		freezeAuthority:      freezeAuth,
		redeemVaultAuthority: redeemVaultAuth,
	}
}

func (e *Engine) configAddress() chainhash.Hash {
	return authority.ConfigAddress(e.programID)
}

func (e *Engine) loadConfig() (*Config, error) {
	raw, ok, err := e.store.Get(e.configAddress())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, vaulterr.New(vaulterr.ErrConfigMismatch, "", "config has not been initialized")
	}
	return unmarshalConfig(raw)
}

func (e *Engine) putConfig(c *Config) error {
	return e.store.Put(e.configAddress(), c.marshal())
}

// Initialize creates the Config singleton (C4's initialize).
func (e *Engine) Initialize(signer [32]byte, reserveTokenID, receiptTokenID, reserveCustody, redeemCustody [32]byte, freezeAdmins, rewardsAdmins [][32]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := requireUpgradeAuthority(signer, e.upgradeAuthority); err != nil {
		return err
	}
	if isZero32(reserveTokenID) || isZero32(receiptTokenID) {
		return vaulterr.New(vaulterr.ErrInvalidAmount, "initialize", "token identifiers must be non-zero")
	}
	if err := validateAdminSet(freezeAdmins); err != nil {
		return err
	}
	if err := validateAdminSet(rewardsAdmins); err != nil {
		return err
	}

	cfg := &Config{
		ReserveTokenID:        reserveTokenID,
		ReceiptTokenID:        receiptTokenID,
		ReserveCustodyAccount: reserveCustody,
		RedeemCustodyAccount:  redeemCustody,
		FreezeAdmins:          freezeAdmins,
		RewardsAdmins:         rewardsAdmins,
		Paused:                false,
		ReceiptSupplyCap:      0,
		Version:               0,
	}

	created, err := e.store.CreateIfAbsent(e.configAddress(), cfg.marshal())
	if err != nil {
		return err
	}
	if !created {
		return vaulterr.New(vaulterr.ErrAlreadyExists, "initialize", "config already initialized")
	}

	e.emit(Event{Type: EventConfigInitialized, Version: cfg.Version})
	log.Infof("config initialized: reserve=%x receipt=%x", reserveTokenID, receiptTokenID)
	return nil
}

// UpdateConfig applies the C4 update_config operation. A nil pointer
// field leaves the current value untouched.
func (e *Engine) UpdateConfig(signer [32]byte, newReserveCustody, newRedeemCustody *[32]byte, newSupplyCap *uint64, newPaused *bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := requireUpgradeAuthority(signer, e.upgradeAuthority); err != nil {
		return err
	}
	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}

	if newReserveCustody != nil {
		cfg.ReserveCustodyAccount = *newReserveCustody
	}
	if newRedeemCustody != nil {
		cfg.RedeemCustodyAccount = *newRedeemCustody
	}
	if newSupplyCap != nil {
		cfg.ReceiptSupplyCap = *newSupplyCap
	}
	if newPaused != nil {
		cfg.Paused = *newPaused
	}
	cfg.Version++

	if err := e.putConfig(cfg); err != nil {
		return err
	}
	e.emit(Event{Type: EventConfigUpdated, Version: cfg.Version})
	return nil
}

// UpdateFreezeAdministrators replaces config.FreezeAdmins atomically.
func (e *Engine) UpdateFreezeAdministrators(signer [32]byte, admins [][32]byte) error {
	return e.updateAdminSet(signer, admins, true)
}

// UpdateRewardsAdministrators replaces config.RewardsAdmins atomically.
func (e *Engine) UpdateRewardsAdministrators(signer [32]byte, admins [][32]byte) error {
	return e.updateAdminSet(signer, admins, false)
}

func (e *Engine) updateAdminSet(signer [32]byte, admins [][32]byte, freeze bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := requireUpgradeAuthority(signer, e.upgradeAuthority); err != nil {
		return err
	}
	if err := validateAdminSet(admins); err != nil {
		return err
	}
	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}

	if freeze {
		cfg.FreezeAdmins = admins
	} else {
		cfg.RewardsAdmins = admins
	}
	cfg.Version++

	if err := e.putConfig(cfg); err != nil {
		return err
	}
	e.emit(Event{Type: EventConfigUpdated, Version: cfg.Version})
	return nil
}

// Config returns a copy of the current Config, for callers (the RPC
// surface, tests) that need to inspect vault state.
func (e *Engine) Config() (*Config, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadConfig()
}
