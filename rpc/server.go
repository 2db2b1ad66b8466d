// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc implements the reference JSON-RPC command surface (C11)
// over a vault.Engine. Dispatch is a single switch over an operation-name
// string, mirroring spec.md §9's "one operation enum" design note rather
// than an open handler registry — the same shape the teacher repo's own
// command dispatch follows, generalized from its per-command handler
// functions (rpc/mobilecmds.go's handleGetMobileBlockTemplate-style
// handlers) into one Server.Dispatch method.
package rpc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/vault"
	"github.com/reservevault/core/vaultcmds"
)

// Server dispatches vaultcmds requests against a single vault.Engine.
type Server struct {
	engine *vault.Engine
}

// New constructs a Server over engine.
func New(engine *vault.Engine) *Server {
	return &Server{engine: engine}
}

// Dispatch decodes params for the named operation, invokes the matching
// Engine method, and returns a JSON-marshalable result.
func (s *Server) Dispatch(method string, params json.RawMessage) (interface{}, error) {
	switch method {
	case "initialize":
		var cmd vaultcmds.InitializeCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.initialize(&cmd)

	case "updateconfig":
		var cmd vaultcmds.UpdateConfigCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.updateConfig(&cmd)

	case "updatefreezeadministrators":
		var cmd vaultcmds.UpdateFreezeAdministratorsCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		admins, err := decodeKeys(cmd.Admins)
		if err != nil {
			return nil, err
		}
		if err := s.engine.UpdateFreezeAdministrators(upgradeSigner(), admins); err != nil {
			return nil, err
		}
		return vaultcmds.OKResult{OK: true}, nil

	case "updaterewardsadministrators":
		var cmd vaultcmds.UpdateRewardsAdministratorsCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		admins, err := decodeKeys(cmd.Admins)
		if err != nil {
			return nil, err
		}
		if err := s.engine.UpdateRewardsAdministrators(upgradeSigner(), admins); err != nil {
			return nil, err
		}
		return vaultcmds.OKResult{OK: true}, nil

	case "deposit":
		var cmd vaultcmds.DepositCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.deposit(&cmd)

	case "requestredeem":
		var cmd vaultcmds.RequestRedeemCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.requestRedeem(&cmd)

	case "completeredeem":
		var cmd vaultcmds.CompleteRedeemCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.completeRedeem(&cmd)

	case "createrewardsepoch":
		var cmd vaultcmds.CreateRewardsEpochCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.createRewardsEpoch(&cmd)

	case "claimrewards":
		var cmd vaultcmds.ClaimRewardsCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.claimRewards(&cmd)

	case "freezetokenaccount":
		var cmd vaultcmds.FreezeTokenAccountCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.freeze(&cmd, true)

	case "thawtokenaccount":
		var cmd vaultcmds.ThawTokenAccountCmd
		if err := json.Unmarshal(params, &cmd); err != nil {
			return nil, err
		}
		return s.freeze((*vaultcmds.FreezeTokenAccountCmd)(&cmd), false)

	case "getconfig":
		return s.getConfig()

	case "getevents":
		return s.getEvents()

	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}

// upgradeSigner is the fixed reference-daemon identity authorized as
// upgrade authority. A real deployment supplies this from loader
// metadata; the reference daemon has one operator, so it is wired here
// as a package-level key, set once at startup by SetUpgradeSigner, rather
// than plumbed through every RPC call.
var upgradeSignerKey [32]byte

// SetUpgradeSigner configures the identity Dispatch uses for operations
// gated by require_upgrade_authority. It must match the key passed as
// upgradeAuthority to vault.NewEngine. Dispatch also signs the
// rewards-admin operations (completeredeem, createrewardsepoch) and the
// freeze-admin operations (freezetokenaccount, thawtokenaccount) with this
// same key, so those succeed only when it is also in the matching admin
// set.
func SetUpgradeSigner(key [32]byte) {
	upgradeSignerKey = key
}

func upgradeSigner() [32]byte {
	return upgradeSignerKey
}

func decodeKey(s string) ([32]byte, error) {
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

func decodeKeys(ss []string) ([][32]byte, error) {
	out := make([][32]byte, len(ss))
	for i, s := range ss {
		k, err := decodeKey(s)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

func decodeHash(s string) (chainhash.Hash, error) {
	k, err := decodeKey(s)
	return chainhash.Hash(k), err
}

func encodeKey(k [32]byte) string {
	return hex.EncodeToString(k[:])
}

func encodeHash(h chainhash.Hash) string {
	return hex.EncodeToString(h[:])
}

func (s *Server) initialize(cmd *vaultcmds.InitializeCmd) (interface{}, error) {
	reserveTokenID, err := decodeKey(cmd.ReserveTokenID)
	if err != nil {
		return nil, err
	}
	receiptTokenID, err := decodeKey(cmd.ReceiptTokenID)
	if err != nil {
		return nil, err
	}
	reserveCustody, err := decodeKey(cmd.ReserveCustodyAccount)
	if err != nil {
		return nil, err
	}
	redeemCustody, err := decodeKey(cmd.RedeemCustodyAccount)
	if err != nil {
		return nil, err
	}
	freezeAdmins, err := decodeKeys(cmd.FreezeAdmins)
	if err != nil {
		return nil, err
	}
	rewardsAdmins, err := decodeKeys(cmd.RewardsAdmins)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Initialize(upgradeSigner(), reserveTokenID, receiptTokenID, reserveCustody, redeemCustody, freezeAdmins, rewardsAdmins); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) updateConfig(cmd *vaultcmds.UpdateConfigCmd) (interface{}, error) {
	var reserveCustody, redeemCustody *[32]byte
	if cmd.ReserveCustodyAccount != "" {
		k, err := decodeKey(cmd.ReserveCustodyAccount)
		if err != nil {
			return nil, err
		}
		reserveCustody = &k
	}
	if cmd.RedeemCustodyAccount != "" {
		k, err := decodeKey(cmd.RedeemCustodyAccount)
		if err != nil {
			return nil, err
		}
		redeemCustody = &k
	}
	if err := s.engine.UpdateConfig(upgradeSigner(), reserveCustody, redeemCustody, cmd.ReceiptSupplyCap, cmd.Paused); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) deposit(cmd *vaultcmds.DepositCmd) (interface{}, error) {
	user, err := decodeKey(cmd.User)
	if err != nil {
		return nil, err
	}
	reserveAcct, err := decodeHash(cmd.UserReserveAccount)
	if err != nil {
		return nil, err
	}
	receiptAcct, err := decodeHash(cmd.UserReceiptAccount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Deposit(user, reserveAcct, receiptAcct, cmd.Amount); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) requestRedeem(cmd *vaultcmds.RequestRedeemCmd) (interface{}, error) {
	user, err := decodeKey(cmd.User)
	if err != nil {
		return nil, err
	}
	receiptAcct, err := decodeHash(cmd.UserReceiptAccount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.RequestRedeem(user, receiptAcct, cmd.Amount); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) completeRedeem(cmd *vaultcmds.CompleteRedeemCmd) (interface{}, error) {
	user, err := decodeKey(cmd.User)
	if err != nil {
		return nil, err
	}
	reserveAcct, err := decodeHash(cmd.UserReserveAccount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.CompleteRedeem(upgradeSigner(), user, reserveAcct); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) createRewardsEpoch(cmd *vaultcmds.CreateRewardsEpochCmd) (interface{}, error) {
	root, err := decodeHash(cmd.MerkleRoot)
	if err != nil {
		return nil, err
	}
	if err := s.engine.CreateRewardsEpoch(upgradeSigner(), cmd.Index, root, cmd.Total); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) claimRewards(cmd *vaultcmds.ClaimRewardsCmd) (interface{}, error) {
	user, err := decodeKey(cmd.User)
	if err != nil {
		return nil, err
	}
	receiptAcct, err := decodeHash(cmd.UserReceiptAccount)
	if err != nil {
		return nil, err
	}
	proof := make([]chainhash.Hash, len(cmd.Proof))
	for i, p := range cmd.Proof {
		h, err := decodeHash(p)
		if err != nil {
			return nil, err
		}
		proof[i] = h
	}
	if err := s.engine.ClaimRewards(user, receiptAcct, cmd.EpochIndex, cmd.Amount, proof); err != nil {
		return nil, err
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) freeze(cmd *vaultcmds.FreezeTokenAccountCmd, freeze bool) (interface{}, error) {
	target, err := decodeHash(cmd.Target)
	if err != nil {
		return nil, err
	}
	var opErr error
	if freeze {
		opErr = s.engine.FreezeTokenAccount(upgradeSigner(), target)
	} else {
		opErr = s.engine.ThawTokenAccount(upgradeSigner(), target)
	}
	if opErr != nil {
		return nil, opErr
	}
	return vaultcmds.OKResult{OK: true}, nil
}

func (s *Server) getConfig() (interface{}, error) {
	cfg, err := s.engine.Config()
	if err != nil {
		return nil, err
	}
	freezeAdmins := make([]string, len(cfg.FreezeAdmins))
	for i, a := range cfg.FreezeAdmins {
		freezeAdmins[i] = encodeKey(a)
	}
	rewardsAdmins := make([]string, len(cfg.RewardsAdmins))
	for i, a := range cfg.RewardsAdmins {
		rewardsAdmins[i] = encodeKey(a)
	}
	return vaultcmds.ConfigResult{
		ReserveTokenID:        encodeKey(cfg.ReserveTokenID),
		ReceiptTokenID:        encodeKey(cfg.ReceiptTokenID),
		ReserveCustodyAccount: encodeKey(cfg.ReserveCustodyAccount),
		RedeemCustodyAccount:  encodeKey(cfg.RedeemCustodyAccount),
		FreezeAdmins:          freezeAdmins,
		RewardsAdmins:         rewardsAdmins,
		Paused:                cfg.Paused,
		ReceiptSupplyCap:      cfg.ReceiptSupplyCap,
		Version:               cfg.Version,
		EnforceEpochTotals:    cfg.EnforceEpochTotals,
	}, nil
}

func (s *Server) getEvents() (interface{}, error) {
	events := s.engine.Events()
	out := make([]vaultcmds.EventEntry, len(events))
	for i, ev := range events {
		out[i] = vaultcmds.EventEntry{
			Type:   string(ev.Type),
			User:   encodeKey(ev.User),
			Amount: ev.Amount,
			Epoch:  ev.Epoch,
			Target: encodeHash(ev.Target),
		}
	}
	return vaultcmds.EventsResult{Events: out}, nil
}
