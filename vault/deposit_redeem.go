// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/authority"
	"github.com/reservevault/core/vaulterr"
)

// RedemptionRequest is the per-user in-flight redemption ticket (§3). Its
// existence is the lock that prevents a second concurrent redemption for
// the same user (I3).
type RedemptionRequest struct {
	User      [32]byte
	Amount    uint64
	CreatedAt uint64
}

// redemptionRequestSize matches §6's byte layout exactly: user:[32]u8 ||
// amount:u64_le || created_at:i64_le.
const redemptionRequestSize = 32 + 8 + 8

func (r *RedemptionRequest) marshal() []byte {
	buf := make([]byte, redemptionRequestSize)
	copy(buf[0:32], r.User[:])
	binary.LittleEndian.PutUint64(buf[32:40], r.Amount)
	binary.LittleEndian.PutUint64(buf[40:48], r.CreatedAt)
	return buf
}

func unmarshalRedemptionRequest(buf []byte) (*RedemptionRequest, error) {
	if len(buf) != redemptionRequestSize {
		return nil, vaulterr.New(vaulterr.ErrNotFound, "", "corrupt redemption request record")
	}
	r := &RedemptionRequest{
		Amount:    binary.LittleEndian.Uint64(buf[32:40]),
		CreatedAt: binary.LittleEndian.Uint64(buf[40:48]),
	}
	copy(r.User[:], buf[0:32])
	return r, nil
}

func (e *Engine) redemptionRequestAddress(user [32]byte) chainhash.Hash {
	return authority.RedemptionRequestAddress(e.programID, user)
}

// Deposit implements C5's deposit(amount): transfer amount of reserve from
// the user's reserve-token account into reserve_custody_account, then
// mint amount of receipt into the user's receipt-token account.
func (e *Engine) Deposit(user [32]byte, userReserveAcct, userReceiptAcct chainhash.Hash, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if err := requireNotPaused(cfg); err != nil {
		return err
	}
	if amount == 0 {
		return vaulterr.New(vaulterr.ErrInvalidAmount, "deposit", "amount must be greater than zero")
	}

	if cfg.ReceiptSupplyCap > 0 {
		supply, err := e.token.Supply(chainhash.Hash(cfg.ReceiptTokenID))
		if err != nil {
			return err
		}
		if supply+amount > cfg.ReceiptSupplyCap {
			return vaulterr.New(vaulterr.ErrCapExceeded, "deposit", "deposit would exceed receipt supply cap")
		}
	}

	reserveCustodyAddr := chainhash.Hash(cfg.ReserveCustodyAccount)
	if err := e.token.Transfer(userReserveAcct, reserveCustodyAddr, amount); err != nil {
		if ve, ok := err.(*vaulterr.VaultError); ok && ve.Code == vaulterr.ErrInsufficientUserReserve {
			return vaulterr.New(vaulterr.ErrInsufficientUserReserve, "deposit", "user reserve balance too low")
		}
		return err
	}
	if err := e.token.MintTo(chainhash.Hash(cfg.ReceiptTokenID), userReceiptAcct, amount); err != nil {
		return err
	}

	e.emit(Event{Type: EventDeposited, User: user, Amount: amount})
	log.Debugf("deposit: user=%x amount=%d", user, amount)
	return nil
}

// RequestRedeem implements C5's request_redeem(amount): burns amount of
// receipt from the user's account and creates a RedemptionRequest ticket
// atomically (I3 is enforced by the store's create-if-absent).
func (e *Engine) RequestRedeem(user [32]byte, userReceiptAcct chainhash.Hash, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if err := requireNotPaused(cfg); err != nil {
		return err
	}
	if amount == 0 {
		return vaulterr.New(vaulterr.ErrInvalidAmount, "request_redeem", "amount must be greater than zero")
	}

	reqAddr := e.redemptionRequestAddress(user)
	_, exists, err := e.store.Get(reqAddr)
	if err != nil {
		return err
	}
	if exists {
		return vaulterr.New(vaulterr.ErrPendingRedeemExists, "request_redeem", "a redemption request already exists for this user")
	}

	if err := e.token.Burn(userReceiptAcct, chainhash.Hash(cfg.ReceiptTokenID), amount); err != nil {
		return err
	}

	req := &RedemptionRequest{User: user, Amount: amount, CreatedAt: e.clock.Now()}
	created, err := e.store.CreateIfAbsent(reqAddr, req.marshal())
	if err != nil {
		return err
	}
	if !created {
		return vaulterr.New(vaulterr.ErrPendingRedeemExists, "request_redeem", "a redemption request already exists for this user")
	}

	e.emit(Event{Type: EventRedeemRequested, User: user, Amount: amount})
	log.Debugf("request_redeem: user=%x amount=%d", user, amount)
	return nil
}

// CompleteRedeem implements C5's complete_redeem(): called by any rewards
// administrator to settle user's outstanding ticket from redeem_custody.
func (e *Engine) CompleteRedeem(signer [32]byte, user [32]byte, userReserveAcct chainhash.Hash) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if err := requireNotPaused(cfg); err != nil {
		return err
	}
	if err := requireRewardsAdmin(signer, cfg); err != nil {
		return err
	}

	reqAddr := e.redemptionRequestAddress(user)
	raw, ok, err := e.store.Get(reqAddr)
	if err != nil {
		return err
	}
	if !ok {
		return vaulterr.New(vaulterr.ErrNoPendingRedeem, "complete_redeem", "no pending redemption for this user")
	}
	req, err := unmarshalRedemptionRequest(raw)
	if err != nil {
		return err
	}

	redeemCustodyAddr := chainhash.Hash(cfg.RedeemCustodyAccount)
	custody, err := e.token.Account(redeemCustodyAddr)
	if err != nil {
		return err
	}
	if custody.Balance < req.Amount {
		return vaulterr.New(vaulterr.ErrRedeemUnfunded, "complete_redeem", "redeem custody account is underfunded")
	}

	if err := e.token.Transfer(redeemCustodyAddr, userReserveAcct, req.Amount); err != nil {
		return err
	}
	if err := e.store.Delete(reqAddr); err != nil {
		return err
	}

	e.emit(Event{Type: EventRedeemCompleted, User: user, Amount: req.Amount})
	log.Debugf("complete_redeem: user=%x amount=%d", user, req.Amount)
	return nil
}

// PendingRedemption returns the in-flight RedemptionRequest for user, if
// any.
func (e *Engine) PendingRedemption(user [32]byte) (*RedemptionRequest, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, ok, err := e.store.Get(e.redemptionRequestAddress(user))
	if err != nil || !ok {
		return nil, ok, err
	}
	req, err := unmarshalRedemptionRequest(raw)
	if err != nil {
		return nil, false, err
	}
	return req, true, nil
}
