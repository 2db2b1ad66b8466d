// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// FreezeTokenAccount implements C7's freeze_token_account(target).
// Freeze/thaw remain available even while the vault is paused (I6).
func (e *Engine) FreezeTokenAccount(signer [32]byte, target chainhash.Hash) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if err := requireFreezeAdmin(signer, cfg); err != nil {
		return err
	}

	if err := e.token.FreezeAccount(target, chainhash.Hash(cfg.ReceiptTokenID)); err != nil {
		return err
	}

	e.emit(Event{Type: EventFrozen, Target: target})
	log.Debugf("freeze_token_account: target=%s", target)
	return nil
}

// ThawTokenAccount implements C7's thaw_token_account(target).
func (e *Engine) ThawTokenAccount(signer [32]byte, target chainhash.Hash) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if err := requireFreezeAdmin(signer, cfg); err != nil {
		return err
	}

	if err := e.token.ThawAccount(target, chainhash.Hash(cfg.ReceiptTokenID)); err != nil {
		return err
	}

	e.emit(Event{Type: EventThawed, Target: target})
	log.Debugf("thaw_token_account: target=%s", target)
	return nil
}
