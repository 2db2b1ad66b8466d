// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tokenprog is a black-box stand-in for the fungible-token program
// capability the spec consumes in §6: transfer, mint_to, burn,
// freeze_account, thaw_account. The real primitive lives in the host's
// token program and is out of scope for this module; this package exists
// so the engine in package vault has something concrete to call in tests
// and in the reference daemon, behind the exact same five-method surface.
//
// The external-capability-behind-a-struct shape is adapted from the host
// project's settlement/swaps.AtomicSwap / SwapManager: state lives in a
// map-backed store, every mutating method validates before it writes, and
// failure never leaves partial state.
package tokenprog

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/ledger"
	"github.com/reservevault/core/vaulterr"
)

// Account is a single token-account record: a balance of Mint tokens owned
// by Owner, optionally frozen.
type Account struct {
	Mint    chainhash.Hash
	Owner   chainhash.Hash
	Balance uint64
	Frozen  bool
}

const accountRecordSize = 32 + 32 + 8 + 1

func (a *Account) marshal() []byte {
	buf := make([]byte, accountRecordSize)
	copy(buf[0:32], a.Mint[:])
	copy(buf[32:64], a.Owner[:])
	binary.LittleEndian.PutUint64(buf[64:72], a.Balance)
	if a.Frozen {
		buf[72] = 1
	}
	return buf
}

func unmarshalAccount(buf []byte) (*Account, error) {
	if len(buf) != accountRecordSize {
		return nil, vaulterr.New(vaulterr.ErrNotFound, "", "corrupt account record")
	}
	a := &Account{Balance: binary.LittleEndian.Uint64(buf[64:72]), Frozen: buf[72] == 1}
	copy(a.Mint[:], buf[0:32])
	copy(a.Owner[:], buf[32:64])
	return a, nil
}

// Program implements the §6 token capability against a ledger.Store.
// Account and mint-supply records share the store but live in disjoint
// address spaces via namespacing prefixes, so a Program can be handed the
// same Store instance the vault engine uses for its own records without
// key collisions.
type Program struct {
	store ledger.Store
}

// New constructs a Program backed by store.
func New(store ledger.Store) *Program {
	return &Program{store: store}
}

func acctKey(addr chainhash.Hash) chainhash.Hash {
	return namespacedKey("account", addr)
}

func mintKey(mint chainhash.Hash) chainhash.Hash {
	return namespacedKey("mint-supply", mint)
}

func namespacedKey(ns string, addr chainhash.Hash) chainhash.Hash {
	h := sha256.New()
	h.Write([]byte(ns))
	h.Write(addr[:])
	var out chainhash.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// CreateAccount registers a new token account at addr for the given mint
// and owner with a zero balance. It fails if an account already exists at
// addr.
func (p *Program) CreateAccount(addr, mint, owner chainhash.Hash) error {
	acc := &Account{Mint: mint, Owner: owner}
	created, err := p.store.CreateIfAbsent(acctKey(addr), acc.marshal())
	if err != nil {
		return err
	}
	if !created {
		return vaulterr.New(vaulterr.ErrAlreadyExists, "create_account", "token account already exists")
	}
	return nil
}

// Account returns the account record at addr.
func (p *Program) Account(addr chainhash.Hash) (*Account, error) {
	raw, ok, err := p.store.Get(acctKey(addr))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, vaulterr.New(vaulterr.ErrNotFound, "", "token account not found")
	}
	return unmarshalAccount(raw)
}

func (p *Program) putAccount(addr chainhash.Hash, acc *Account) error {
	return p.store.Put(acctKey(addr), acc.marshal())
}

// Supply returns the total minted supply for mint.
func (p *Program) Supply(mint chainhash.Hash) (uint64, error) {
	raw, ok, err := p.store.Get(mintKey(mint))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (p *Program) putSupply(mint chainhash.Hash, supply uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, supply)
	return p.store.Put(mintKey(mint), buf)
}

// Transfer moves amount of tokens from one account to another. Both
// accounts must share the same mint. Fails atomically: either both
// balances update or neither does.
func (p *Program) Transfer(from, to chainhash.Hash, amount uint64) error {
	fromAcc, err := p.Account(from)
	if err != nil {
		return err
	}
	toAcc, err := p.Account(to)
	if err != nil {
		return err
	}
	if fromAcc.Mint != toAcc.Mint {
		return vaulterr.New(vaulterr.ErrWrongMint, "transfer", "source and destination mints differ")
	}
	if fromAcc.Frozen || toAcc.Frozen {
		return vaulterr.New(vaulterr.ErrWrongMint, "transfer", "account is frozen")
	}
	if fromAcc.Balance < amount {
		return vaulterr.New(vaulterr.ErrInsufficientUserReserve, "transfer", "source balance too low")
	}

	fromAcc.Balance -= amount
	toAcc.Balance += amount

	if err := p.putAccount(from, fromAcc); err != nil {
		return err
	}
	if err := p.putAccount(to, toAcc); err != nil {
		return err
	}
	log.Debugf("transfer %d from %s to %s", amount, from, to)
	return nil
}

// MintTo increases to's balance and the mint's total supply by amount.
func (p *Program) MintTo(mint, to chainhash.Hash, amount uint64) error {
	toAcc, err := p.Account(to)
	if err != nil {
		return err
	}
	if toAcc.Mint != mint {
		return vaulterr.New(vaulterr.ErrWrongMint, "mint_to", "destination account mint mismatch")
	}
	if toAcc.Frozen {
		return vaulterr.New(vaulterr.ErrWrongMint, "mint_to", "destination account is frozen")
	}

	supply, err := p.Supply(mint)
	if err != nil {
		return err
	}

	toAcc.Balance += amount
	if err := p.putAccount(to, toAcc); err != nil {
		return err
	}
	return p.putSupply(mint, supply+amount)
}

// Burn decreases from's balance and the mint's total supply by amount.
func (p *Program) Burn(from, mint chainhash.Hash, amount uint64) error {
	fromAcc, err := p.Account(from)
	if err != nil {
		return err
	}
	if fromAcc.Mint != mint {
		return vaulterr.New(vaulterr.ErrWrongMint, "burn", "source account mint mismatch")
	}
	if fromAcc.Frozen {
		return vaulterr.New(vaulterr.ErrWrongMint, "burn", "source account is frozen")
	}
	if fromAcc.Balance < amount {
		return vaulterr.New(vaulterr.ErrInsufficientUserReserve, "burn", "source balance too low")
	}

	supply, err := p.Supply(mint)
	if err != nil {
		return err
	}

	fromAcc.Balance -= amount
	if err := p.putAccount(from, fromAcc); err != nil {
		return err
	}
	return p.putSupply(mint, supply-amount)
}

// FreezeAccount marks the account at addr frozen. Fails with ErrWrongMint
// if the account's mint does not match expectedMint (the §4.7 guard that
// target must be a receipt-token account).
func (p *Program) FreezeAccount(addr, expectedMint chainhash.Hash) error {
	return p.setFrozen(addr, expectedMint, true, "freeze_account")
}

// ThawAccount clears the frozen flag on the account at addr.
func (p *Program) ThawAccount(addr, expectedMint chainhash.Hash) error {
	return p.setFrozen(addr, expectedMint, false, "thaw_account")
}

func (p *Program) setFrozen(addr, expectedMint chainhash.Hash, frozen bool, op string) error {
	acc, err := p.Account(addr)
	if err != nil {
		return err
	}
	if acc.Mint != expectedMint {
		return vaulterr.New(vaulterr.ErrWrongMint, op, "target account's mint does not match expected token id")
	}
	acc.Frozen = frozen
	return p.putAccount(addr, acc)
}
