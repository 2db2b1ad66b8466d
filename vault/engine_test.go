// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/ledger"
	"github.com/reservevault/core/tokenprog"
	"github.com/stretchr/testify/require"
)

// harness bundles an Engine together with the token accounts a test
// scenario typically needs, so scenario tests (S1-S6) read close to the
// spec's own narration.
type harness struct {
	t        *testing.T
	engine   *Engine
	token    *tokenprog.Program
	clock    *FixedClock
	program  chainhash.Hash
	upgrade  [32]byte
	reserve  [32]byte
	receipt  [32]byte
	custody  chainhash.Hash
	redeem   chainhash.Hash
}

func hashFrom(s string) chainhash.Hash {
	var h chainhash.Hash
	copy(h[:], []byte(s))
	return h
}

func keyFrom(s string) [32]byte {
	var k [32]byte
	copy(k[:], []byte(s))
	return k
}

// genKey derives a fresh account identity from a random secp256k1 keypair,
// the way the teacher's own test suites mint participant identities
// (btcec.NewPrivateKey/.PubKey), dropping the compressed form's leading
// parity byte to fit the 32-byte key model used throughout this module.
func genKey(t *testing.T) [32]byte {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	var k [32]byte
	copy(k[:], priv.PubKey().SerializeCompressed()[1:])
	return k
}

// newHarness builds an Engine with a fresh in-memory store and token
// program, but does not call Initialize -- most tests want to control
// that step themselves (admin sets vary by scenario).
func newHarness(t *testing.T) *harness {
	t.Helper()
	store := ledger.NewMemStore()
	token := tokenprog.New(store)
	clock := NewFixedClock(1_700_000_000)
	program := hashFrom("reserve-vault-program")
	upgrade := genKey(t)

	engine := NewEngine(program, store, token, clock, upgrade)

	return &harness{
		t:       t,
		engine:  engine,
		token:   token,
		clock:   clock,
		program: program,
		upgrade: upgrade,
		reserve: keyFrom("reserve-token"),
		receipt: keyFrom("receipt-token"),
		custody: hashFrom("reserve-custody"),
		redeem:  hashFrom("redeem-custody"),
	}
}

// initialize runs C4's initialize with the harness's default token
// identities and custody accounts, and the given admin sets.
func (h *harness) initialize(freezeAdmins, rewardsAdmins [][32]byte) {
	h.t.Helper()
	require.NoError(h.t, h.engine.Initialize(h.upgrade, h.reserve, h.receipt, h.custody, h.redeem, freezeAdmins, rewardsAdmins))
	require.NoError(h.t, h.token.CreateAccount(h.custody, chainhash.Hash(h.reserve), keyFrom("vault-authority")))
	require.NoError(h.t, h.token.CreateAccount(h.redeem, chainhash.Hash(h.reserve), keyFrom("redeem-vault-authority")))
}

// userAccounts creates a reserve-token account and a receipt-token
// account for user, funded with reserveBalance reserve tokens, and
// returns their addresses.
func (h *harness) userAccounts(user [32]byte, reserveBalance uint64) (reserveAcct, receiptAcct chainhash.Hash) {
	h.t.Helper()
	reserveAcct = hashFrom("reserve-acct-" + string(user[:]))
	receiptAcct = hashFrom("receipt-acct-" + string(user[:]))

	require.NoError(h.t, h.token.CreateAccount(reserveAcct, chainhash.Hash(h.reserve), user))
	require.NoError(h.t, h.token.CreateAccount(receiptAcct, chainhash.Hash(h.receipt), user))
	if reserveBalance > 0 {
		require.NoError(h.t, h.token.MintTo(chainhash.Hash(h.reserve), reserveAcct, reserveBalance))
	}
	return reserveAcct, receiptAcct
}

func (h *harness) balance(acct chainhash.Hash) uint64 {
	h.t.Helper()
	acc, err := h.token.Account(acct)
	require.NoError(h.t, err)
	return acc.Balance
}

func (h *harness) supply(mint [32]byte) uint64 {
	h.t.Helper()
	supply, err := h.token.Supply(chainhash.Hash(mint))
	require.NoError(h.t, err)
	return supply
}
