// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenprog

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/ledger"
	"github.com/reservevault/core/vaulterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashOf(s string) chainhash.Hash {
	var h chainhash.Hash
	copy(h[:], []byte(s))
	return h
}

func newTestProgram(t *testing.T) (*Program, chainhash.Hash) {
	t.Helper()
	p := New(ledger.NewMemStore())
	mint := hashOf("receipt-mint")
	return p, mint
}

func TestCreateAccountRejectsDuplicate(t *testing.T) {
	p, mint := newTestProgram(t)
	addr := hashOf("account-1")
	owner := hashOf("owner-1")

	require.NoError(t, p.CreateAccount(addr, mint, owner))

	err := p.CreateAccount(addr, mint, owner)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrAlreadyExists, "", "").Is(err))
}

func TestMintToIncreasesBalanceAndSupply(t *testing.T) {
	p, mint := newTestProgram(t)
	addr := hashOf("account-1")
	require.NoError(t, p.CreateAccount(addr, mint, hashOf("owner-1")))

	require.NoError(t, p.MintTo(mint, addr, 1000))

	acc, err := p.Account(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), acc.Balance)

	supply, err := p.Supply(mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), supply)
}

func TestMintToRejectsWrongMint(t *testing.T) {
	p, mint := newTestProgram(t)
	addr := hashOf("account-1")
	require.NoError(t, p.CreateAccount(addr, mint, hashOf("owner-1")))

	otherMint := hashOf("other-mint")
	err := p.MintTo(otherMint, addr, 100)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrWrongMint, "", "").Is(err))
}

func TestTransferMovesBalance(t *testing.T) {
	p, mint := newTestProgram(t)
	from := hashOf("from")
	to := hashOf("to")
	require.NoError(t, p.CreateAccount(from, mint, hashOf("owner-a")))
	require.NoError(t, p.CreateAccount(to, mint, hashOf("owner-b")))
	require.NoError(t, p.MintTo(mint, from, 500))

	require.NoError(t, p.Transfer(from, to, 200))

	fromAcc, err := p.Account(from)
	require.NoError(t, err)
	toAcc, err := p.Account(to)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), fromAcc.Balance)
	assert.Equal(t, uint64(200), toAcc.Balance)
}

func TestTransferInsufficientBalance(t *testing.T) {
	p, mint := newTestProgram(t)
	from := hashOf("from")
	to := hashOf("to")
	require.NoError(t, p.CreateAccount(from, mint, hashOf("owner-a")))
	require.NoError(t, p.CreateAccount(to, mint, hashOf("owner-b")))

	err := p.Transfer(from, to, 1)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrInsufficientUserReserve, "", "").Is(err))
}

func TestTransferRejectsMintMismatch(t *testing.T) {
	p, mintA := newTestProgram(t)
	mintB := hashOf("mint-b")
	from := hashOf("from")
	to := hashOf("to")
	require.NoError(t, p.CreateAccount(from, mintA, hashOf("owner-a")))
	require.NoError(t, p.CreateAccount(to, mintB, hashOf("owner-b")))
	require.NoError(t, p.MintTo(mintA, from, 100))

	err := p.Transfer(from, to, 10)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrWrongMint, "", "").Is(err))
}

func TestFreezeBlocksTransfer(t *testing.T) {
	p, mint := newTestProgram(t)
	from := hashOf("from")
	to := hashOf("to")
	require.NoError(t, p.CreateAccount(from, mint, hashOf("owner-a")))
	require.NoError(t, p.CreateAccount(to, mint, hashOf("owner-b")))
	require.NoError(t, p.MintTo(mint, from, 100))

	require.NoError(t, p.FreezeAccount(from, mint))

	err := p.Transfer(from, to, 10)
	require.Error(t, err)

	require.NoError(t, p.ThawAccount(from, mint))
	require.NoError(t, p.Transfer(from, to, 10))
}

func TestFreezeRejectsWrongMint(t *testing.T) {
	p, mint := newTestProgram(t)
	addr := hashOf("account-1")
	require.NoError(t, p.CreateAccount(addr, mint, hashOf("owner-1")))

	err := p.FreezeAccount(addr, hashOf("not-the-mint"))
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrWrongMint, "", "").Is(err))

	acc, err := p.Account(addr)
	require.NoError(t, err)
	assert.False(t, acc.Frozen)
}

func TestBurnDecreasesBalanceAndSupply(t *testing.T) {
	p, mint := newTestProgram(t)
	addr := hashOf("account-1")
	require.NoError(t, p.CreateAccount(addr, mint, hashOf("owner-1")))
	require.NoError(t, p.MintTo(mint, addr, 1000))

	require.NoError(t, p.Burn(addr, mint, 400))

	acc, err := p.Account(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), acc.Balance)

	supply, err := p.Supply(mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), supply)
}

func TestBurnInsufficientBalance(t *testing.T) {
	p, mint := newTestProgram(t)
	addr := hashOf("account-1")
	require.NoError(t, p.CreateAccount(addr, mint, hashOf("owner-1")))
	require.NoError(t, p.MintTo(mint, addr, 10))

	err := p.Burn(addr, mint, 100)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrInsufficientUserReserve, "", "").Is(err))
}

func TestAccountNotFound(t *testing.T) {
	p, _ := newTestProgram(t)
	_, err := p.Account(hashOf("nope"))
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrNotFound, "", "").Is(err))
}
