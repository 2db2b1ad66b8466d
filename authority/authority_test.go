// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
)

func TestDeriveIsDeterministic(t *testing.T) {
	var program chainhash.Hash
	copy(program[:], []byte("program-one"))

	a1 := Derive(program, LabelVault)
	a2 := Derive(program, LabelVault)
	assert.Equal(t, a1.Address, a2.Address)
}

func TestDeriveAllDistinctAddresses(t *testing.T) {
	var program chainhash.Hash
	copy(program[:], []byte("program-one"))

	vault, mint, freeze, redeemVault := DeriveAll(program)
	addrs := []chainhash.Hash{vault.Address, mint.Address, freeze.Address, redeemVault.Address}
	for i := range addrs {
		for j := range addrs {
			if i == j {
				continue
			}
			assert.NotEqual(t, addrs[i], addrs[j], "authority addresses must be pairwise distinct")
		}
	}
}

func TestDifferentProgramsDeriveDifferentAddresses(t *testing.T) {
	var p1, p2 chainhash.Hash
	copy(p1[:], []byte("program-one"))
	copy(p2[:], []byte("program-two"))

	a1 := Derive(p1, LabelVault)
	a2 := Derive(p2, LabelVault)
	assert.NotEqual(t, a1.Address, a2.Address)
}

func TestStringIsStable(t *testing.T) {
	var program chainhash.Hash
	copy(program[:], []byte("program-one"))

	a := Derive(program, LabelMint)
	assert.NotEmpty(t, a.String())
	assert.Equal(t, a.String(), a.String())
}

func TestRecordAddressesAreSeedSensitive(t *testing.T) {
	var program chainhash.Hash
	copy(program[:], []byte("program-one"))

	var userA, userB [32]byte
	copy(userA[:], []byte("user-a"))
	copy(userB[:], []byte("user-b"))

	rrA := RedemptionRequestAddress(program, userA)
	rrB := RedemptionRequestAddress(program, userB)
	assert.NotEqual(t, rrA, rrB)

	epoch0 := EpochAddress(program, 0)
	epoch1 := EpochAddress(program, 1)
	assert.NotEqual(t, epoch0, epoch1)

	claimA := ClaimAddress(program, epoch0, userA)
	claimB := ClaimAddress(program, epoch0, userB)
	assert.NotEqual(t, claimA, claimB)
}
