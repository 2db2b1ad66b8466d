// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority implements deterministic derivation of the vault's
// signing authorities (§4.2 of the vault's component design) from fixed
// labels, plus a human-readable rendering of the resulting addresses for
// logs and operator tooling.
//
// The actual derivation mechanism (program-derived addresses, the
// associated "witness" used to sign on the authority's behalf) is a host
// ledger runtime capability and out of scope for this module; what lives
// here is the deterministic address computation any host runtime must
// agree with, plus a bech32 rendering adapted from the host project's
// address package (addresses/shell_addresses.go) so operators can read a
// derived authority out of logs the same way they read a wallet address.
package authority

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Label identifies one of the four fixed signing authorities the vault
// derives. Values are the exact ASCII seeds from §6's address-seed table.
type Label string

const (
	// LabelVault signs reserve-custody transfers out of the vault.
	LabelVault Label = "vault_authority"

	// LabelMint signs receipt-token mint operations.
	LabelMint Label = "mint_authority"

	// LabelFreeze signs freeze/thaw operations on receipt-token accounts.
	LabelFreeze Label = "freeze_authority"

	// LabelRedeemVault signs transfers out of the redeem custody account.
	LabelRedeemVault Label = "redeem_vault_authority"

	// hrp is the bech32 human-readable part used when rendering derived
	// authority addresses.
	hrp = "vlt"
)

// Authority is a derived signing identity: a deterministic address plus
// the witness a host runtime must present when signing on its behalf.
// Witness is opaque to this package — it is produced and consumed by the
// host ledger runtime, never inspected here.
type Authority struct {
	Label   Label
	Address chainhash.Hash
	Witness []byte
}

// Derive computes the deterministic address for a signing authority given
// the owning program's identity and the authority's fixed label. The
// witness returned is a stand-in for whatever derivation proof a concrete
// host runtime would produce (e.g. a PDA bump seed); this module only
// needs it to be stable and opaque.
func Derive(programID chainhash.Hash, label Label) Authority {
	h := sha256.New()
	h.Write(programID[:])
	h.Write([]byte(label))
	sum := h.Sum(nil)

	var addr chainhash.Hash
	copy(addr[:], sum)

	return Authority{
		Label:   label,
		Address: addr,
		Witness: append([]byte(nil), sum[:1]...),
	}
}

// DeriveAll derives the full set of authorities a vault Config needs, in
// the fixed order vault, mint, freeze, redeem-vault.
func DeriveAll(programID chainhash.Hash) (vault, mint, freeze, redeemVault Authority) {
	return Derive(programID, LabelVault),
		Derive(programID, LabelMint),
		Derive(programID, LabelFreeze),
		Derive(programID, LabelRedeemVault)
}

// String renders the authority's address as a bech32 string using the
// package's fixed human-readable part, for logs and CLI display only. It
// is never used as a wire format.
func (a Authority) String() string {
	conv, err := bech32.ConvertBits(a.Address[:], 8, 5, true)
	if err != nil {
		return fmt.Sprintf("%s:<unencodable:%x>", a.Label, a.Address)
	}
	encoded, err := bech32.Encode(hrp, conv)
	if err != nil {
		return fmt.Sprintf("%s:<unencodable:%x>", a.Label, a.Address)
	}
	return encoded
}

// ConfigAddress derives the deterministic address of the singleton Config
// record, seeded by the literal ASCII string "config" per §6.
func ConfigAddress(programID chainhash.Hash) chainhash.Hash {
	h := sha256.New()
	h.Write(programID[:])
	h.Write([]byte("config"))
	var addr chainhash.Hash
	copy(addr[:], h.Sum(nil))
	return addr
}

// EpochAddress derives the deterministic address of a RewardsEpoch record
// seeded by ("epoch", index_le_8) per §6.
func EpochAddress(programID chainhash.Hash, index uint64) chainhash.Hash {
	h := sha256.New()
	h.Write(programID[:])
	h.Write([]byte("epoch"))
	var idxBytes [8]byte
	putUint64LE(idxBytes[:], index)
	h.Write(idxBytes[:])
	var addr chainhash.Hash
	copy(addr[:], h.Sum(nil))
	return addr
}

// ClaimAddress derives the deterministic address of a ClaimRecord seeded by
// ("claim", epoch_address, user_key) per §6.
func ClaimAddress(programID, epochAddress chainhash.Hash, user [32]byte) chainhash.Hash {
	h := sha256.New()
	h.Write(programID[:])
	h.Write([]byte("claim"))
	h.Write(epochAddress[:])
	h.Write(user[:])
	var addr chainhash.Hash
	copy(addr[:], h.Sum(nil))
	return addr
}

// RedemptionRequestAddress derives the deterministic address of a
// RedemptionRequest seeded by ("redemption_request", user_key) per §6.
func RedemptionRequestAddress(programID chainhash.Hash, user [32]byte) chainhash.Hash {
	h := sha256.New()
	h.Write(programID[:])
	h.Write([]byte("redemption_request"))
	h.Write(user[:])
	var addr chainhash.Hash
	copy(addr[:], h.Sum(nil))
	return addr
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
