// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle implements the sorted-pair Merkle proof verifier used by
// the rewards engine to validate reward claims against an epoch root.
//
// It follows the structure of the host project's transaction merkle tree
// helpers (HashMerkleBranches in blockchain/merkle.go, and the inline
// verifier in liquidity.LiquidityManager.verifyMerkleProof): small,
// allocation-light helper functions rather than a tree object, since only
// verification (never tree construction) happens on-chain.
package merkle

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MaxProofLength bounds the number of siblings a proof may carry. This
// rejects pathological inputs before any hashing is attempted.
const MaxProofLength = 30

// LeafSize is the length in bytes of a claim leaf's preimage:
// user (32) || amount (8, little-endian) || epoch index (8, little-endian).
const LeafSize = 32 + 8 + 8

// Leaf computes the claim leaf digest for a given user, amount and epoch
// index, per the spec's fixed 48-byte preimage layout.
func Leaf(user [32]byte, amount, epochIndex uint64) chainhash.Hash {
	var preimage [LeafSize]byte
	copy(preimage[0:32], user[:])
	binary.LittleEndian.PutUint64(preimage[32:40], amount)
	binary.LittleEndian.PutUint64(preimage[40:48], epochIndex)
	return chainhash.Hash(sha256.Sum256(preimage[:]))
}

// HashPair computes the sorted-pair inner-node hash of two sibling digests.
// Sorting the pair before hashing removes any need to carry left/right
// position bits in the proof.
func HashPair(a, b chainhash.Hash) chainhash.Hash {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return hashConcat(a, b)
	}
	return hashConcat(b, a)
}

func hashConcat(a, b chainhash.Hash) chainhash.Hash {
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	return chainhash.Hash(sha256.Sum256(buf[:]))
}

// VerifyProof walks a sorted-pair Merkle proof from leaf to root and reports
// whether it matches the supplied root. A proof longer than MaxProofLength
// is rejected without being walked.
func VerifyProof(leaf chainhash.Hash, proof []chainhash.Hash, root chainhash.Hash) bool {
	if len(proof) > MaxProofLength {
		return false
	}

	current := leaf
	for _, sibling := range proof {
		current = HashPair(current, sibling)
	}
	return current == root
}
