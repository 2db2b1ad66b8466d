// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/authority"
	"github.com/reservevault/core/merkle"
	"github.com/reservevault/core/vaulterr"
)

// RewardsEpoch is one registered distribution window (§3).
type RewardsEpoch struct {
	Index      uint64
	MerkleRoot chainhash.Hash
	Total      uint64
	CreatedAt  uint64
}

// rewardsEpochSize matches §6's byte layout: index:u64_le ||
// merkle_root:[32]u8 || total:u64_le || created_at:i64_le.
const rewardsEpochSize = 8 + 32 + 8 + 8

func (r *RewardsEpoch) marshal() []byte {
	buf := make([]byte, rewardsEpochSize)
	binary.LittleEndian.PutUint64(buf[0:8], r.Index)
	copy(buf[8:40], r.MerkleRoot[:])
	binary.LittleEndian.PutUint64(buf[40:48], r.Total)
	binary.LittleEndian.PutUint64(buf[48:56], r.CreatedAt)
	return buf
}

func unmarshalRewardsEpoch(buf []byte) (*RewardsEpoch, error) {
	if len(buf) != rewardsEpochSize {
		return nil, vaulterr.New(vaulterr.ErrNotFound, "", "corrupt rewards epoch record")
	}
	r := &RewardsEpoch{
		Index:     binary.LittleEndian.Uint64(buf[0:8]),
		Total:     binary.LittleEndian.Uint64(buf[40:48]),
		CreatedAt: binary.LittleEndian.Uint64(buf[48:56]),
	}
	copy(r.MerkleRoot[:], buf[8:40])
	return r, nil
}

// ClaimRecord marks a single (epoch, user) claim as settled (§3). Its
// payload carries no information; existence alone is the claim evidence,
// per §6's byte layout note (`bump:u8`).
const claimRecordSize = 1

func marshalClaimRecord() []byte {
	return []byte{1}
}

// epochClaimedTotalSize is the width of the optional running claimed-sum
// counter used when Config.EnforceEpochTotals is true.
const epochClaimedTotalSize = 8

func (e *Engine) epochAddress(index uint64) chainhash.Hash {
	return authority.EpochAddress(e.programID, index)
}

func (e *Engine) claimAddress(epochAddr chainhash.Hash, user [32]byte) chainhash.Hash {
	return authority.ClaimAddress(e.programID, epochAddr, user)
}

// epochClaimedTotalAddress derives the address of the optional running
// claimed-sum counter for an epoch. It reuses the claim-address seed
// family with a fixed sentinel "user" so it lives in the same address
// space without colliding with any real user's claim record.
func (e *Engine) epochClaimedTotalAddress(epochAddr chainhash.Hash) chainhash.Hash {
	var sentinel [32]byte
	copy(sentinel[:], []byte("__epoch_claimed_total__"))
	return authority.ClaimAddress(e.programID, epochAddr, sentinel)
}

// CreateRewardsEpoch implements C6's create_rewards_epoch(index,
// merkle_root, total).
func (e *Engine) CreateRewardsEpoch(signer [32]byte, index uint64, merkleRoot chainhash.Hash, total uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if err := requireRewardsAdmin(signer, cfg); err != nil {
		return err
	}

	epoch := &RewardsEpoch{Index: index, MerkleRoot: merkleRoot, Total: total, CreatedAt: e.clock.Now()}
	created, err := e.store.CreateIfAbsent(e.epochAddress(index), epoch.marshal())
	if err != nil {
		return err
	}
	if !created {
		return vaulterr.New(vaulterr.ErrAlreadyExists, "create_rewards_epoch", "an epoch with this index already exists")
	}

	e.emit(Event{Type: EventEpochCreated, Epoch: index, Amount: total})
	log.Debugf("create_rewards_epoch: index=%d total=%d", index, total)
	return nil
}

// Epoch returns the RewardsEpoch at index, if any.
func (e *Engine) Epoch(index uint64) (*RewardsEpoch, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadEpoch(index)
}

func (e *Engine) loadEpoch(index uint64) (*RewardsEpoch, bool, error) {
	raw, ok, err := e.store.Get(e.epochAddress(index))
	if err != nil || !ok {
		return nil, ok, err
	}
	epoch, err := unmarshalRewardsEpoch(raw)
	if err != nil {
		return nil, false, err
	}
	return epoch, true, nil
}

// ClaimRewards implements C6's claim_rewards(amount, proof) against the
// epoch identified by epochIndex.
func (e *Engine) ClaimRewards(user [32]byte, userReceiptAcct chainhash.Hash, epochIndex uint64, amount uint64, proof []chainhash.Hash) error {
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
		return vaulterr.New(vaulterr.ErrInvalidAmount, "claim_rewards", "amount must be greater than zero")
	}

	epoch, ok, err := e.loadEpoch(epochIndex)
	if err != nil {
		return err
	}
	if !ok {
		return vaulterr.New(vaulterr.ErrNotFound, "claim_rewards", "no such rewards epoch")
	}

	leaf := merkle.Leaf(user, amount, epochIndex)
	if !merkle.VerifyProof(leaf, proof, epoch.MerkleRoot) {
		return vaulterr.New(vaulterr.ErrInvalidProof, "claim_rewards", "merkle proof did not verify against the epoch root")
	}

	epochAddr := e.epochAddress(epochIndex)
	claimAddr := e.claimAddress(epochAddr, user)
	created, err := e.store.CreateIfAbsent(claimAddr, marshalClaimRecord())
	if err != nil {
		return err
	}
	if !created {
		return vaulterr.New(vaulterr.ErrAlreadyClaimed, "claim_rewards", "reward already claimed for this epoch")
	}

	if cfg.EnforceEpochTotals {
		if err := e.reserveEpochBudget(epochAddr, epoch.Total, amount); err != nil {
			return err
		}
	}

	if cfg.ReceiptSupplyCap > 0 {
		supply, err := e.token.Supply(chainhash.Hash(cfg.ReceiptTokenID))
		if err != nil {
			return err
		}
		if supply+amount > cfg.ReceiptSupplyCap {
			return vaulterr.New(vaulterr.ErrCapExceeded, "claim_rewards", "claim would exceed receipt supply cap")
		}
	}

	if err := e.token.MintTo(chainhash.Hash(cfg.ReceiptTokenID), userReceiptAcct, amount); err != nil {
		return err
	}

	e.emit(Event{Type: EventClaimed, User: user, Epoch: epochIndex, Amount: amount})
	log.Debugf("claim_rewards: user=%x epoch=%d amount=%d", user, epochIndex, amount)
	return nil
}

// reserveEpochBudget enforces the optional claimed_so_far + amount ≤
// epoch.total hardening (§15's first supplemented feature). It is only
// ever consulted when Config.EnforceEpochTotals is true.
func (e *Engine) reserveEpochBudget(epochAddr chainhash.Hash, total, amount uint64) error {
	counterAddr := e.epochClaimedTotalAddress(epochAddr)
	raw, ok, err := e.store.Get(counterAddr)
	if err != nil {
		return err
	}
	var claimedSoFar uint64
	if ok {
		claimedSoFar = binary.LittleEndian.Uint64(raw)
	}
	if claimedSoFar+amount > total {
		return vaulterr.New(vaulterr.ErrEpochTotalExceeded, "claim_rewards", "claim would exceed the epoch's recorded total")
	}

	buf := make([]byte, epochClaimedTotalSize)
	binary.LittleEndian.PutUint64(buf, claimedSoFar+amount)
	return e.store.Put(counterAddr, buf)
}

// HasClaimed reports whether (epochIndex, user) already has a settled
// ClaimRecord.
func (e *Engine) HasClaimed(epochIndex uint64, user [32]byte) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	epochAddr := e.epochAddress(epochIndex)
	_, ok, err := e.store.Get(e.claimAddress(epochAddr, user))
	return ok, err
}
