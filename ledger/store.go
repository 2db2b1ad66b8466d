// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger stands in for the host ledger's account model (§1's "host
// ledger runtime... out of scope") so that the vault engine has something
// concrete to read and mutate in tests and in the reference daemon. It is
// not a consensus mechanism: the single primitive the spec actually
// depends on is atomic create-if-absent (§5), and that is all this
// package is built to provide reliably.
//
// The map-of-records-plus-mutex shape follows the host project's
// settlement/claimable.ClaimableState and blockchain.ShellChainState: a
// small in-memory table guarded by a lock, addressed by a 32-byte key.
package ledger

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reservevault/core/vaulterr"
)

// Store is the narrow persistence interface every account-bearing
// component in this module depends on. Two implementations exist:
// MemStore (default, used by tests and by the reference daemon unless a
// data directory is configured) and the goleveldb-backed store in
// leveldb.go (used when the reference daemon is given a data directory).
type Store interface {
	// Get returns the stored value at addr, or ok=false if absent.
	Get(addr chainhash.Hash) (value []byte, ok bool, err error)

	// Put unconditionally writes value at addr, overwriting any existing
	// record.
	Put(addr chainhash.Hash, value []byte) error

	// CreateIfAbsent writes value at addr only if no record exists there
	// yet. It reports created=false, without error, if a record was
	// already present — this is the host ledger's account-creation
	// rejection that §5 relies on as the sole mutual-exclusion primitive.
	CreateIfAbsent(addr chainhash.Hash, value []byte) (created bool, err error)

	// Delete removes the record at addr. Deleting an absent record is not
	// an error.
	Delete(addr chainhash.Hash) error
}

// MemStore is an in-memory Store guarded by a single mutex, modeling the
// host ledger's account-lock discipline for local testing purposes only.
type MemStore struct {
	mu      sync.Mutex
	records map[chainhash.Hash][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[chainhash.Hash][]byte)}
}

// Get implements Store.
func (s *MemStore) Get(addr chainhash.Hash) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.records[addr]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Put implements Store.
func (s *MemStore) Put(addr chainhash.Hash, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.records[addr] = cp
	return nil
}

// CreateIfAbsent implements Store.
func (s *MemStore) CreateIfAbsent(addr chainhash.Hash, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[addr]; exists {
		return false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.records[addr] = cp
	return true, nil
}

// Delete implements Store.
func (s *MemStore) Delete(addr chainhash.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, addr)
	return nil
}

// MustCreate is a convenience wrapper that turns "already exists" into the
// supplied vaulterr code, for callers (RedemptionRequest/ClaimRecord
// creation) where that is always a hard failure rather than something the
// caller branches on.
func MustCreate(s Store, addr chainhash.Hash, value []byte, op string, existsCode vaulterr.ErrorCode, existsMsg string) error {
	created, err := s.CreateIfAbsent(addr, value)
	if err != nil {
		return err
	}
	if !created {
		return vaulterr.New(existsCode, op, existsMsg)
	}
	return nil
}
