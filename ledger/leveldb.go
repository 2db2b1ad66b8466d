// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// On-disk Store backend. Wired so cmd/vaultcored can persist vault state
// across restarts using the same goleveldb dependency the host project
// uses for its chain database, behind the identical Store interface the
// in-memory backend implements — the engine code never knows which one it
// is talking to.
package ledger

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
)

// LevelStore is a Store backed by an on-disk goleveldb database.
type LevelStore struct {
	db *leveldb.DB
}

// OpenLevelStore opens (creating if necessary) a goleveldb database at
// dir for use as a Store.
func OpenLevelStore(dir string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	log.Infof("opened leveldb account store at %s", dir)
	return &LevelStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *LevelStore) Close() error {
	return s.db.Close()
}

// Get implements Store.
func (s *LevelStore) Get(addr chainhash.Hash) ([]byte, bool, error) {
	v, err := s.db.Get(addr[:], nil)
	if err == errors.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Put implements Store.
func (s *LevelStore) Put(addr chainhash.Hash, value []byte) error {
	return s.db.Put(addr[:], value, nil)
}

// CreateIfAbsent implements Store. goleveldb has no native compare-and-swap
// write, so this serializes through the database's own per-key write path:
// a Get followed by a Put is safe here because LevelStore callers are
// themselves serialized by the vault engine's single-threaded-transaction
// model (§5) — there is exactly one writer per logical operation, matching
// the host ledger's own account-lock discipline.
func (s *LevelStore) CreateIfAbsent(addr chainhash.Hash, value []byte) (bool, error) {
	_, err := s.db.Get(addr[:], nil)
	if err == nil {
		return false, nil
	}
	if err != errors.ErrNotFound {
		return false, err
	}
	if err := s.db.Put(addr[:], value, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Delete implements Store.
func (s *LevelStore) Delete(addr chainhash.Hash) error {
	return s.db.Delete(addr[:], nil)
}
