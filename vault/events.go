// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
)

// EventType tags an Event with the operation that produced it (§4.8). The
// set is closed, mirroring §9's "one operation enum" design note.
type EventType string

const (
	EventConfigInitialized EventType = "ConfigInitialized"
	EventConfigUpdated     EventType = "ConfigUpdated"
	EventDeposited         EventType = "Deposited"
	EventRedeemRequested   EventType = "RedeemRequested"
	EventRedeemCompleted   EventType = "RedeemCompleted"
	EventEpochCreated      EventType = "EpochCreated"
	EventClaimed           EventType = "Claimed"
	EventFrozen            EventType = "Frozen"
	EventThawed            EventType = "Thawed"
)

// Event is an append-only structured record consumed off-chain. No
// on-chain component reads events back; Engine only ever appends to its
// log and hands copies out through Events.
type Event struct {
	Type    EventType
	User    [32]byte
	Amount  uint64
	Epoch   uint64
	Target  chainhash.Hash
	Version uint64
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
	log.Debugf("event %s user=%x amount=%d epoch=%d", ev.Type, ev.User, ev.Amount, ev.Epoch)
	log.Tracef("event detail: %s", spew.Sdump(ev))
}

// Events returns every event emitted so far, oldest first. The returned
// slice is a copy; callers may not mutate Engine state through it.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}
