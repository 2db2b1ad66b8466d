// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/reservevault/core/vaulterr"
)

// maxAdministrators is the hard bound on freeze_admins / rewards_admins
// (I5).
const maxAdministrators = 5

// Config is the singleton record holding token identities, admin sets,
// the pause flag and the supply cap (§3). Its address is deterministic:
// authority.ConfigAddress(programID).
type Config struct {
	ReserveTokenID        [32]byte
	ReceiptTokenID        [32]byte
	ReserveCustodyAccount [32]byte
	RedeemCustodyAccount  [32]byte
	FreezeAdmins          [][32]byte
	RewardsAdmins         [][32]byte
	Paused                bool
	ReceiptSupplyCap      uint64
	Version               uint64

	// EnforceEpochTotals is the opt-in hardening that tracks a running
	// claimed-sum per epoch and rejects claims that would push it past
	// epoch.total. Default false preserves the documented current
	// behavior of not enforcing a claim ceiling.
	EnforceEpochTotals bool
}

// configRecordSize is fixed regardless of how many admins are actually
// populated: five reserved slots per admin set, per §6's "implementers
// must reserve padding for future admin slots."
const configRecordSize = 32*4 + 1 + maxAdministrators*32 + 1 + maxAdministrators*32 + 1 + 8 + 8 + 1

func (c *Config) marshal() []byte {
	buf := make([]byte, configRecordSize)
	off := 0
	off += copy(buf[off:], c.ReserveTokenID[:])
	off += copy(buf[off:], c.ReceiptTokenID[:])
	off += copy(buf[off:], c.ReserveCustodyAccount[:])
	off += copy(buf[off:], c.RedeemCustodyAccount[:])

	buf[off] = byte(len(c.FreezeAdmins))
	off++
	for i := 0; i < maxAdministrators; i++ {
		if i < len(c.FreezeAdmins) {
			copy(buf[off:off+32], c.FreezeAdmins[i][:])
		}
		off += 32
	}

	buf[off] = byte(len(c.RewardsAdmins))
	off++
	for i := 0; i < maxAdministrators; i++ {
		if i < len(c.RewardsAdmins) {
			copy(buf[off:off+32], c.RewardsAdmins[i][:])
		}
		off += 32
	}

	if c.Paused {
		buf[off] = 1
	}
	off++
	binary.LittleEndian.PutUint64(buf[off:off+8], c.ReceiptSupplyCap)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:off+8], c.Version)
	off += 8
	if c.EnforceEpochTotals {
		buf[off] = 1
	}
	return buf
}

func unmarshalConfig(buf []byte) (*Config, error) {
	if len(buf) != configRecordSize {
		return nil, vaulterr.New(vaulterr.ErrConfigMismatch, "", "corrupt config record")
	}
	c := &Config{}
	off := 0
	copy(c.ReserveTokenID[:], buf[off:off+32])
	off += 32
	copy(c.ReceiptTokenID[:], buf[off:off+32])
	off += 32
	copy(c.ReserveCustodyAccount[:], buf[off:off+32])
	off += 32
	copy(c.RedeemCustodyAccount[:], buf[off:off+32])
	off += 32

	freezeCount := int(buf[off])
	off++
	for i := 0; i < maxAdministrators; i++ {
		if i < freezeCount {
			var key [32]byte
			copy(key[:], buf[off:off+32])
			c.FreezeAdmins = append(c.FreezeAdmins, key)
		}
		off += 32
	}

	rewardsCount := int(buf[off])
	off++
	for i := 0; i < maxAdministrators; i++ {
		if i < rewardsCount {
			var key [32]byte
			copy(key[:], buf[off:off+32])
			c.RewardsAdmins = append(c.RewardsAdmins, key)
		}
		off += 32
	}

	c.Paused = buf[off] == 1
	off++
	c.ReceiptSupplyCap = binary.LittleEndian.Uint64(buf[off : off+8])
	off += 8
	c.Version = binary.LittleEndian.Uint64(buf[off : off+8])
	off += 8
	c.EnforceEpochTotals = buf[off] == 1

	return c, nil
}

// validateAdminSet enforces I5: at most maxAdministrators entries, no
// duplicates.
func validateAdminSet(admins [][32]byte) error {
	if len(admins) > maxAdministrators {
		return vaulterr.New(vaulterr.ErrTooManyAdministrators, "", "admin list exceeds 5 entries")
	}
	seen := make(map[[32]byte]bool, len(admins))
	for _, a := range admins {
		if seen[a] {
			return vaulterr.New(vaulterr.ErrDuplicateAdministrator, "", "duplicate key in admin list")
		}
		seen[a] = true
	}
	return nil
}

func isZero32(b [32]byte) bool {
	var zero [32]byte
	return b == zero
}
