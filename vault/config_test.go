// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"testing"

	"github.com/reservevault/core/vaulterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeCreatesConfig(t *testing.T) {
	h := newHarness(t)
	freeze := [][32]byte{keyFrom("freeze-1")}
	rewards := [][32]byte{keyFrom("rewards-1"), keyFrom("rewards-2")}
	h.initialize(freeze, rewards)

	cfg, err := h.engine.Config()
	require.NoError(t, err)
	assert.Equal(t, h.reserve, cfg.ReserveTokenID)
	assert.Equal(t, h.receipt, cfg.ReceiptTokenID)
	assert.False(t, cfg.Paused)
	assert.Equal(t, uint64(0), cfg.ReceiptSupplyCap)
	assert.Equal(t, uint64(0), cfg.Version)
	assert.Equal(t, freeze, cfg.FreezeAdmins)
	assert.Equal(t, rewards, cfg.RewardsAdmins)
}

func TestInitializeRejectsWrongSigner(t *testing.T) {
	h := newHarness(t)
	err := h.engine.Initialize(keyFrom("not-upgrade-authority"), h.reserve, h.receipt, h.custody, h.redeem, nil, nil)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrUnauthorizedUpgrade, "", "").Is(err))
}

func TestInitializeRejectsDuplicateConfig(t *testing.T) {
	h := newHarness(t)
	h.initialize(nil, nil)

	err := h.engine.Initialize(h.upgrade, h.reserve, h.receipt, h.custody, h.redeem, nil, nil)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrAlreadyExists, "", "").Is(err))
}

func TestInitializeRejectsTooManyFreezeAdmins(t *testing.T) {
	h := newHarness(t)
	admins := make([][32]byte, 6)
	for i := range admins {
		admins[i] = keyFrom(string(rune('a' + i)))
	}

	err := h.engine.Initialize(h.upgrade, h.reserve, h.receipt, h.custody, h.redeem, admins, nil)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrTooManyAdministrators, "", "").Is(err))
}

func TestInitializeRejectsDuplicateAdmin(t *testing.T) {
	h := newHarness(t)
	dup := keyFrom("same-admin")

	err := h.engine.Initialize(h.upgrade, h.reserve, h.receipt, h.custody, h.redeem, [][32]byte{dup, dup}, nil)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrDuplicateAdministrator, "", "").Is(err))
}

func TestUpdateConfigIncrementsVersionAndLeavesAbsentFieldsAlone(t *testing.T) {
	h := newHarness(t)
	h.initialize(nil, nil)

	newCap := uint64(500)
	require.NoError(t, h.engine.UpdateConfig(h.upgrade, nil, nil, &newCap, nil))

	cfg, err := h.engine.Config()
	require.NoError(t, err)
	assert.Equal(t, uint64(500), cfg.ReceiptSupplyCap)
	assert.Equal(t, [32]byte(h.custody), cfg.ReserveCustodyAccount)
	assert.Equal(t, uint64(1), cfg.Version)
}

func TestUpdateConfigRejectsWrongSigner(t *testing.T) {
	h := newHarness(t)
	h.initialize(nil, nil)

	newCap := uint64(1)
	err := h.engine.UpdateConfig(keyFrom("someone-else"), nil, nil, &newCap, nil)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrUnauthorizedUpgrade, "", "").Is(err))
}

func TestUpdateFreezeAdministratorsReplacesSet(t *testing.T) {
	h := newHarness(t)
	h.initialize([][32]byte{keyFrom("old-admin")}, nil)

	newAdmins := [][32]byte{keyFrom("new-admin-1"), keyFrom("new-admin-2")}
	require.NoError(t, h.engine.UpdateFreezeAdministrators(h.upgrade, newAdmins))

	cfg, err := h.engine.Config()
	require.NoError(t, err)
	assert.Equal(t, newAdmins, cfg.FreezeAdmins)
	assert.Equal(t, uint64(1), cfg.Version)
}

func TestUpdateRewardsAdministratorsRejectsTooMany(t *testing.T) {
	h := newHarness(t)
	h.initialize(nil, nil)

	admins := make([][32]byte, 6)
	for i := range admins {
		admins[i] = keyFrom(string(rune('a' + i)))
	}
	err := h.engine.UpdateRewardsAdministrators(h.upgrade, admins)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrTooManyAdministrators, "", "").Is(err))
}
