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

func TestFreezeThawTokenAccount(t *testing.T) {
	h := newHarness(t)
	freezeAdmin := keyFrom("freeze-admin")
	h.initialize([][32]byte{freezeAdmin}, nil)

	user := keyFrom("user-1")
	_, userReceipt := h.userAccounts(user, 0)

	require.NoError(t, h.engine.FreezeTokenAccount(freezeAdmin, userReceipt))
	acc, err := h.token.Account(userReceipt)
	require.NoError(t, err)
	assert.True(t, acc.Frozen)

	require.NoError(t, h.engine.ThawTokenAccount(freezeAdmin, userReceipt))
	acc, err = h.token.Account(userReceipt)
	require.NoError(t, err)
	assert.False(t, acc.Frozen)
}

func TestFreezeRejectsNonAdmin(t *testing.T) {
	h := newHarness(t)
	h.initialize(nil, nil)

	user := keyFrom("user-1")
	_, userReceipt := h.userAccounts(user, 0)

	err := h.engine.FreezeTokenAccount(keyFrom("random"), userReceipt)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrUnauthorizedFreezeAdmin, "", "").Is(err))
}

// TestPauseBlocksOperationsButNotFreezeOrConfig implements scenario S5.
func TestPauseBlocksOperationsButNotFreezeOrConfig(t *testing.T) {
	h := newHarness(t)
	freezeAdmin := keyFrom("freeze-admin")
	h.initialize([][32]byte{freezeAdmin}, nil)

	user := keyFrom("user-1")
	userReserve, userReceipt := h.userAccounts(user, 1_000)

	paused := true
	require.NoError(t, h.engine.UpdateConfig(h.upgrade, nil, nil, nil, &paused))

	err := h.engine.Deposit(user, userReserve, userReceipt, 100)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrPaused, "", "").Is(err))

	err = h.engine.ClaimRewards(user, userReceipt, 0, 100, nil)
	require.Error(t, err)
	assert.True(t, vaulterr.New(vaulterr.ErrPaused, "", "").Is(err))

	// Freeze still works while paused.
	require.NoError(t, h.engine.FreezeTokenAccount(freezeAdmin, userReceipt))

	unpaused := false
	require.NoError(t, h.engine.UpdateConfig(h.upgrade, nil, nil, nil, &unpaused))
	require.NoError(t, h.engine.ThawTokenAccount(freezeAdmin, userReceipt))
	require.NoError(t, h.engine.Deposit(user, userReserve, userReceipt, 100))
}
