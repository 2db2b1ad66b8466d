// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import "github.com/reservevault/core/vaulterr"

// requireUpgradeAuthority enforces that signer is the upgrade authority
// recorded by the host loader metadata for this program (§4.3). The core
// itself does not read loader metadata; it is supplied at Engine
// construction time, matching spec.md §1's framing of the host ledger
// runtime as an external collaborator.
func requireUpgradeAuthority(signer, upgradeAuthority [32]byte) error {
	if signer != upgradeAuthority {
		return vaulterr.New(vaulterr.ErrUnauthorizedUpgrade, "", "signer is not the upgrade authority")
	}
	return nil
}

// requireFreezeAdmin enforces signer membership in config.FreezeAdmins.
func requireFreezeAdmin(signer [32]byte, config *Config) error {
	for _, a := range config.FreezeAdmins {
		if a == signer {
			return nil
		}
	}
	return vaulterr.New(vaulterr.ErrUnauthorizedFreezeAdmin, "", "signer is not a freeze administrator")
}

// requireRewardsAdmin enforces signer membership in config.RewardsAdmins.
func requireRewardsAdmin(signer [32]byte, config *Config) error {
	for _, a := range config.RewardsAdmins {
		if a == signer {
			return nil
		}
	}
	return vaulterr.New(vaulterr.ErrUnauthorizedRewardsAdmin, "", "signer is not a rewards administrator")
}

// requireNotPaused enforces I6: deposit/request-redeem/complete-redeem/
// claim must all be rejected while the vault is paused.
func requireNotPaused(config *Config) error {
	if config.Paused {
		return vaulterr.New(vaulterr.ErrPaused, "", "vault is paused")
	}
	return nil
}
