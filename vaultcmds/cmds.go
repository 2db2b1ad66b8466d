// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vaultcmds defines the JSON-RPC command and result structs for
// the reference daemon's command surface (C11): one struct per §6
// operation, exported fields, `json:"..."` tags, and a trailing comment on
// fields whose encoding needs stating — the same shape the teacher repo uses for its own JSON-RPC command
// definitions.
package vaultcmds

// InitializeCmd defines the initialize JSON-RPC command.
type InitializeCmd struct {
	ReserveTokenID        string   `json:"reserve_token_id"`        // hex-encoded 32-byte reserve token id
	ReceiptTokenID        string   `json:"receipt_token_id"`        // hex-encoded 32-byte receipt token id
	ReserveCustodyAccount string   `json:"reserve_custody_account"` // hex-encoded 32-byte account address
	RedeemCustodyAccount  string   `json:"redeem_custody_account"`  // hex-encoded 32-byte account address
	FreezeAdmins          []string `json:"freeze_admins,omitempty"` // hex-encoded admin keys, at most 5
	RewardsAdmins         []string `json:"rewards_admins,omitempty"`
}

// UpdateConfigCmd defines the updateconfig JSON-RPC command. Absent
// (empty string / nil) fields leave the current Config value untouched.
type UpdateConfigCmd struct {
	ReserveCustodyAccount string  `json:"reserve_custody_account,omitempty"`
	RedeemCustodyAccount  string  `json:"redeem_custody_account,omitempty"`
	ReceiptSupplyCap      *uint64 `json:"receipt_supply_cap,omitempty"`
	Paused                *bool   `json:"paused,omitempty"`
}

// UpdateFreezeAdministratorsCmd defines the updatefreezeadministrators
// JSON-RPC command.
type UpdateFreezeAdministratorsCmd struct {
	Admins []string `json:"admins"` // hex-encoded admin keys, at most 5, duplicate-free
}

// UpdateRewardsAdministratorsCmd defines the updaterewardsadministrators
// JSON-RPC command.
type UpdateRewardsAdministratorsCmd struct {
	Admins []string `json:"admins"`
}

// DepositCmd defines the deposit JSON-RPC command.
type DepositCmd struct {
	User               string `json:"user"`                 // hex-encoded 32-byte depositor key
	UserReserveAccount string `json:"user_reserve_account"`
	UserReceiptAccount string `json:"user_receipt_account"`
	Amount             uint64 `json:"amount"`
}

// RequestRedeemCmd defines the requestredeem JSON-RPC command.
type RequestRedeemCmd struct {
	User               string `json:"user"`
	UserReceiptAccount string `json:"user_receipt_account"`
	Amount             uint64 `json:"amount"`
}

// CompleteRedeemCmd defines the completeredeem JSON-RPC command, called by
// any rewards administrator.
type CompleteRedeemCmd struct {
	User               string `json:"user"`
	UserReserveAccount string `json:"user_reserve_account"`
}

// CreateRewardsEpochCmd defines the createrewardsepoch JSON-RPC command.
type CreateRewardsEpochCmd struct {
	Index      uint64 `json:"index"`
	MerkleRoot string `json:"merkle_root"` // hex-encoded 32-byte root
	Total      uint64 `json:"total"`
}

// ClaimRewardsCmd defines the claimrewards JSON-RPC command.
type ClaimRewardsCmd struct {
	User               string   `json:"user"`
	UserReceiptAccount string   `json:"user_receipt_account"`
	EpochIndex         uint64   `json:"epoch_index"`
	Amount             uint64   `json:"amount"`
	Proof              []string `json:"proof,omitempty"` // hex-encoded sibling hashes, leaf-to-root order
}

// FreezeTokenAccountCmd defines the freezetokenaccount JSON-RPC command.
type FreezeTokenAccountCmd struct {
	Target string `json:"target"` // hex-encoded 32-byte account address
}

// ThawTokenAccountCmd defines the thawtokenaccount JSON-RPC command.
type ThawTokenAccountCmd struct {
	Target string `json:"target"`
}

// GetConfigCmd defines the getconfig JSON-RPC command; it takes no
// parameters.
type GetConfigCmd struct{}

// ConfigResult is the result of getconfig.
type ConfigResult struct {
	ReserveTokenID        string   `json:"reserve_token_id"`
	ReceiptTokenID        string   `json:"receipt_token_id"`
	ReserveCustodyAccount string   `json:"reserve_custody_account"`
	RedeemCustodyAccount  string   `json:"redeem_custody_account"`
	FreezeAdmins          []string `json:"freeze_admins"`
	RewardsAdmins         []string `json:"rewards_admins"`
	Paused                bool     `json:"paused"`
	ReceiptSupplyCap      uint64   `json:"receipt_supply_cap"`
	Version               uint64   `json:"version"`
	EnforceEpochTotals    bool     `json:"enforce_epoch_totals"`
}

// EventsResult is the result of getevents.
type EventsResult struct {
	Events []EventEntry `json:"events"`
}

// EventEntry is one emitted Event rendered for JSON transport.
type EventEntry struct {
	Type   string `json:"type"`
	User   string `json:"user,omitempty"`
	Amount uint64 `json:"amount,omitempty"`
	Epoch  uint64 `json:"epoch,omitempty"`
	Target string `json:"target,omitempty"`
}

// OKResult is returned by commands whose only result is success.
type OKResult struct {
	OK bool `json:"ok"`
}
