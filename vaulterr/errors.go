// Copyright (c) 2025 Reserve Vault developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vaulterr defines the error taxonomy shared by every component of
// the vault core. It follows the ruleError(code, description) convention
// used throughout the host project's blockchain package: a closed
// ErrorCode enum plus a single concrete error type, rather than one
// exported sentinel per failure.
package vaulterr

import "fmt"

// ErrorCode identifies a specific kind of vault failure. The set is closed;
// clients may depend on these identities remaining stable.
type ErrorCode int

const (
	// ErrPaused indicates the operation was blocked by the global pause
	// switch.
	ErrPaused ErrorCode = iota

	// ErrUnauthorizedUpgrade indicates the signer is not the upgrade
	// authority.
	ErrUnauthorizedUpgrade

	// ErrUnauthorizedFreezeAdmin indicates the signer is not a member of
	// the freeze admin set.
	ErrUnauthorizedFreezeAdmin

	// ErrUnauthorizedRewardsAdmin indicates the signer is not a member of
	// the rewards admin set.
	ErrUnauthorizedRewardsAdmin

	// ErrTooManyAdministrators indicates an admin list exceeds the 5-key
	// bound.
	ErrTooManyAdministrators

	// ErrDuplicateAdministrator indicates a repeated key in an admin list.
	ErrDuplicateAdministrator

	// ErrInvalidAmount indicates a zero amount was supplied where a
	// positive amount is required.
	ErrInvalidAmount

	// ErrCapExceeded indicates an issuance would push receipt supply past
	// the configured cap.
	ErrCapExceeded

	// ErrInvalidProof indicates Merkle verification failed, or the proof
	// exceeded the height bound.
	ErrInvalidProof

	// ErrAlreadyClaimed indicates a ClaimRecord already exists for this
	// (epoch, user).
	ErrAlreadyClaimed

	// ErrPendingRedeemExists indicates a RedemptionRequest already exists
	// for this user.
	ErrPendingRedeemExists

	// ErrNoPendingRedeem indicates completion was attempted without an
	// existing ticket.
	ErrNoPendingRedeem

	// ErrRedeemUnfunded indicates the redeem custody account lacks
	// sufficient reserve to complete a ticket.
	ErrRedeemUnfunded

	// ErrWrongMint indicates a target account's mint does not match the
	// expected token id. The token program also reports a transfer, mint
	// or burn touching a frozen account with this code.
	ErrWrongMint

	// ErrConfigMismatch indicates a supplied Config account does not
	// match the derived Config address.
	ErrConfigMismatch

	// ErrInsufficientUserReserve indicates a source token account lacks
	// the balance needed for a transfer or burn: the user's reserve-token
	// account on deposit, or the user's receipt-token account on
	// request_redeem.
	ErrInsufficientUserReserve

	// ErrAlreadyExists indicates an attempt to create a singleton or
	// create-if-absent record that is already present.
	ErrAlreadyExists

	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound

	// ErrEpochTotalExceeded indicates the optional per-epoch claimed-sum
	// hardening rejected a claim because it would exceed epoch.total.
	ErrEpochTotalExceeded
)

var codeStrings = map[ErrorCode]string{
	ErrPaused:                   "paused",
	ErrUnauthorizedUpgrade:      "unauthorized: not the upgrade authority",
	ErrUnauthorizedFreezeAdmin:  "unauthorized: not a freeze administrator",
	ErrUnauthorizedRewardsAdmin: "unauthorized: not a rewards administrator",
	ErrTooManyAdministrators:    "too many administrators",
	ErrDuplicateAdministrator:   "duplicate administrator key",
	ErrInvalidAmount:            "invalid amount",
	ErrCapExceeded:              "supply cap exceeded",
	ErrInvalidProof:             "invalid merkle proof",
	ErrAlreadyClaimed:           "reward already claimed",
	ErrPendingRedeemExists:      "pending redemption already exists",
	ErrNoPendingRedeem:          "no pending redemption",
	ErrRedeemUnfunded:           "redeem custody underfunded",
	ErrWrongMint:                "account mint mismatch",
	ErrConfigMismatch:           "config account mismatch",
	ErrInsufficientUserReserve:  "insufficient user reserve balance",
	ErrAlreadyExists:            "record already exists",
	ErrNotFound:                 "record not found",
	ErrEpochTotalExceeded:       "epoch total exceeded",
}

// String returns the human-readable name of the error code.
func (c ErrorCode) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown error code %d", int(c))
}

// VaultError is the single concrete error type returned by every component
// in this module. Op records which §6 operation raised it, useful for
// structured logging at the RPC boundary.
type VaultError struct {
	Code        ErrorCode
	Op          string
	Description string
}

// Error implements the error interface.
func (e *VaultError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Description)
}

// Is allows errors.Is(err, vaulterr.New(code, "", "")) style comparisons by
// error code alone, so callers can match on the *kind* of failure without
// caring about Op or Description.
func (e *VaultError) Is(target error) bool {
	t, ok := target.(*VaultError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New constructs a VaultError. op may be empty when the error is raised
// outside the context of a named §6 operation (e.g. from a guard helper).
func New(code ErrorCode, op, description string) *VaultError {
	return &VaultError{Code: code, Op: op, Description: description}
}

// Sentinel returns a VaultError usable as an errors.Is comparison target,
// e.g. errors.Is(err, vaulterr.Sentinel(vaulterr.ErrPaused)).
func Sentinel(code ErrorCode) *VaultError {
	return &VaultError{Code: code}
}
