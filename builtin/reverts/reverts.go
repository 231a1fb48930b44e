// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// ErrRevert is a named precondition failure. The whole operation that
// produced it has been rolled back.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

var (
	ErrUnauthorized         = New("unauthorized")
	ErrPoolNotFound         = New("pool not found")
	ErrContributionNotFound = New("contribution not found")
	ErrPoolClosedOrExpired  = New("pool closed or expired")
	ErrAlreadyClaimed       = New("already claimed")
	ErrInvalidAttestation   = New("invalid attestation")
	ErrInsufficientFunds    = New("insufficient funds")
	ErrTransferFailed       = New("transfer failed")
	ErrInvalidParams        = New("invalid params")
)

// AlreadyClaimedError reports a claim against a contribution that already left
// the pending state.
type AlreadyClaimedError struct {
	PoolID         uint64
	ContributionID uint64
}

func AlreadyClaimed(poolID, contributionID uint64) *AlreadyClaimedError {
	return &AlreadyClaimedError{poolID, contributionID}
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("already claimed: pool %d contribution %d", e.PoolID, e.ContributionID)
}

// Is makes errors.Is(err, ErrAlreadyClaimed) hold.
func (e *AlreadyClaimedError) Is(target error) bool {
	return target == ErrAlreadyClaimed
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var (
		ve *ErrRevert
		ae *AlreadyClaimedError
	)
	return errors.As(e, &ve) || errors.As(e, &ae)
}
