package staking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount                 = errors.New("invalid amount provided")
	ErrNoStakeFound                  = errors.New("no stake found for user")
	ErrNoWithdrawalRequest           = errors.New("no withdrawal request found")
	ErrWithdrawalDelayNotMet         = errors.New("withdrawal delay period has not been met")
	ErrInsufficientRewards           = errors.New("insufficient rewards in pool")
	ErrMathOverflow                  = errors.New("math overflow occurred")
	ErrUnauthorizedOwnershipTransfer = errors.New("unauthorized ownership transfer")

	ErrUnauthorized       = errors.New("caller is not the administrator")
	ErrNotInitialized     = errors.New("staking ledger is not initialized")
	ErrAlreadyInitialized = errors.New("staking ledger is already initialized")
	ErrInvalidIdentity    = errors.New("invalid identity")
)

// overflow maps an arithmetic failure onto ErrMathOverflow, keeping the
// underlying cause in the message.
func overflow(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrMathOverflow, err)
}
