package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/lockstake/internal/bank"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

func TestStatus_Codes(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{staking.ErrInvalidAmount, codes.InvalidArgument},
		{staking.ErrNoStakeFound, codes.NotFound},
		{staking.ErrWithdrawalDelayNotMet, codes.FailedPrecondition},
		{fmt.Errorf("transfer: %w", bank.ErrInsufficientFunds), codes.FailedPrecondition},
		{staking.ErrAlreadyInitialized, codes.AlreadyExists},
		{staking.ErrUnauthorizedOwnershipTransfer, codes.PermissionDenied},
		{staking.ErrUnauthorized, codes.PermissionDenied},
		{fmt.Errorf("%w: fixed-point overflow", staking.ErrMathOverflow), codes.OutOfRange},
		{common.ErrTokenExpired, codes.Unauthenticated},
		{errors.New("db error: connection refused"), codes.Internal},
	}
	for _, tt := range tests {
		st, ok := status.FromError(Status(tt.err))
		assert.True(t, ok, tt.err.Error())
		assert.Equal(t, tt.code, st.Code(), tt.err.Error())
	}
}

func TestStatus_HidesInternalDetail(t *testing.T) {
	st, _ := status.FromError(Status(errors.New("db error: password authentication failed")))
	assert.Equal(t, "internal error", st.Message())
}

func TestStatus_PassesStatusErrorsThrough(t *testing.T) {
	in := status.Error(codes.Unavailable, "down")
	assert.Equal(t, in, Status(in))
	assert.Nil(t, Status(nil))
}

func TestFromStatus_RoundTrip(t *testing.T) {
	for _, sentinel := range []error{
		staking.ErrInvalidAmount,
		staking.ErrNoWithdrawalRequest,
		staking.ErrInsufficientRewards,
		staking.ErrUnauthorizedOwnershipTransfer,
		staking.ErrUnauthorized,
		staking.ErrMathOverflow,
		bank.ErrInsufficientFunds,
		common.ErrInvalidToken,
	} {
		got := FromStatus(Status(sentinel))
		assert.Equal(t, sentinel, got)
	}
}

func TestFromStatus_WrappedKeepsMessage(t *testing.T) {
	wrapped := fmt.Errorf("%w: position belongs to bob", staking.ErrInvalidIdentity)
	got := FromStatus(Status(wrapped))

	assert.ErrorIs(t, got, staking.ErrInvalidIdentity)
	assert.Equal(t, wrapped.Error(), got.Error())
}

func TestFromStatus_Unknown(t *testing.T) {
	plain := errors.New("dial tcp: refused")
	assert.Equal(t, plain, FromStatus(plain))

	unavailable := status.Error(codes.Unavailable, "connection closed")
	assert.Equal(t, unavailable, FromStatus(unavailable))
}
