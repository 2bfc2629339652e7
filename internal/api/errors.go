package api

import (
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/lockstake/internal/bank"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{staking.ErrInvalidAmount, codes.InvalidArgument},
	{staking.ErrInvalidIdentity, codes.InvalidArgument},
	{bank.ErrInvalidTransfer, codes.InvalidArgument},
	{staking.ErrNoStakeFound, codes.NotFound},
	{staking.ErrNoWithdrawalRequest, codes.NotFound},
	{staking.ErrWithdrawalDelayNotMet, codes.FailedPrecondition},
	{staking.ErrInsufficientRewards, codes.FailedPrecondition},
	{staking.ErrNotInitialized, codes.FailedPrecondition},
	{bank.ErrInsufficientFunds, codes.FailedPrecondition},
	{staking.ErrAlreadyInitialized, codes.AlreadyExists},
	{staking.ErrUnauthorizedOwnershipTransfer, codes.PermissionDenied},
	{staking.ErrUnauthorized, codes.PermissionDenied},
	{bank.ErrUnauthorizedTransfer, codes.PermissionDenied},
	{staking.ErrMathOverflow, codes.OutOfRange},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrorUnauthorized, codes.Unauthenticated},
}

// Status converts a ledger error into a gRPC status error. Known errors keep
// their message so FromStatus can recover them; anything else becomes an
// opaque Internal error.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return status.Error(sc.code, err.Error())
		}
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

// FromStatus recovers the ledger error from a status error returned by the
// server, so callers can match it with errors.Is. Unknown statuses are
// returned unchanged.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}
	msg := st.Message()
	for _, sc := range statusCodes {
		if sc.code == st.Code() && strings.Contains(msg, sc.err.Error()) {
			if msg == sc.err.Error() {
				return sc.err
			}
			return &remoteError{sentinel: sc.err, msg: msg}
		}
	}
	return err
}

type remoteError struct {
	sentinel error
	msg      string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.sentinel }
