package cli

import (
	"context"
	"io"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/client/client"
	"github.com/dmitrijs2005/lockstake/internal/client/config"
)

// Staking is the part of the ledger client the commands use.
type Staking interface {
	Ping(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.PingResponse, error)
	Initialize(ctx context.Context, in *api.InitializeRequest, opts ...grpc.CallOption) (*api.Empty, error)
	AddRewards(ctx context.Context, in *api.AmountRequest, opts ...grpc.CallOption) (*api.Empty, error)
	ConfigureRewardRatio(ctx context.Context, in *api.RewardRatioRequest, opts ...grpc.CallOption) (*api.Empty, error)
	ConfigureWithdrawalDelay(ctx context.Context, in *api.WithdrawalDelayRequest, opts ...grpc.CallOption) (*api.Empty, error)
	InitiateOwnershipTransfer(ctx context.Context, in *api.OwnershipTransferRequest, opts ...grpc.CallOption) (*api.Empty, error)
	FinalizeOwnershipTransfer(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Empty, error)
	Mint(ctx context.Context, in *api.MintRequest, opts ...grpc.CallOption) (*api.MintResponse, error)
	Balance(ctx context.Context, in *api.IdentityRequest, opts ...grpc.CallOption) (*api.BalanceResponse, error)
	Stake(ctx context.Context, in *api.AmountRequest, opts ...grpc.CallOption) (*api.Empty, error)
	RequestWithdrawal(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Empty, error)
	Withdraw(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Empty, error)
	WithdrawAndForfeitRewards(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Empty, error)
	ViewCurrentRewards(ctx context.Context, in *api.IdentityRequest, opts ...grpc.CallOption) (*api.CurrentRewardsResponse, error)
	ViewUnallocatedRewards(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.UnallocatedRewardsResponse, error)
	ViewRewardRunway(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.RewardRunwayResponse, error)
	ProtocolStatus(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.ProtocolStatusResponse, error)
	UserStatus(ctx context.Context, in *api.IdentityRequest, opts ...grpc.CallOption) (*api.UserStatusResponse, error)
	Close() error
}

// dial is swapped in tests.
var dial = func(c *config.Config) (Staking, error) {
	return client.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken)
}

type App struct {
	config *config.Config
	out    io.Writer
}

// call connects, runs fn under the configured timeout and disconnects.
func (a *App) call(ctx context.Context, fn func(ctx context.Context, s Staking) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := dial(a.config)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return fn(ctx, s)
}
