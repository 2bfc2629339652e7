// Package grpc is the ledger's gRPC front end: it authenticates callers,
// translates wire messages to service calls and maps errors to status codes.
package grpc

import (
	"context"
	"math/big"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/logging"
	"github.com/dmitrijs2005/lockstake/internal/server/services"
)

// StakingService is the part of services.StakingService the API exposes.
type StakingService interface {
	Initialize(ctx context.Context, caller accounts.Identity, delayDays, yearlyRatio uint64) error
	AddRewards(ctx context.Context, caller accounts.Identity, amount uint64) error
	ConfigureRewardRatio(ctx context.Context, caller accounts.Identity, yearlyRatio uint64) error
	ConfigureWithdrawalDelay(ctx context.Context, caller accounts.Identity, days uint64) error
	InitiateOwnershipTransfer(ctx context.Context, caller, newAdmin accounts.Identity) error
	FinalizeOwnershipTransfer(ctx context.Context, caller accounts.Identity) error
	Mint(ctx context.Context, caller, to accounts.Identity, amount uint64) (uint64, error)
	Balance(ctx context.Context, who accounts.Identity) (*services.Balances, error)

	Stake(ctx context.Context, user accounts.Identity, amount uint64) error
	RequestWithdrawal(ctx context.Context, user accounts.Identity) error
	Withdraw(ctx context.Context, user accounts.Identity) error
	WithdrawAndForfeitRewards(ctx context.Context, user accounts.Identity) error

	CurrentRewards(ctx context.Context, user accounts.Identity) (uint64, error)
	UnallocatedRewards(ctx context.Context) (*big.Int, error)
	RewardRunway(ctx context.Context) (uint64, error)
	ProtocolStatus(ctx context.Context) (*services.ProtocolStatus, error)
	UserStatus(ctx context.Context, user accounts.Identity) (*services.UserStatus, error)
}

var _ api.StakingServer = (*GRPCServer)(nil)

type GRPCServer struct {
	address   string
	staking   StakingService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc StakingService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		staking:   svc,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor, s.accessTokenInterceptor))

	api.RegisterStakingServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
