package grpc

import (
	"context"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

var empty = &api.Empty{}

func (s *GRPCServer) Ping(ctx context.Context, req *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

// command runs fn on behalf of the authenticated caller and returns an
// empty response.
func (s *GRPCServer) command(ctx context.Context, fn func(caller accounts.Identity) error) (*api.Empty, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(caller); err != nil {
		return nil, api.Status(err)
	}
	return empty, nil
}

// subject is the identity a query is about: the requested one or the caller.
func subject(ctx context.Context, req *api.IdentityRequest) (accounts.Identity, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return "", err
	}
	if req.Identity != "" {
		return accounts.Identity(req.Identity), nil
	}
	return caller, nil
}

func (s *GRPCServer) Initialize(ctx context.Context, req *api.InitializeRequest) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.Initialize(ctx, caller, req.WithdrawalDelayDays, req.YearlyRewardRatio)
	})
}

func (s *GRPCServer) AddRewards(ctx context.Context, req *api.AmountRequest) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.AddRewards(ctx, caller, req.Amount)
	})
}

func (s *GRPCServer) ConfigureRewardRatio(ctx context.Context, req *api.RewardRatioRequest) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.ConfigureRewardRatio(ctx, caller, req.YearlyRewardRatio)
	})
}

func (s *GRPCServer) ConfigureWithdrawalDelay(ctx context.Context, req *api.WithdrawalDelayRequest) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.ConfigureWithdrawalDelay(ctx, caller, req.Days)
	})
}

func (s *GRPCServer) InitiateOwnershipTransfer(ctx context.Context, req *api.OwnershipTransferRequest) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.InitiateOwnershipTransfer(ctx, caller, accounts.Identity(req.NewAdministrator))
	})
}

func (s *GRPCServer) FinalizeOwnershipTransfer(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.FinalizeOwnershipTransfer(ctx, caller)
	})
}

func (s *GRPCServer) Mint(ctx context.Context, req *api.MintRequest) (*api.MintResponse, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := s.staking.Mint(ctx, caller, accounts.Identity(req.To), req.Amount)
	if err != nil {
		return nil, api.Status(err)
	}
	return &api.MintResponse{Balance: balance}, nil
}

func (s *GRPCServer) Balance(ctx context.Context, req *api.IdentityRequest) (*api.BalanceResponse, error) {
	who, err := subject(ctx, req)
	if err != nil {
		return nil, err
	}
	b, err := s.staking.Balance(ctx, who)
	if err != nil {
		return nil, api.Status(err)
	}
	return &api.BalanceResponse{Identity: string(who), Wallet: b.Wallet, Escrow: b.Escrow}, nil
}

func (s *GRPCServer) Stake(ctx context.Context, req *api.AmountRequest) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.Stake(ctx, caller, req.Amount)
	})
}

func (s *GRPCServer) RequestWithdrawal(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.RequestWithdrawal(ctx, caller)
	})
}

func (s *GRPCServer) Withdraw(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.Withdraw(ctx, caller)
	})
}

func (s *GRPCServer) WithdrawAndForfeitRewards(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	return s.command(ctx, func(caller accounts.Identity) error {
		return s.staking.WithdrawAndForfeitRewards(ctx, caller)
	})
}

func (s *GRPCServer) ViewCurrentRewards(ctx context.Context, req *api.IdentityRequest) (*api.CurrentRewardsResponse, error) {
	who, err := subject(ctx, req)
	if err != nil {
		return nil, err
	}
	reward, err := s.staking.CurrentRewards(ctx, who)
	if err != nil {
		return nil, api.Status(err)
	}
	return &api.CurrentRewardsResponse{Identity: string(who), Reward: reward}, nil
}

func (s *GRPCServer) ViewUnallocatedRewards(ctx context.Context, req *api.Empty) (*api.UnallocatedRewardsResponse, error) {
	u, err := s.staking.UnallocatedRewards(ctx)
	if err != nil {
		return nil, api.Status(err)
	}
	return &api.UnallocatedRewardsResponse{Unallocated: u.String()}, nil
}

func (s *GRPCServer) ViewRewardRunway(ctx context.Context, req *api.Empty) (*api.RewardRunwayResponse, error) {
	seconds, err := s.staking.RewardRunway(ctx)
	if err != nil {
		return nil, api.Status(err)
	}
	return &api.RewardRunwayResponse{Seconds: seconds, Infinite: seconds == staking.InfiniteRunway}, nil
}

func (s *GRPCServer) ProtocolStatus(ctx context.Context, req *api.Empty) (*api.ProtocolStatusResponse, error) {
	ps, err := s.staking.ProtocolStatus(ctx)
	if err != nil {
		return nil, api.Status(err)
	}
	return ps.Message(), nil
}

func (s *GRPCServer) UserStatus(ctx context.Context, req *api.IdentityRequest) (*api.UserStatusResponse, error) {
	who, err := subject(ctx, req)
	if err != nil {
		return nil, err
	}
	us, err := s.staking.UserStatus(ctx, who)
	if err != nil {
		return nil, api.Status(err)
	}
	return us.Message(), nil
}
