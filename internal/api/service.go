package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "lockstake.v1.StakingService"

// FullMethod returns the gRPC path of method, e.g. "/lockstake.v1.StakingService/Stake".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// StakingServer is implemented by the ledger's gRPC front end.
type StakingServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)

	Initialize(context.Context, *InitializeRequest) (*Empty, error)
	AddRewards(context.Context, *AmountRequest) (*Empty, error)
	ConfigureRewardRatio(context.Context, *RewardRatioRequest) (*Empty, error)
	ConfigureWithdrawalDelay(context.Context, *WithdrawalDelayRequest) (*Empty, error)
	InitiateOwnershipTransfer(context.Context, *OwnershipTransferRequest) (*Empty, error)
	FinalizeOwnershipTransfer(context.Context, *Empty) (*Empty, error)
	Mint(context.Context, *MintRequest) (*MintResponse, error)
	Balance(context.Context, *IdentityRequest) (*BalanceResponse, error)

	Stake(context.Context, *AmountRequest) (*Empty, error)
	RequestWithdrawal(context.Context, *Empty) (*Empty, error)
	Withdraw(context.Context, *Empty) (*Empty, error)
	WithdrawAndForfeitRewards(context.Context, *Empty) (*Empty, error)

	ViewCurrentRewards(context.Context, *IdentityRequest) (*CurrentRewardsResponse, error)
	ViewUnallocatedRewards(context.Context, *Empty) (*UnallocatedRewardsResponse, error)
	ViewRewardRunway(context.Context, *Empty) (*RewardRunwayResponse, error)
	ProtocolStatus(context.Context, *Empty) (*ProtocolStatusResponse, error)
	UserStatus(context.Context, *IdentityRequest) (*UserStatusResponse, error)
}

func unary[Req, Resp any](method string, call func(StakingServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StakingServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(StakingServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// StakingServiceDesc describes the service for grpc.Server.RegisterService.
var StakingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StakingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", StakingServer.Ping),
		unary("Initialize", StakingServer.Initialize),
		unary("AddRewards", StakingServer.AddRewards),
		unary("ConfigureRewardRatio", StakingServer.ConfigureRewardRatio),
		unary("ConfigureWithdrawalDelay", StakingServer.ConfigureWithdrawalDelay),
		unary("InitiateOwnershipTransfer", StakingServer.InitiateOwnershipTransfer),
		unary("FinalizeOwnershipTransfer", StakingServer.FinalizeOwnershipTransfer),
		unary("Mint", StakingServer.Mint),
		unary("Balance", StakingServer.Balance),
		unary("Stake", StakingServer.Stake),
		unary("RequestWithdrawal", StakingServer.RequestWithdrawal),
		unary("Withdraw", StakingServer.Withdraw),
		unary("WithdrawAndForfeitRewards", StakingServer.WithdrawAndForfeitRewards),
		unary("ViewCurrentRewards", StakingServer.ViewCurrentRewards),
		unary("ViewUnallocatedRewards", StakingServer.ViewUnallocatedRewards),
		unary("ViewRewardRunway", StakingServer.ViewRewardRunway),
		unary("ProtocolStatus", StakingServer.ProtocolStatus),
		unary("UserStatus", StakingServer.UserStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lockstake/v1/staking",
}

func RegisterStakingServer(s grpc.ServiceRegistrar, srv StakingServer) {
	s.RegisterService(&StakingServiceDesc, srv)
}

// StakingClient calls the ledger over cc. Every call is sent with the JSON
// content subtype.
type StakingClient struct {
	cc grpc.ClientConnInterface
}

func NewStakingClient(cc grpc.ClientConnInterface) *StakingClient {
	return &StakingClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StakingClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *StakingClient) Initialize(ctx context.Context, in *InitializeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Initialize", in, opts)
}

func (c *StakingClient) AddRewards(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "AddRewards", in, opts)
}

func (c *StakingClient) ConfigureRewardRatio(ctx context.Context, in *RewardRatioRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "ConfigureRewardRatio", in, opts)
}

func (c *StakingClient) ConfigureWithdrawalDelay(ctx context.Context, in *WithdrawalDelayRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "ConfigureWithdrawalDelay", in, opts)
}

func (c *StakingClient) InitiateOwnershipTransfer(ctx context.Context, in *OwnershipTransferRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "InitiateOwnershipTransfer", in, opts)
}

func (c *StakingClient) FinalizeOwnershipTransfer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "FinalizeOwnershipTransfer", in, opts)
}

func (c *StakingClient) Mint(ctx context.Context, in *MintRequest, opts ...grpc.CallOption) (*MintResponse, error) {
	return invoke[MintResponse](ctx, c.cc, "Mint", in, opts)
}

func (c *StakingClient) Balance(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, "Balance", in, opts)
}

func (c *StakingClient) Stake(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Stake", in, opts)
}

func (c *StakingClient) RequestWithdrawal(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "RequestWithdrawal", in, opts)
}

func (c *StakingClient) Withdraw(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Withdraw", in, opts)
}

func (c *StakingClient) WithdrawAndForfeitRewards(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "WithdrawAndForfeitRewards", in, opts)
}

func (c *StakingClient) ViewCurrentRewards(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*CurrentRewardsResponse, error) {
	return invoke[CurrentRewardsResponse](ctx, c.cc, "ViewCurrentRewards", in, opts)
}

func (c *StakingClient) ViewUnallocatedRewards(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UnallocatedRewardsResponse, error) {
	return invoke[UnallocatedRewardsResponse](ctx, c.cc, "ViewUnallocatedRewards", in, opts)
}

func (c *StakingClient) ViewRewardRunway(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RewardRunwayResponse, error) {
	return invoke[RewardRunwayResponse](ctx, c.cc, "ViewRewardRunway", in, opts)
}

func (c *StakingClient) ProtocolStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ProtocolStatusResponse, error) {
	return invoke[ProtocolStatusResponse](ctx, c.cc, "ProtocolStatus", in, opts)
}

func (c *StakingClient) UserStatus(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*UserStatusResponse, error) {
	return invoke[UserStatusResponse](ctx, c.cc, "UserStatus", in, opts)
}
