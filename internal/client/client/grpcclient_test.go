package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

func TestWithAccessToken_ReplacesExisting(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "old", "other", "x")
	ctx = withAccessToken(ctx, "new")

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, md.Get(common.AccessTokenHeaderName))
	assert.Equal(t, []string{"x"}, md.Get("other"))
}

func TestAccessTokenInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantToken []string
	}{
		{name: "with token", token: "tok", wantToken: []string{"tok"}},
		{name: "anonymous", token: "", wantToken: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &GRPCClient{accessToken: tt.token}
			var seen []string
			invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
				md, _ := metadata.FromOutgoingContext(ctx)
				seen = md.Get(common.AccessTokenHeaderName)
				return nil
			}

			err := c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, seen)
		})
	}
}

func TestAccessTokenInterceptor_MapsErrors(t *testing.T) {
	c := &GRPCClient{accessToken: "tok"}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.FailedPrecondition, staking.ErrNoStakeFound.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker)
	assert.ErrorIs(t, err, staking.ErrNoStakeFound)
}

func TestMapError(t *testing.T) {
	plain := errors.New("plain")

	assert.NoError(t, mapError(nil))
	assert.Same(t, plain, mapError(plain))
	assert.ErrorIs(t, mapError(status.Error(codes.Unavailable, "connection refused")), ErrUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.DeadlineExceeded, "slow")), ErrUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.InvalidArgument, staking.ErrInvalidAmount.Error())), staking.ErrInvalidAmount)
	assert.ErrorIs(t, mapError(status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())), common.ErrTokenExpired)
}

type pingServer struct {
	api.StakingServer
	token []string
}

func (p *pingServer) Ping(ctx context.Context, _ *api.Empty) (*api.PingResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	p.token = md.Get(common.AccessTokenHeaderName)
	return &api.PingResponse{Status: "OK"}, nil
}

func (p *pingServer) Stake(context.Context, *api.AmountRequest) (*api.Empty, error) {
	return nil, status.Error(codes.InvalidArgument, staking.ErrInvalidAmount.Error())
}

func TestGRPCClient_RoundTrip(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ps := &pingServer{}
	srv := grpc.NewServer()
	api.RegisterStakingServer(srv, ps)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient(lis.Addr().String(), "tok")
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.Ping(context.Background(), &api.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, []string{"tok"}, ps.token)

	_, err = c.Stake(context.Background(), &api.AmountRequest{})
	assert.ErrorIs(t, err, staking.ErrInvalidAmount)
}
