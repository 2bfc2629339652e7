package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// publicMethods may be called without an access token.
var publicMethods = map[string]struct{}{
	api.FullMethod("Ping"):                   {},
	api.FullMethod("ViewUnallocatedRewards"): {},
	api.FullMethod("ViewRewardRunway"):       {},
	api.FullMethod("ProtocolStatus"):         {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	identity, err := auth.IdentityFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, api.Status(err)
	}

	return handler(context.WithValue(ctx, identityKey, identity), req)
}

func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	started := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "request", "method", info.FullMethod,
		"code", status.Code(err).String(), "duration", time.Since(started))
	return resp, err
}

// callerFromContext returns the identity the access token interceptor put
// into ctx.
func callerFromContext(ctx context.Context) (accounts.Identity, error) {
	id, ok := ctx.Value(identityKey).(accounts.Identity)
	if !ok || id == "" {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}
