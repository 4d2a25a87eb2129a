package grpc

import (
	"context"
	"net"
	"runtime/debug"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/dmitrijs2005/passkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// methods reachable without a session token
var publicMethods = map[string]bool{
	api.MethodRegister:         true,
	api.MethodLogin:            true,
	api.MethodGeneratePassword: true,
	api.MethodPing:             true,
}

// methods counted against the per-client attempt budget
var rateLimitedMethods = map[string]bool{
	api.MethodRegister: true,
	api.MethodLogin:    true,
}

func userIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

func (s *GRPCServer) recoverInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "panic in handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
			resp, err = nil, errInternal
		}
	}()
	return handler(ctx, req)
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.limiter == nil || !rateLimitedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	client := clientID(ctx)
	if !s.limiter.Allow(client) {
		s.logger.Warn(ctx, "rate limited", "method", info.FullMethod, "client", client)
		return nil, s.toStatus(ctx, common.ErrRateLimited)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	identity, err := s.accounts.Authenticate(bearerToken(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	ctx = context.WithValue(ctx, userIDKey, identity.UserID)

	return handler(ctx, req)
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AccessTokenHeaderName)
	if len(values) == 0 {
		return ""
	}
	v := values[0]
	n := len(common.BearerPrefix)
	if len(v) < n || !strings.EqualFold(v[:n], common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[n:])
}

// clientID is the peer IP, or the whole peer address when it has no port.
func clientID(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
