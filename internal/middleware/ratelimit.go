package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"connectrpc.com/connect"
)

// ErrRateLimited is returned when a caller exceeds the attempt budget of a
// throttled procedure.
var ErrRateLimited = errors.New("too many attempts, try again later")

// Limiter decides whether another request for key may proceed.
// fortify's ratelimit.RateLimiter satisfies it.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit returns an interceptor that throttles the given procedures per
// client address. Other procedures pass through untouched.
func RateLimit(limiter Limiter, procedures ...string) connect.UnaryInterceptorFunc {
	guarded := make(map[string]struct{}, len(procedures))
	for _, p := range procedures {
		guarded[p] = struct{}{}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			if _, ok := guarded[procedure]; ok {
				host := clientHost(req.Peer().Addr)
				if !limiter.Allow(ctx, procedure+"|"+host) {
					slog.Warn("Rate limit exceeded", "procedure", procedure, "client", host)
					return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
				}
			}
			return next(ctx, req)
		}
	}
}

// clientHost strips the port from a peer address so that every connection
// from one client shares a bucket.
func clientHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
