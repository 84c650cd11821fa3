package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/runsheet/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx so facade
// logs can attribute mutations.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr) // already rewritten by TrustedRealIP
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}
