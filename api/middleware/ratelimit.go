package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/rate"
)

// RateLimit rejects callers that exceed their per-IP budget. Used on
// the public tracking and inquiry endpoints, which are writable
// without a session.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if !lim.Check(web.ClientIP(r)) {
				return weberr.TooManyRequests(errors.New("client rate limit exceeded"))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
