// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// LimitReachedMessage is shown to visitors who post the contact form or
// the login form too often.
const LimitReachedMessage = "অনেক বেশি অনুরোধ। কিছুক্ষণ পরে আবার চেষ্টা করুন।"

// NewLimiterStore keeps counters in Valkey so limits hold across
// instances. A nil client falls back to process memory.
func NewLimiterStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStore(), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "ratelimit",
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit store: %w", err)
	}
	return store, nil
}

// RateLimit limits requests per client IP using a ulule rate string such
// as "5-M" (five per minute). name separates the counters of different
// limits sharing one store. GET requests pass through untouched so the
// form itself can always be viewed.
func RateLimit(store limiter.Store, name, formatted string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", name, err)
	}

	instance := limiter.New(store, rate)

	return func(next http.Handler) http.Handler {
		limited := stdlib.NewMiddleware(instance,
			stdlib.WithKeyGetter(func(r *http.Request) string {
				return name + ":" + clientIP(r)
			}),
			stdlib.WithLimitReachedHandler(limitReached),
			stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				// Fail open: a broken counter store must not block visitors.
				slog.Error("rate limiter failed", "limit", name, "error", err)
				next.ServeHTTP(w, r)
			}),
		).Handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}, nil
}

func limitReached(w http.ResponseWriter, r *http.Request) {
	slog.Warn("rate limit reached", "path", r.URL.Path, "remote", clientIP(r))
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" || isAPIRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"success":false,"message":"` + LimitReachedMessage + `"}`))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(LimitReachedMessage))
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Leftmost entry is the original client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
