// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestLimit(t *testing.T, formatted string) func(http.Handler) http.Handler {
	t.Helper()
	store, err := NewLimiterStore(nil)
	if err != nil {
		t.Fatalf("NewLimiterStore: %v", err)
	}
	mw, err := RateLimit(store, "test-"+t.Name(), formatted)
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	return mw
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	h, _ := okHandler()
	limited := newTestLimit(t, "2-M")(h)

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		limited.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 1; i <= 2; i++ {
		if code := post("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i, code)
		}
	}
	if code := post("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("third request: got %d, want 429", code)
	}
	if code := post("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client: got %d, want 200", code)
	}
}

func TestRateLimitIgnoresGET(t *testing.T) {
	h, _ := okHandler()
	limited := newTestLimit(t, "1-M")(h)

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		limited.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/contact", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %d: got %d, want 200", i+1, rr.Code)
		}
	}
}

func TestRateLimitXHRGetsJSON(t *testing.T) {
	h, _ := okHandler()
	limited := newTestLimit(t, "1-M")(h)

	var rr *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rr = httptest.NewRecorder()
		limited.ServeHTTP(rr, req)
	}

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want 429", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"success":false`) {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestRateLimitRejectsBadFormat(t *testing.T) {
	store, _ := NewLimiterStore(nil)
	if _, err := RateLimit(store, "bad", "five-per-minute"); err == nil {
		t.Error("expected error for malformed rate")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"remote addr", "192.0.2.1:5555", "", "", "192.0.2.1"},
		{"ipv6 remote", "[2001:db8::1]:443", "", "", "2001:db8::1"},
		{"forwarded chain", "10.0.0.1:1", "203.0.113.9, 10.0.0.1", "", "203.0.113.9"},
		{"real ip", "10.0.0.1:1", "", "198.51.100.7", "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
