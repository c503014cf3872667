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

func panicking(v any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(v)
	})
}

func TestRecoverer(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantType    string
		wantContain string
	}{
		{"public page", "/events", "text/plain; charset=utf-8", "Internal Server Error"},
		{"admin api", "/admin/api/pages", "application/json", `"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Recoverer(panicking("boom")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", rr.Code)
			}
			if got := rr.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("content type: got %q, want %q", got, tt.wantType)
			}
			if !strings.Contains(rr.Body.String(), tt.wantContain) {
				t.Errorf("body %q should contain %q", rr.Body.String(), tt.wantContain)
			}
		})
	}
}

func TestRecovererNoPanic(t *testing.T) {
	h, called := okHandler()
	rr := httptest.NewRecorder()
	Recoverer(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !*called || rr.Code != http.StatusOK {
		t.Errorf("expected pass-through, got called=%v status=%d", *called, rr.Code)
	}
}

func TestRecovererRepanicsAbort(t *testing.T) {
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	Recoverer(panicking(http.ErrAbortHandler)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
