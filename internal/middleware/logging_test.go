package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerPassesThroughStatus(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		handler http.HandlerFunc
		want    int
	}{
		{"explicit 200", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, http.StatusOK},
		{"404", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, http.StatusNotFound},
		{"implicit 200 on write", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("জয় মা"))
		}, http.StatusOK},
		{"POST 201", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}, http.StatusCreated},
		{"500 logged at error", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Logger(tt.handler).ServeHTTP(rr, httptest.NewRequest(tt.method, "/events", nil))
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rw := wrap(httptest.NewRecorder())

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)
	rw.Write([]byte("x"))

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode: got %d, want 404", rw.statusCode)
	}
}

func TestWrapReusesWrapper(t *testing.T) {
	rw := wrap(httptest.NewRecorder())
	if wrap(rw) != rw {
		t.Error("wrap should not double-wrap a responseWriter")
	}
}

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/events", http.StatusOK, slog.LevelInfo},
		{"/static/css/site.css", http.StatusOK, slog.LevelDebug},
		{"/media/slides/a.jpg", http.StatusNotModified, slog.LevelDebug},
		{"/media/slides/missing.jpg", http.StatusNotFound, slog.LevelInfo},
		{"/static/js/app.js", http.StatusInternalServerError, slog.LevelError},
		{"/admin/api/pages", http.StatusInternalServerError, slog.LevelError},
	}

	for _, tt := range tests {
		if got := requestLevel(tt.path, tt.status); got != tt.want {
			t.Errorf("requestLevel(%q, %d): got %v, want %v", tt.path, tt.status, got, tt.want)
		}
	}
}
