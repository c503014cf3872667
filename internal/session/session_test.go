package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// newTestStore connects to Valkey DB 15 and skips when it is unreachable.
func newTestStore(t *testing.T, secure bool) (*Store, *redis.Client) {
	t.Helper()

	addr := "localhost:6379"
	if h := os.Getenv("VALKEY_HOST"); h != "" {
		port := os.Getenv("VALKEY_PORT")
		if port == "" {
			port = "6379"
		}
		addr = h + ":" + port
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		if keys, _ := client.Keys(ctx, KeyPrefix+"*").Result(); len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return NewStore(client, secure), client
}

func staffData() *Data {
	return &Data{
		UserID:      uuid.New(),
		Email:       "purohit@session-test.local",
		DisplayName: "Purohit",
		IsStaff:     true,
	}
}

// issued returns the session cookie from a response, or nil.
func issued(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/admin", nil)
	if c != nil {
		r.AddCookie(c)
	}
	return r
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	data := staffData()
	id, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 2*idBytes {
		t.Errorf("id length: got %d, want %d", len(id), 2*idBytes)
	}

	c := issued(w)
	if c == nil {
		t.Fatal("no session cookie")
	}
	if c.Value != id || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("cookie: got %+v", c)
	}
	if c.MaxAge != int(DefaultTTL.Seconds()) {
		t.Errorf("max-age: got %d, want %d", c.MaxAge, int(DefaultTTL.Seconds()))
	}

	got, err := store.Get(ctx, requestWith(c))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned no session")
	}
	if got.UserID != data.UserID || got.Email != data.Email || !got.IsStaff || got.TwoFADone {
		t.Errorf("data: got %+v, want %+v", got, data)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestGetWithoutSession(t *testing.T) {
	store, _ := newTestStore(t, false)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty cookie", &http.Cookie{Name: CookieName, Value: ""}},
		{"unknown id", &http.Cookie{Name: CookieName, Value: "deadbeef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Get(context.Background(), requestWith(tt.cookie))
			if err != nil || got != nil {
				t.Errorf("got (%v, %v), want (nil, nil)", got, err)
			}
		})
	}
}

func TestGetWithoutClientAndCookie(t *testing.T) {
	// The router builds a store without Valkey in tests; requests without a
	// cookie must not touch the client.
	got, err := NewStore(nil, false).Get(context.Background(), requestWith(nil))
	if err != nil || got != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", got, err)
	}
}

func TestUpdateResetsPayload(t *testing.T) {
	store, client := newTestStore(t, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	data := staffData()
	id, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c := issued(w)

	// Shorten the TTL to check Update restores it.
	client.Expire(ctx, KeyPrefix+id, time.Minute)

	data.TwoFADone = true
	if err := store.Update(ctx, requestWith(c), data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := store.Get(ctx, requestWith(c))
	if got == nil || !got.TwoFADone {
		t.Errorf("TwoFADone not persisted: %+v", got)
	}
	if ttl := client.TTL(ctx, KeyPrefix+id).Val(); ttl <= time.Minute {
		t.Errorf("ttl: got %v, want reset to about %v", ttl, DefaultTTL)
	}

	if err := store.Update(ctx, requestWith(nil), data); !errors.Is(err, ErrNoCookie) {
		t.Errorf("Update without cookie: got %v, want ErrNoCookie", err)
	}
}

func TestRotate(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	data := staffData()
	if _, err := store.Create(ctx, w, data); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := issued(w)

	data.TwoFADone = true
	w = httptest.NewRecorder()
	if err := store.Rotate(ctx, w, requestWith(before), data); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	after := issued(w)
	if after == nil || after.Value == before.Value {
		t.Fatalf("rotate did not issue a new cookie: %+v", after)
	}

	if old, _ := store.Get(ctx, requestWith(before)); old != nil {
		t.Error("old session id still resolves")
	}
	got, err := store.Get(ctx, requestWith(after))
	if err != nil || got == nil {
		t.Fatalf("Get rotated: (%v, %v)", got, err)
	}
	if !got.TwoFADone || got.UserID != data.UserID {
		t.Errorf("rotated data: got %+v", got)
	}

	if err := store.Rotate(ctx, httptest.NewRecorder(), requestWith(nil), data); !errors.Is(err, ErrNoCookie) {
		t.Errorf("Rotate without cookie: got %v, want ErrNoCookie", err)
	}
}

func TestDestroy(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if _, err := store.Create(ctx, w, staffData()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	c := issued(w)

	w = httptest.NewRecorder()
	if err := store.Destroy(ctx, w, requestWith(c)); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if cleared := issued(w); cleared == nil || cleared.MaxAge >= 0 {
		t.Errorf("cookie not cleared: %+v", cleared)
	}
	if got, _ := store.Get(ctx, requestWith(c)); got != nil {
		t.Error("session still present after Destroy")
	}

	// Without a cookie there is nothing to do.
	w = httptest.NewRecorder()
	if err := store.Destroy(ctx, w, requestWith(nil)); err != nil {
		t.Errorf("Destroy without cookie: %v", err)
	}
	if issued(w) != nil {
		t.Error("Destroy without cookie set a cookie")
	}
}

func TestSecureCookie(t *testing.T) {
	for _, secure := range []bool{false, true} {
		store, _ := newTestStore(t, secure)

		w := httptest.NewRecorder()
		if _, err := store.Create(context.Background(), w, staffData()); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if c := issued(w); c.Secure != secure {
			t.Errorf("secure=%v: cookie Secure is %v", secure, c.Secure)
		}
	}
}
