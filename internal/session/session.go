// Package session provides Valkey-backed staff sessions for the back
// office. A session is an opaque random cookie pointing at a JSON payload
// in Valkey that expires on its own.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "dm_session"

	// DefaultTTL is how long an idle staff session survives.
	DefaultTTL = 12 * time.Hour

	// KeyPrefix namespaces session payloads in Valkey.
	KeyPrefix = "dm:session:"

	idBytes = 32
)

// ErrNoCookie is returned by operations that need an existing session
// cookie on the request.
var ErrNoCookie = errors.New("session: no session cookie")

// Data is the payload kept for a signed-in staff member. TwoFADone flips
// once the TOTP step has been passed for this session.
type Data struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsStaff     bool      `json:"is_staff"`
	TwoFADone   bool      `json:"two_fa_done"`
	CreatedAt   time.Time `json:"created_at"`

	// PreviousLoginAt is the sign-in before this one, nil on a first login.
	PreviousLoginAt *time.Time `json:"previous_login_at,omitempty"`
}

// Store keeps sessions in Valkey. Every write resets the TTL, so a session
// expires DefaultTTL after its last change.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store. secure marks the cookie Secure and
// should be true whenever the site is served over TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Create stores a new session and sets its cookie. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	if err := s.save(ctx, id, data); err != nil {
		return "", err
	}

	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return id, nil
}

// Get loads the session named by the request cookie. A missing cookie or
// an expired session yields nil data and no error.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id, ok := cookieID(r)
	if !ok {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, KeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &data, nil
}

// Update rewrites the payload under the current session ID.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	id, ok := cookieID(r)
	if !ok {
		return ErrNoCookie
	}
	return s.save(ctx, id, data)
}

// Rotate moves the session to a fresh ID and cookie, dropping the old key
// in the same transaction. Used when a session gains privileges, so an ID
// seen before sign-in never carries a verified session.
func (s *Store) Rotate(ctx context.Context, w http.ResponseWriter, r *http.Request, data *Data) error {
	oldID, ok := cookieID(r)
	if !ok {
		return ErrNoCookie
	}
	newSessionID, err := newID()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyPrefix+newSessionID, payload, s.ttl)
	pipe.Del(ctx, KeyPrefix+oldID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session rotate: %w", err)
	}

	http.SetCookie(w, s.cookie(newSessionID, int(s.ttl.Seconds())))
	return nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := cookieID(r)
	if !ok {
		return nil
	}

	http.SetCookie(w, s.cookie("", -1))
	if err := s.client.Del(ctx, KeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, KeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func cookieID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
