package session

import (
	"context"
	"errors"
	"time"
)

var ErrNoSession = errors.New("no session")

const (
	DefaultTTL  = 7 * 24 * time.Hour
	RememberTTL = 30 * 24 * time.Hour
)

// Data is what a session remembers about the signed-in user.
type Data struct {
	UserID    uint      `json:"uid"`
	ExpiresAt time.Time `json:"exp"`
}

// Store issues opaque tokens for session data. Get returns ErrNoSession for
// unknown, expired or tampered tokens.
type Store interface {
	Set(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, token string) (Data, error)
	Destroy(ctx context.Context, token string) error
}

// TTLFor returns the session lifetime for the login form's remember flag.
func TTLFor(rememberMe bool) time.Duration {
	if rememberMe {
		return RememberTTL
	}
	return DefaultTTL
}
