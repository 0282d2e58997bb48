package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// CookieStore keeps the whole session inside an HS256 signed token, so the
// cookie itself is the session. Destroy cannot revoke a token; clearing the
// cookie ends the session.
type CookieStore struct {
	secretKey []byte
	now       func() time.Time
}

func NewCookieStore(secretKey []byte) *CookieStore {
	return &CookieStore{secretKey: secretKey, now: time.Now}
}

func (store *CookieStore) Set(_ context.Context, data Data) (string, error) {
	if data.UserID == 0 {
		return "", fmt.Errorf("session user id is required")
	}
	now := store.now()
	expiresAt := data.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultTTL)
	}

	claims := sessionClaims{
		UserID: data.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(data.UserID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(store.secretKey)
}

func (store *CookieStore) Get(_ context.Context, rawToken string) (Data, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Data{}, ErrNoSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return store.secretKey, nil
	}, jwt.WithTimeFunc(store.now))
	if err != nil || !token.Valid {
		return Data{}, ErrNoSession
	}
	if claims.ExpiresAt == nil || claims.UserID == 0 {
		return Data{}, ErrNoSession
	}

	return Data{UserID: claims.UserID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (store *CookieStore) Destroy(context.Context, string) error {
	return nil
}
