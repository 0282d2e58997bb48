package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashLifetime = 5 * time.Minute

// FlashPayload survives exactly one redirect. Error and Success hold message
// codes that the next page translates.
type FlashPayload struct {
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload.Error = strings.TrimSpace(payload.Error)
	payload.Success = strings.TrimSpace(payload.Success)
	if payload == (FlashPayload{}) {
		handler.expireCookie(c, flashCookieName)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		handler.logger.Warn("encode flash failed", "error", err)
		return
	}
	c.Cookie(handler.httpOnlyCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(serialized), time.Now().Add(flashLifetime)))
}

// popFlashCookie returns the pending flash and expires it. Undecodable
// cookies read as an empty payload.
func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := c.Cookies(flashCookieName)
	if raw == "" {
		return FlashPayload{}
	}
	handler.expireCookie(c, flashCookieName)

	var payload FlashPayload
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil || json.Unmarshal(decoded, &payload) != nil {
		return FlashPayload{}
	}
	return payload
}

func (handler *Handler) httpOnlyCookie(name string, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	}
}

func (handler *Handler) expireCookie(c *fiber.Ctx, name string) {
	c.Cookie(handler.httpOnlyCookie(name, "", time.Now().Add(-time.Hour)))
}
