package api

import (
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/session"
)

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type registerInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	Phone           string `json:"phone" form:"phone"`
}

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}
	credentials.Email = strings.TrimSpace(credentials.Email)
	credentials.RememberMe = credentials.RememberMe || parseBoolValue(c.FormValue("remember_me"))
	return credentials, nil
}

func parseRegisterInput(c *fiber.Ctx) (registerInput, error) {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return registerInput{}, err
	}
	input.Email = strings.TrimSpace(input.Email)
	return input, nil
}

func normalizeLoginEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, userID uint, rememberMe bool) error {
	expiresAt := time.Now().Add(session.TTLFor(rememberMe))
	token, err := handler.sessions.Set(c.UserContext(), session.Data{UserID: userID, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}

	var expires time.Time
	if rememberMe {
		expires = expiresAt
	}
	c.Cookie(handler.httpOnlyCookie(authCookieName, token, expires))
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	if token := strings.TrimSpace(c.Cookies(authCookieName)); token != "" {
		if err := handler.sessions.Destroy(c.UserContext(), token); err != nil {
			handler.logger.Warn("destroy session failed", "error", err)
		}
	}

	handler.expireCookie(c, authCookieName)
}
