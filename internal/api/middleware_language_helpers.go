package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const languageCookieMaxAge = 365 * 24 * time.Hour

// LanguageMiddleware stores the request language in Locals. A valid
// cradle_lang cookie wins over Accept-Language; the cookie is rewritten
// whenever it is missing or names an unsupported language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language, fromCookie := handler.requestLanguage(c)
	if !fromCookie {
		handler.rememberLanguage(c, language)
	}
	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) requestLanguage(c *fiber.Ctx) (string, bool) {
	if stored := c.Cookies(languageCookieName); stored != "" {
		language := handler.i18n.NormalizeLanguage(stored)
		return language, language == stored
	}
	return handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)), false
}

func (handler *Handler) rememberLanguage(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(languageCookieMaxAge),
	})
}

// SetLanguage switches the UI language and returns to the local path in
// ?next, or to / when next is missing or points off-site.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	handler.rememberLanguage(c, handler.i18n.NormalizeLanguage(c.Params("lang")))
	return redirectToPath(c, sanitizeRedirectPath(c.Query("next"), "/"))
}
