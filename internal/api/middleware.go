package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/models"
)

const (
	authCookieName     = "cradle_auth"
	languageCookieName = "cradle_lang"
	flashCookieName    = "cradle_flash"
	csrfCookieName     = "cradle_csrf"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextBabyKey     = "current_baby"
	contextCSRFKey     = "csrf"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentBaby(c *fiber.Ctx) (*models.Baby, bool) {
	baby, ok := c.Locals(contextBabyKey).(*models.Baby)
	return baby, ok
}
