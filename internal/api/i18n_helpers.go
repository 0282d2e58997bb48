package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errorMessageKeys = map[string]string{
	"invalid input":              "error.invalid_input",
	"invalid email":              "error.invalid_email",
	"invalid name":               "error.invalid_name",
	"invalid phone":              "error.invalid_phone",
	"weak password":              "error.weak_password",
	"password mismatch":          "error.password_mismatch",
	"invalid credentials":        "error.invalid_credentials",
	"email already exists":       "error.email_exists",
	"invalid date of birth":      "error.invalid_date_of_birth",
	"invalid gender":             "error.invalid_gender",
	"invalid relationship":       "error.invalid_relationship",
	"invalid permission":         "error.invalid_permission",
	"cannot invite yourself":     "error.invite_self",
	"caregiver already exists":   "error.caregiver_exists",
	"caregiver not found":        "error.caregiver_not_found",
	"user not found":             "error.user_not_found",
	"baby not found":             "error.baby_not_found",
	"owner access required":      "error.owner_required",
	"invalid tracking kind":      "error.invalid_tracking_kind",
	"invalid tracking type":      "error.invalid_tracking_type",
	"invalid event time":         "error.invalid_event_time",
	"end time before start time": "error.end_before_start",
	"invalid amount":             "error.invalid_amount",
	"invalid weight":             "error.invalid_weight",
	"invalid sleep quality":      "error.invalid_quality",
	"invalid feeding side":       "error.invalid_feeding_side",
	"text too long":              "error.text_too_long",
	"tracking event not found":   "error.event_not_found",
	internalErrorMessage:         "error.internal",
}

var successMessageKeys = map[string]string{
	"caregiver added":   "baby.success.caregiver_added",
	"caregiver removed": "baby.success.caregiver_removed",
	"owner transferred": "baby.success.owner_transferred",
	"invite sent":       "baby.success.invite_sent",
	"signed out":        "auth.success.signed_out",
}

func errorTranslationKey(message string) string {
	key, ok := errorMessageKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

func successTranslationKey(message string) string {
	key, ok := successMessageKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(handler.languageOf(c), key, nil)
}

func (handler *Handler) languageOf(c *fiber.Ctx) string {
	language := currentLanguage(c)
	if language == "" {
		return handler.i18n.DefaultLanguage()
	}
	return language
}

func (handler *Handler) localizedPageTitle(c *fiber.Ctx, key string) string {
	title := handler.translate(c, key)
	if title == key || strings.TrimSpace(title) == "" {
		return "Cradle"
	}
	return title + " | Cradle"
}
