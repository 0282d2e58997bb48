package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

func TestSanitizeRedirectPath(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{raw: "", expected: "/"},
		{raw: "/baby/3?tab=feeding", expected: "/baby/3?tab=feeding"},
		{raw: "//evil.example.com", expected: "/"},
		{raw: "https://evil.example.com", expected: "/"},
		{raw: "baby/3", expected: "/"},
	}

	for _, tt := range tests {
		if got := sanitizeRedirectPath(tt.raw, "/"); got != tt.expected {
			t.Fatalf("sanitizeRedirectPath(%q) = %q, expected %q", tt.raw, got, tt.expected)
		}
	}
}

func TestTemplateOptionalFloat(t *testing.T) {
	whole := 120.0
	fraction := 35.56
	if got := templateOptionalFloat(&whole); got != "120" {
		t.Fatalf("expected 120, got %q", got)
	}
	if got := templateOptionalFloat(&fraction); got != "35.6" {
		t.Fatalf("expected 35.6, got %q", got)
	}
	if got := templateOptionalFloat(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
}

func TestFormatTemplateDateTimeUsesHandlerLocation(t *testing.T) {
	location := time.FixedZone("UTC+2", 2*60*60)
	handler := &Handler{location: location}

	value := time.Date(2025, time.June, 15, 8, 30, 0, 0, time.UTC)
	if got := handler.formatTemplateDateTime(value); got != "2025-06-15 10:30" {
		t.Fatalf("expected local display time, got %q", got)
	}
	if got := handler.formatTemplateOptionalTime(nil); got != "" {
		t.Fatalf("expected empty string for nil time, got %q", got)
	}
}

func TestTemplateDictRejectsOddArguments(t *testing.T) {
	if _, err := templateDict("only-key"); err == nil {
		t.Fatal("expected error for odd argument count")
	}
	values, err := templateDict("Lang", "en", "Count", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["Lang"] != "en" || values["Count"] != 2 {
		t.Fatalf("unexpected dict values: %#v", values)
	}
}

func TestErrorTranslationKeyIsCaseInsensitive(t *testing.T) {
	if key := errorTranslationKey("  Invalid Credentials "); key != "error.invalid_credentials" {
		t.Fatalf("expected credentials key, got %q", key)
	}
	if key := errorTranslationKey("unmapped"); key != "" {
		t.Fatalf("expected no key for unmapped message, got %q", key)
	}
	if key := successTranslationKey("caregiver added"); key != "baby.success.caregiver_added" {
		t.Fatalf("expected caregiver added key, got %q", key)
	}
}

func TestClassifyServiceError(t *testing.T) {
	handler := &Handler{logger: quietTestLogger()}
	app := fiber.New()

	var results []struct {
		status  int
		message string
	}
	app.Get("/", func(c *fiber.Ctx) error {
		for _, err := range []error{
			services.ErrAuthCredentialsInvalid,
			fmt.Errorf("wrapped: %w", services.ErrCaregiverAlreadyExists),
			services.ErrInvalidQuality,
			errors.New("disk full"),
		} {
			status, message := handler.classifyServiceError(c, err)
			results = append(results, struct {
				status  int
				message string
			}{status, message})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	response.Body.Close()

	expected := []struct {
		status  int
		message string
	}{
		{fiber.StatusUnauthorized, "invalid credentials"},
		{fiber.StatusConflict, "caregiver already exists"},
		{fiber.StatusBadRequest, "invalid sleep quality"},
		{fiber.StatusInternalServerError, internalErrorMessage},
	}
	if len(results) != len(expected) {
		t.Fatalf("expected %d results, got %d", len(expected), len(results))
	}
	for index := range expected {
		if results[index] != expected[index] {
			t.Fatalf("result %d: expected %+v, got %+v", index, expected[index], results[index])
		}
	}
}
