package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

const internalErrorMessage = "something went wrong"

type serviceErrorStatus struct {
	target  error
	status  int
	message string
}

var serviceErrorStatuses = []serviceErrorStatus{
	{target: services.ErrInvalidEmail, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidName, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidPhone, status: fiber.StatusBadRequest},
	{target: services.ErrWeakPassword, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidDateOfBirth, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidGender, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidRelationship, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidPermission, status: fiber.StatusBadRequest},
	{target: services.ErrInviteSelf, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidTrackingKind, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidTrackingType, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidEventTime, status: fiber.StatusBadRequest},
	{target: services.ErrEndBeforeStart, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidAmount, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidWeight, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidQuality, status: fiber.StatusBadRequest},
	{target: services.ErrInvalidFeedingSide, status: fiber.StatusBadRequest},
	{target: services.ErrTextTooLong, status: fiber.StatusBadRequest},
	{target: services.ErrAuthCredentialsInvalid, status: fiber.StatusUnauthorized, message: "invalid credentials"},
	{target: services.ErrEmailAlreadyExists, status: fiber.StatusConflict},
	{target: services.ErrCaregiverAlreadyExists, status: fiber.StatusConflict},
	{target: services.ErrUserNotFound, status: fiber.StatusNotFound},
	{target: services.ErrBabyNotFound, status: fiber.StatusNotFound},
	{target: services.ErrCaregiverNotFound, status: fiber.StatusNotFound},
	{target: services.ErrTrackingEventNotFound, status: fiber.StatusNotFound},
}

// classifyServiceError maps a service error onto a status and a user-facing
// message. Anything unrecognised is logged and reported as a generic 500.
func (handler *Handler) classifyServiceError(c *fiber.Ctx, err error) (int, string) {
	for _, entry := range serviceErrorStatuses {
		if errors.Is(err, entry.target) {
			if entry.message != "" {
				return entry.status, entry.message
			}
			return entry.status, entry.target.Error()
		}
	}

	handler.logger.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return fiber.StatusInternalServerError, internalErrorMessage
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	status, message := handler.classifyServiceError(c, err)
	return apiError(c, status, message)
}
