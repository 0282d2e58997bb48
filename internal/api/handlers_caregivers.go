package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

type addCaregiverForm struct {
	Email        string `json:"email" form:"email"`
	FirstName    string `json:"firstName" form:"firstName"`
	LastName     string `json:"lastName" form:"lastName"`
	Relationship string `json:"relationship" form:"relationship"`
}

type removeCaregiverForm struct {
	UserID uint `json:"userId" form:"userId"`
}

func (handler *Handler) AddCaregiver(c *fiber.Ctx) error {
	baby, _ := currentBaby(c)

	form := addCaregiverForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.respondBabyPageError(c, fiber.StatusBadRequest, "invalid input")
	}

	caregiver, err := handler.caregiverService.AddCaregiverByEmail(baby.ID, services.CaregiverInput{
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Relationship: form.Relationship,
	})
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondBabyPageError(c, status, message)
	}

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "caregiver": caregiver})
	}
	return handler.redirectToBabyWithSuccess(c, baby.ID, "caregiver added")
}

func (handler *Handler) RemoveCaregiver(c *fiber.Ctx) error {
	baby, _ := currentBaby(c)

	form := removeCaregiverForm{}
	if err := c.BodyParser(&form); err != nil || form.UserID == 0 {
		return handler.respondBabyPageError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.caregiverService.RemoveCaregiver(baby.ID, form.UserID); err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondBabyPageError(c, status, message)
	}

	return handler.redirectToBabyWithSuccess(c, baby.ID, "caregiver removed")
}
