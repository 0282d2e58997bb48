package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/models"
	"github.com/terraincognita07/cradle/internal/services"
)

type inviteForm struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
}

type inviteFunc func(ctx context.Context, babyID uint, senderID uint, input services.InviteInput) (*models.ParentInvite, error)

func (handler *Handler) InviteParent(c *fiber.Ctx) error {
	return handler.invite(c, handler.inviteService.InviteNewParent)
}

func (handler *Handler) InviteCaregiver(c *fiber.Ctx) error {
	return handler.invite(c, handler.inviteService.InviteNewCaregiver)
}

func (handler *Handler) invite(c *fiber.Ctx, send inviteFunc) error {
	user, _ := currentUser(c)
	baby, _ := currentBaby(c)

	form := inviteForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.respondInviteError(c, fiber.StatusBadRequest, "invalid input")
	}

	invite, err := send(c.UserContext(), baby.ID, user.ID, services.InviteInput{
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondInviteError(c, status, message)
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "invite": invite})
	}
	return handler.redirectToBabyWithSuccess(c, baby.ID, "invite sent")
}

func (handler *Handler) respondInviteError(c *fiber.Ctx, status int, message string) error {
	if wantsJSON(c) {
		return apiError(c, status, message)
	}
	return handler.respondBabyPageError(c, status, message)
}
