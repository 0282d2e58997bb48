package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

type babyForm struct {
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	DateOfBirth     string `json:"dateOfBirth" form:"dateOfBirth"`
	Gender          string `json:"gender" form:"gender"`
	ParentEmail     string `json:"parentEmail" form:"parentEmail"`
	ParentFirstName string `json:"parentFirstName" form:"parentFirstName"`
	ParentLastName  string `json:"parentLastName" form:"parentLastName"`
}

func (form babyForm) toInput() services.BabyInput {
	input := services.BabyInput{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		DateOfBirth: form.DateOfBirth,
		Gender:      form.Gender,
	}
	if strings.TrimSpace(form.ParentEmail) != "" {
		input.AdditionalParent = &services.AdditionalParentInput{
			Email:     form.ParentEmail,
			FirstName: form.ParentFirstName,
			LastName:  form.ParentLastName,
		}
	}
	return input
}

type transferOwnerForm struct {
	UserID uint `json:"userId" form:"userId"`
}

func (handler *Handler) ShowNewBabyPage(c *fiber.Ctx) error {
	return handler.render(c, "baby_new", handler.buildNewBabyPageData(c, babyForm{}, ""))
}

func (handler *Handler) CreateBaby(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return redirectToPath(c, "/login")
	}

	form := babyForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.respondNewBabyError(c, fiber.StatusBadRequest, "invalid input", form)
	}

	baby, err := handler.babyService.CreateBaby(c.UserContext(), user.ID, form.toInput())
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondNewBabyError(c, status, message, form)
	}

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "baby": baby})
	}
	return redirectToPath(c, babyPath(baby.ID))
}

func (handler *Handler) ShowBaby(c *fiber.Ctx) error {
	flash := handler.popFlashCookie(c)
	return handler.renderBabyPage(c, fiber.StatusOK, flash.Error, flash.Success)
}

func (handler *Handler) TransferOwner(c *fiber.Ctx) error {
	baby, _ := currentBaby(c)

	form := transferOwnerForm{}
	if err := c.BodyParser(&form); err != nil || form.UserID == 0 {
		return handler.respondBabyPageError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.babyService.AddBabyOwner(baby.ID, form.UserID); err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondBabyPageError(c, status, message)
	}

	return handler.redirectToBabyWithSuccess(c, baby.ID, "owner transferred")
}

func (handler *Handler) buildNewBabyPageData(c *fiber.Ctx, form babyForm, errorMessage string) fiber.Map {
	return fiber.Map{
		"Title":   handler.localizedPageTitle(c, "meta.title.baby_new"),
		"Form":    form,
		"Error":   errorMessage,
		"Genders": []string{"male", "female", "other"},
	}
}

func (handler *Handler) respondNewBabyError(c *fiber.Ctx, status int, message string, form babyForm) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	c.Status(status)
	return handler.render(c, "baby_new", handler.buildNewBabyPageData(c, form, message))
}
