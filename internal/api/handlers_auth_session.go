package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input, err := parseRegisterInput(c)
	if err != nil {
		return handler.respondRegisterError(c, fiber.StatusBadRequest, "invalid input", input)
	}
	if input.ConfirmPassword != "" && input.Password != input.ConfirmPassword {
		return handler.respondRegisterError(c, fiber.StatusBadRequest, "password mismatch", input)
	}

	user, err := handler.authService.CreateUser(services.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondRegisterError(c, status, message, input)
	}

	if err := handler.setAuthCookie(c, user.ID, false); err != nil {
		handler.logger.Error("create session failed", "user_id", user.ID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":   true,
			"user": user.Profile(),
		})
	}
	return redirectToPath(c, "/dashboard")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return handler.respondLoginError(c, fiber.StatusBadRequest, "invalid input", credentials.Email)
	}

	profile, err := handler.authService.VerifyLogin(credentials.Email, credentials.Password)
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondLoginError(c, status, message, credentials.Email)
	}

	if err := handler.setAuthCookie(c, profile.ID, credentials.RememberMe); err != nil {
		handler.logger.Error("create session failed", "user_id", profile.ID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "user": profile})
	}
	return redirectToPath(c, "/dashboard")
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	if !acceptsJSON(c) {
		handler.setFlashCookie(c, FlashPayload{Success: "signed out"})
	}
	return redirectOrJSON(c, "/login")
}

func (handler *Handler) LogoutRedirect(c *fiber.Ctx) error {
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) respondLoginError(c *fiber.Ctx, status int, message string, email string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	c.Status(status)
	return handler.render(c, "login", handler.buildLoginPageData(c, message, email))
}

func (handler *Handler) respondRegisterError(c *fiber.Ctx, status int, message string, input registerInput) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	c.Status(status)
	return handler.render(c, "register", handler.buildRegisterPageData(c, message, input))
}
