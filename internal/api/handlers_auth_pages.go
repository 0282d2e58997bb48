package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Root(c *fiber.Ctx) error {
	if handler.optionalAuthenticatedUser(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if handler.optionalAuthenticatedUser(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)
	data := handler.buildLoginPageData(c, flash.Error, c.Query("email"))
	data["Success"] = flash.Success
	return handler.render(c, "login", data)
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	if handler.optionalAuthenticatedUser(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "register", handler.buildRegisterPageData(c, flash.Error, registerInput{Email: c.Query("email")}))
}

func (handler *Handler) buildLoginPageData(c *fiber.Ctx, errorMessage string, email string) fiber.Map {
	return fiber.Map{
		"Title":   handler.localizedPageTitle(c, "meta.title.login"),
		"Error":   errorMessage,
		"Email":   normalizeLoginEmail(email),
		"Success": "",
	}
}

func (handler *Handler) buildRegisterPageData(c *fiber.Ctx, errorMessage string, input registerInput) fiber.Map {
	return fiber.Map{
		"Title":     handler.localizedPageTitle(c, "meta.title.register"),
		"Error":     errorMessage,
		"Email":     normalizeLoginEmail(input.Email),
		"FirstName": input.FirstName,
		"LastName":  input.LastName,
		"Phone":     input.Phone,
	}
}
