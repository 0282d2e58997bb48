package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return redirectToPath(c, "/login")
	}

	babies, err := handler.babyService.GetUserBabies(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"babies": babies})
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "dashboard", fiber.Map{
		"Title":   handler.localizedPageTitle(c, "meta.title.dashboard"),
		"Babies":  babies,
		"Error":   flash.Error,
		"Success": flash.Success,
	})
}
