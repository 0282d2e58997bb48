package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	user := handler.optionalAuthenticatedUser(c)
	if user != nil {
		c.Locals(contextUserKey, user)
	}

	primaryPath := "/login"
	primaryLabelKey := "not_found.action_login"
	if user != nil {
		primaryPath = "/dashboard"
		primaryLabelKey = "not_found.action_dashboard"
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":           handler.localizedPageTitle(c, "meta.title.not_found"),
		"PrimaryPath":     primaryPath,
		"PrimaryLabelKey": primaryLabelKey,
	})
}
