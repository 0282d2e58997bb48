package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

// renderBabyPage serves the baby detail view. POST handlers on the same page
// reuse it to show their validation error with the failing status code.
func (handler *Handler) renderBabyPage(c *fiber.Ctx, status int, errorMessage string, successMessage string) error {
	user, _ := currentUser(c)
	baby, _ := currentBaby(c)

	recent, err := handler.trackingService.GetRecentTrackingEvents(c.UserContext(), baby.ID, services.DefaultRecentEventsLimit)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	isOwner := services.IsBabyOwner(baby, user.ID)
	canLog := services.CanLogForBaby(baby, user.ID)

	if acceptsJSON(c) {
		return c.Status(status).JSON(fiber.Map{
			"baby":         baby,
			"isOwner":      isOwner,
			"canLog":       canLog,
			"recentEvents": recent,
		})
	}

	invites, err := handler.babyService.ListInvites(baby.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	c.Status(status)
	return handler.render(c, "baby", fiber.Map{
		"Title":         handler.localizedPageTitle(c, "meta.title.baby"),
		"Baby":          baby,
		"IsOwner":       isOwner,
		"CanLog":        canLog,
		"Recent":        recent,
		"Invites":       invites,
		"TrackingKinds": []services.TrackingKind{services.TrackingFeeding, services.TrackingSleep, services.TrackingElimination},
		"Error":         errorMessage,
		"Success":       successMessage,
	})
}

func (handler *Handler) respondBabyPageError(c *fiber.Ctx, status int, message string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	return handler.renderBabyPage(c, status, message, "")
}

func (handler *Handler) redirectToBabyWithSuccess(c *fiber.Ctx, babyID uint, message string) error {
	if !acceptsJSON(c) {
		handler.setFlashCookie(c, FlashPayload{Success: message})
	}
	return redirectOrJSON(c, babyPath(babyID))
}

func (handler *Handler) RedirectToBaby(c *fiber.Ctx) error {
	babyID, err := parseRouteID(c, "id")
	if err != nil {
		return redirectToPath(c, "/dashboard")
	}
	return redirectToPath(c, babyPath(babyID))
}
