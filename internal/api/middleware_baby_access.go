package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

// BabyAccess loads the baby named by the :id route param and lets the
// request through only for its owner or one of its caregivers. Anyone else
// is sent back to the dashboard.
func (handler *Handler) BabyAccess(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return redirectToPath(c, "/login")
	}

	babyID, err := parseRouteID(c, "id")
	if err != nil {
		return handler.denyBabyAccess(c)
	}

	baby, err := handler.babyService.GetBaby(babyID)
	if err != nil {
		if !errors.Is(err, services.ErrBabyNotFound) {
			handler.logger.Error("load baby failed", "path", c.Path(), "error", err)
		}
		return handler.denyBabyAccess(c)
	}
	if !services.CanAccessBaby(baby, user.ID) {
		return handler.denyBabyAccess(c)
	}

	c.Locals(contextBabyKey, baby)
	return c.Next()
}

// BabyOwnerOnly must run after BabyAccess.
func (handler *Handler) BabyOwnerOnly(c *fiber.Ctx) error {
	user, userOK := currentUser(c)
	baby, babyOK := currentBaby(c)
	if !userOK || !babyOK {
		return handler.denyBabyAccess(c)
	}
	if !services.IsBabyOwner(baby, user.ID) {
		if acceptsJSON(c) || isHTMX(c) {
			return apiError(c, fiber.StatusForbidden, "owner access required")
		}
		handler.setFlashCookie(c, FlashPayload{Error: "owner access required"})
		return redirectToPath(c, babyPath(baby.ID))
	}
	return c.Next()
}

func (handler *Handler) denyBabyAccess(c *fiber.Ctx) error {
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, services.ErrBabyNotFound.Error())
	}
	return redirectToPath(c, "/dashboard")
}

func parseRouteID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s param %q", name, raw)
	}
	return uint(value), nil
}

func babyPath(babyID uint) string {
	return "/baby/" + strconv.FormatUint(uint64(babyID), 10)
}
