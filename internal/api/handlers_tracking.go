package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/services"
)

type trackingPage struct {
	Kind    services.TrackingKind
	EventID uint
	Values  map[string]string
}

func (page trackingPage) isEdit() bool {
	return page.EventID != 0
}

func (page trackingPage) action(babyID uint) string {
	if page.isEdit() {
		return babyPath(babyID) + "/edit/" + string(page.Kind) + "/" + strconv.FormatUint(uint64(page.EventID), 10)
	}
	return babyPath(babyID) + "/track/" + string(page.Kind)
}

func (handler *Handler) ShowTrackForm(c *fiber.Ctx) error {
	kind, err := services.ParseTrackingKind(c.Params("type"))
	if err != nil {
		return handler.NotFound(c)
	}
	page := trackingPage{Kind: kind, Values: handler.newTrackingFormValues(kind)}
	return handler.renderTrackingPage(c, fiber.StatusOK, page, "")
}

func (handler *Handler) TrackEvent(c *fiber.Ctx) error {
	baby, _ := currentBaby(c)
	kind, err := services.ParseTrackingKind(c.Params("type"))
	if err != nil {
		return handler.NotFound(c)
	}

	form, err := parseTrackingForm(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := handler.recordTrackingEvent(kind, baby.ID, form)
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		return handler.respondTrackingError(c, status, message, trackingPage{Kind: kind, Values: form})
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "event": event})
	}
	return redirectToPath(c, babyPath(baby.ID))
}

func (handler *Handler) ShowEditTrackingForm(c *fiber.Ctx) error {
	kind, event, err := handler.loadBabyTrackingEvent(c)
	if err != nil {
		return handler.respondTrackingLookupError(c, err)
	}
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"event": event.Value})
	}

	eventID, _ := parseRouteID(c, "eventId")
	page := trackingPage{Kind: kind, EventID: eventID, Values: event.Form}
	return handler.renderTrackingPage(c, fiber.StatusOK, page, "")
}

func (handler *Handler) EditTrackingEvent(c *fiber.Ctx) error {
	baby, _ := currentBaby(c)
	kind, _, err := handler.loadBabyTrackingEvent(c)
	if err != nil {
		return handler.respondTrackingLookupError(c, err)
	}
	eventID, _ := parseRouteID(c, "eventId")

	form, err := parseTrackingForm(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	updated, err := handler.updateTrackingEvent(kind, eventID, form)
	if err != nil {
		status, message := handler.classifyServiceError(c, err)
		page := trackingPage{Kind: kind, EventID: eventID, Values: form}
		return handler.respondTrackingError(c, status, message, page)
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "event": updated})
	}
	return redirectToPath(c, babyPath(baby.ID))
}

// loadBabyTrackingEvent resolves :trackingType and :eventId and makes sure the
// event belongs to the baby that BabyAccess already authorized.
func (handler *Handler) loadBabyTrackingEvent(c *fiber.Ctx) (services.TrackingKind, trackedEvent, error) {
	baby, _ := currentBaby(c)
	kind, err := services.ParseTrackingKind(c.Params("trackingType"))
	if err != nil {
		return "", trackedEvent{}, err
	}
	eventID, err := parseRouteID(c, "eventId")
	if err != nil {
		return "", trackedEvent{}, services.ErrTrackingEventNotFound
	}

	event, err := handler.findTrackingEvent(kind, eventID)
	if err != nil {
		return "", trackedEvent{}, err
	}
	if event.BabyID != baby.ID {
		return "", trackedEvent{}, services.ErrTrackingEventNotFound
	}
	return kind, event, nil
}

func (handler *Handler) renderTrackingPage(c *fiber.Ctx, status int, page trackingPage, errorMessage string) error {
	baby, _ := currentBaby(c)
	titleKey := "meta.title.track"
	if page.isEdit() {
		titleKey = "meta.title.edit_tracking"
	}

	c.Status(status)
	return handler.render(c, "track", fiber.Map{
		"Title":  handler.localizedPageTitle(c, titleKey),
		"Baby":   baby,
		"Kind":   string(page.Kind),
		"Types":  page.Kind.TypesFor(),
		"Values": page.Values,
		"IsEdit": page.isEdit(),
		"Action": page.action(baby.ID),
		"Error":  errorMessage,
	})
}

func (handler *Handler) respondTrackingError(c *fiber.Ctx, status int, message string, page trackingPage) error {
	if wantsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	return handler.renderTrackingPage(c, status, page, message)
}

func (handler *Handler) respondTrackingLookupError(c *fiber.Ctx, err error) error {
	status, message := handler.classifyServiceError(c, err)
	if status == fiber.StatusBadRequest {
		status = fiber.StatusNotFound
	}
	if wantsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	if status == fiber.StatusNotFound {
		return handler.NotFound(c)
	}
	return apiError(c, status, message)
}
