package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cradle/internal/models"
	"github.com/terraincognita07/cradle/internal/services"
)

var errInvalidTrackingPayload = errors.New("invalid input")

// parseTrackingForm collects the submitted fields from a form or JSON body.
// JSON null becomes an empty value so that edits can clear optional fields.
func parseTrackingForm(c *fiber.Ctx) (services.TrackingForm, error) {
	form := services.TrackingForm{}
	if c.Is("json") {
		payload := map[string]any{}
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return nil, errInvalidTrackingPayload
		}
		for key, value := range payload {
			switch typed := value.(type) {
			case nil:
				form[key] = ""
			case string:
				form[key] = typed
			case float64:
				form[key] = strconv.FormatFloat(typed, 'f', -1, 64)
			case bool:
				form[key] = strconv.FormatBool(typed)
			default:
				return nil, errInvalidTrackingPayload
			}
		}
		return form, nil
	}

	c.Request().PostArgs().VisitAll(func(key []byte, value []byte) {
		form[string(key)] = string(value)
	})
	delete(form, csrfFormField)
	return form, nil
}

func (handler *Handler) formatDatetimeLocal(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(handler.location).Format(datetimeLocalLayout)
}

func (handler *Handler) formatOptionalDatetimeLocal(value *time.Time) string {
	if value == nil {
		return ""
	}
	return handler.formatDatetimeLocal(*value)
}

// newTrackingFormValues pre-fills the time field with the current minute.
func (handler *Handler) newTrackingFormValues(kind services.TrackingKind) map[string]string {
	now := handler.formatDatetimeLocal(time.Now())
	values := map[string]string{"type": kind.TypesFor()[0]}
	if kind == services.TrackingElimination {
		values["timestamp"] = now
	} else {
		values["startTime"] = now
	}
	return values
}

func (handler *Handler) eliminationFormValues(event *models.Elimination) map[string]string {
	return map[string]string{
		"type":      event.Type,
		"timestamp": handler.formatDatetimeLocal(event.Timestamp),
		"weight":    templateOptionalFloat(event.Weight),
		"location":  templateOptionalText(event.Location),
		"notes":     templateOptionalText(event.Notes),
	}
}

func (handler *Handler) feedingFormValues(event *models.Feeding) map[string]string {
	return map[string]string{
		"type":      event.Type,
		"startTime": handler.formatDatetimeLocal(event.StartTime),
		"endTime":   handler.formatOptionalDatetimeLocal(event.EndTime),
		"side":      templateOptionalText(event.Side),
		"amount":    templateOptionalFloat(event.Amount),
		"food":      templateOptionalText(event.Food),
		"notes":     templateOptionalText(event.Notes),
	}
}

func (handler *Handler) sleepFormValues(event *models.Sleep) map[string]string {
	return map[string]string{
		"type":            event.Type,
		"startTime":       handler.formatDatetimeLocal(event.StartTime),
		"endTime":         handler.formatOptionalDatetimeLocal(event.EndTime),
		"how":             templateOptionalText(event.How),
		"whereFellAsleep": templateOptionalText(event.WhereFellAsleep),
		"whereSlept":      templateOptionalText(event.WhereSlept),
		"quality":         templateOptionalInt(event.Quality),
		"notes":           templateOptionalText(event.Notes),
	}
}
