package api

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/cradle/internal/models"
	"github.com/terraincognita07/cradle/internal/services"
)

const (
	displayDateTimeLayout = "2006-01-02 15:04"
	datetimeLocalLayout   = "2006-01-02T15:04"
)

func (handler *Handler) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":                 handler.templateTranslate,
		"errorText":         handler.templateErrorText,
		"successText":       handler.templateSuccessText,
		"typeLabel":         handler.templateTypeLabel,
		"relationshipLabel": handler.templateRelationshipLabel,
		"formatDate":        formatTemplateDate,
		"formatDateTime":    handler.formatTemplateDateTime,
		"formatOptTime":     handler.formatTemplateOptionalTime,
		"optText":           templateOptionalText,
		"optFloat":          templateOptionalFloat,
		"optInt":            templateOptionalInt,
		"isOwner":           services.IsBabyOwner,
		"userName":          templateUserName,
		"dict":              templateDict,
	}
}

// templateTranslate takes the params as name/value pairs:
// {{t .Lang "baby.age" "days" "12"}}.
func (handler *Handler) templateTranslate(language string, key string, pairs ...string) string {
	var params map[string]string
	if len(pairs) > 1 {
		params = make(map[string]string, len(pairs)/2)
		for index := 0; index+1 < len(pairs); index += 2 {
			params[pairs[index]] = pairs[index+1]
		}
	}
	return handler.i18n.Translate(language, key, params)
}

func (handler *Handler) templateErrorText(language string, message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	if key := errorTranslationKey(message); key != "" {
		return handler.i18n.Translate(language, key, nil)
	}
	return message
}

func (handler *Handler) templateSuccessText(language string, message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	if key := successTranslationKey(message); key != "" {
		return handler.i18n.Translate(language, key, nil)
	}
	return message
}

func (handler *Handler) templateTypeLabel(language string, eventType string) string {
	return handler.i18n.Translate(language, "tracking.type."+strings.ToLower(eventType), nil)
}

func (handler *Handler) templateRelationshipLabel(language string, relationship string) string {
	return handler.i18n.Translate(language, "relationship."+strings.ToLower(relationship), nil)
}

func formatTemplateDate(value time.Time, layout string) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(layout)
}

func (handler *Handler) formatTemplateDateTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(handler.location).Format(displayDateTimeLayout)
}

func (handler *Handler) formatTemplateOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return handler.formatTemplateDateTime(*value)
}

func templateOptionalText(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func templateOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	rounded := math.Round(*value*10) / 10
	if math.Abs(rounded-math.Round(rounded)) < 1e-9 {
		return fmt.Sprintf("%.0f", rounded)
	}
	return fmt.Sprintf("%.1f", rounded)
}

func templateOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func templateUserName(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.DisplayName()
}

func templateDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires key-value pairs")
	}
	result := make(map[string]any, len(values)/2)
	for index := 0; index < len(values); index += 2 {
		key, ok := values[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict key at index %d is not a string", index)
		}
		result[key] = values[index+1]
	}
	return result, nil
}
