package services

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/cradle/internal/models"
)

var (
	ErrInvalidTrackingKind = errors.New("invalid tracking kind")
	ErrInvalidTrackingType = errors.New("invalid tracking type")
	ErrInvalidEventTime    = errors.New("invalid event time")
	ErrEndBeforeStart      = errors.New("end time before start time")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidWeight       = errors.New("invalid weight")
	ErrInvalidQuality      = errors.New("invalid sleep quality")
	ErrInvalidFeedingSide  = errors.New("invalid feeding side")
	ErrTextTooLong         = errors.New("text too long")
)

type TrackingKind string

const (
	TrackingElimination TrackingKind = "elimination"
	TrackingFeeding     TrackingKind = "feeding"
	TrackingSleep       TrackingKind = "sleep"
)

const (
	eventTimeLocalLayout = "2006-01-02T15:04"
	maxTrackingTextRunes = 500
	minSleepQuality      = 1
	maxSleepQuality      = 5
)

func ParseTrackingKind(raw string) (TrackingKind, error) {
	switch kind := TrackingKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case TrackingElimination, TrackingFeeding, TrackingSleep:
		return kind, nil
	default:
		return "", ErrInvalidTrackingKind
	}
}

// TypesFor lists the event types accepted for kind, in display order.
func (kind TrackingKind) TypesFor() []string {
	switch kind {
	case TrackingElimination:
		return []string{models.EliminationWet, models.EliminationDirty, models.EliminationMixed}
	case TrackingFeeding:
		return []string{models.FeedingBreast, models.FeedingBottle, models.FeedingSolid}
	case TrackingSleep:
		return []string{models.SleepNap, models.SleepNight}
	default:
		return nil
	}
}

func (kind TrackingKind) validateType(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, allowed := range kind.TypesFor() {
		if value == allowed {
			return value, nil
		}
	}
	return "", ErrInvalidTrackingType
}

// TrackingForm holds submitted field values by name. A key that is present
// with an empty value clears the matching optional field on edit.
type TrackingForm map[string]string

func (form TrackingForm) value(key string) (string, bool) {
	raw, ok := form[key]
	return strings.TrimSpace(raw), ok
}

// startValue reads startTime and falls back to timestamp for clients that
// post a single time field.
func (form TrackingForm) startValue() (string, bool) {
	if raw, ok := form.value("startTime"); ok && raw != "" {
		return raw, true
	}
	if raw, ok := form.value("timestamp"); ok && raw != "" {
		return raw, true
	}
	return "", false
}

// ParseEventTime accepts an HTML datetime-local value interpreted in location,
// or an RFC 3339 timestamp.
func ParseEventTime(raw string, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidEventTime
	}
	if location == nil {
		location = time.UTC
	}
	if parsed, err := time.ParseInLocation(eventTimeLocalLayout, raw, location); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, ErrInvalidEventTime
}

func parseOptionalTime(raw string, location *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseEventTime(raw, location)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalNonNegative(raw string, invalid error) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil, invalid
	}
	return &value, nil
}

func parseOptionalQuality(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < minSleepQuality || value > maxSleepQuality {
		return nil, ErrInvalidQuality
	}
	return &value, nil
}

func parseOptionalText(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(raw) > maxTrackingTextRunes {
		return nil, ErrTextTooLong
	}
	return &raw, nil
}

func parseOptionalSide(raw string) (*string, error) {
	side := strings.ToLower(raw)
	switch side {
	case "":
		return nil, nil
	case models.FeedingSideLeft, models.FeedingSideRight:
		return &side, nil
	default:
		return nil, ErrInvalidFeedingSide
	}
}

// optionalPatch parses key with parse when the key was submitted.
func optionalPatch[T any](form TrackingForm, key string, parse func(string) (*T, error)) (Patch[T], error) {
	raw, ok := form.value(key)
	if !ok {
		return Patch[T]{}, nil
	}
	value, err := parse(raw)
	if err != nil {
		return Patch[T]{}, err
	}
	return PatchFrom(value), nil
}

// requiredPatch leaves the field untouched when the key is missing or blank.
func requiredPatch[T any](raw string, ok bool, parse func(string) (T, error)) (Patch[T], error) {
	if !ok || raw == "" {
		return Patch[T]{}, nil
	}
	value, err := parse(raw)
	if err != nil {
		return Patch[T]{}, err
	}
	return SetTo(value), nil
}

func checkEndAfterStart(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

type EliminationInput struct {
	BabyID    uint
	Type      string
	Timestamp time.Time
	Weight    *float64
	Location  *string
	Notes     *string
}

type FeedingInput struct {
	BabyID    uint
	Type      string
	StartTime time.Time
	EndTime   *time.Time
	Side      *string
	Amount    *float64
	Food      *string
	Notes     *string
}

type SleepInput struct {
	BabyID          uint
	Type            string
	StartTime       time.Time
	EndTime         *time.Time
	How             *string
	WhereFellAsleep *string
	WhereSlept      *string
	Quality         *int
	Notes           *string
}

type EliminationUpdate struct {
	Type      Patch[string]
	Timestamp Patch[time.Time]
	Weight    Patch[float64]
	Location  Patch[string]
	Notes     Patch[string]
}

type FeedingUpdate struct {
	Type      Patch[string]
	StartTime Patch[time.Time]
	EndTime   Patch[time.Time]
	Side      Patch[string]
	Amount    Patch[float64]
	Food      Patch[string]
	Notes     Patch[string]
}

type SleepUpdate struct {
	Type            Patch[string]
	StartTime       Patch[time.Time]
	EndTime         Patch[time.Time]
	How             Patch[string]
	WhereFellAsleep Patch[string]
	WhereSlept      Patch[string]
	Quality         Patch[int]
	Notes           Patch[string]
}

func ParseEliminationInput(babyID uint, form TrackingForm, location *time.Location) (EliminationInput, error) {
	kindType, _ := form.value("type")
	eventType, err := TrackingElimination.validateType(kindType)
	if err != nil {
		return EliminationInput{}, err
	}
	rawTime, _ := form.value("timestamp")
	timestamp, err := ParseEventTime(rawTime, location)
	if err != nil {
		return EliminationInput{}, err
	}

	input := EliminationInput{BabyID: babyID, Type: eventType, Timestamp: timestamp}
	rawWeight, _ := form.value("weight")
	if input.Weight, err = parseOptionalNonNegative(rawWeight, ErrInvalidWeight); err != nil {
		return EliminationInput{}, err
	}
	rawLocation, _ := form.value("location")
	if input.Location, err = parseOptionalText(rawLocation); err != nil {
		return EliminationInput{}, err
	}
	rawNotes, _ := form.value("notes")
	if input.Notes, err = parseOptionalText(rawNotes); err != nil {
		return EliminationInput{}, err
	}
	return input, nil
}

func ParseFeedingInput(babyID uint, form TrackingForm, location *time.Location) (FeedingInput, error) {
	rawType, _ := form.value("type")
	eventType, err := TrackingFeeding.validateType(rawType)
	if err != nil {
		return FeedingInput{}, err
	}
	rawStart, _ := form.startValue()
	startTime, err := ParseEventTime(rawStart, location)
	if err != nil {
		return FeedingInput{}, err
	}

	input := FeedingInput{BabyID: babyID, Type: eventType, StartTime: startTime}
	rawEnd, _ := form.value("endTime")
	if input.EndTime, err = parseOptionalTime(rawEnd, location); err != nil {
		return FeedingInput{}, err
	}
	if err := checkEndAfterStart(input.StartTime, input.EndTime); err != nil {
		return FeedingInput{}, err
	}
	rawSide, _ := form.value("side")
	if input.Side, err = parseOptionalSide(rawSide); err != nil {
		return FeedingInput{}, err
	}
	rawAmount, _ := form.value("amount")
	if input.Amount, err = parseOptionalNonNegative(rawAmount, ErrInvalidAmount); err != nil {
		return FeedingInput{}, err
	}
	rawFood, _ := form.value("food")
	if input.Food, err = parseOptionalText(rawFood); err != nil {
		return FeedingInput{}, err
	}
	rawNotes, _ := form.value("notes")
	if input.Notes, err = parseOptionalText(rawNotes); err != nil {
		return FeedingInput{}, err
	}
	return input, nil
}

func ParseSleepInput(babyID uint, form TrackingForm, location *time.Location) (SleepInput, error) {
	rawType, _ := form.value("type")
	eventType, err := TrackingSleep.validateType(rawType)
	if err != nil {
		return SleepInput{}, err
	}
	rawStart, _ := form.startValue()
	startTime, err := ParseEventTime(rawStart, location)
	if err != nil {
		return SleepInput{}, err
	}

	input := SleepInput{BabyID: babyID, Type: eventType, StartTime: startTime}
	rawEnd, _ := form.value("endTime")
	if input.EndTime, err = parseOptionalTime(rawEnd, location); err != nil {
		return SleepInput{}, err
	}
	if err := checkEndAfterStart(input.StartTime, input.EndTime); err != nil {
		return SleepInput{}, err
	}
	rawQuality, _ := form.value("quality")
	if input.Quality, err = parseOptionalQuality(rawQuality); err != nil {
		return SleepInput{}, err
	}
	for key, target := range map[string]**string{
		"how":             &input.How,
		"whereFellAsleep": &input.WhereFellAsleep,
		"whereSlept":      &input.WhereSlept,
		"notes":           &input.Notes,
	} {
		raw, _ := form.value(key)
		if *target, err = parseOptionalText(raw); err != nil {
			return SleepInput{}, err
		}
	}
	return input, nil
}

func ParseEliminationUpdate(form TrackingForm, location *time.Location) (EliminationUpdate, error) {
	var update EliminationUpdate
	var err error

	rawType, hasType := form.value("type")
	if update.Type, err = requiredPatch(rawType, hasType, TrackingElimination.validateType); err != nil {
		return EliminationUpdate{}, err
	}
	rawTime, hasTime := form.value("timestamp")
	if update.Timestamp, err = requiredPatch(rawTime, hasTime, eventTimeParser(location)); err != nil {
		return EliminationUpdate{}, err
	}
	if update.Weight, err = optionalPatch(form, "weight", nonNegativeParser(ErrInvalidWeight)); err != nil {
		return EliminationUpdate{}, err
	}
	if update.Location, err = optionalPatch(form, "location", parseOptionalText); err != nil {
		return EliminationUpdate{}, err
	}
	if update.Notes, err = optionalPatch(form, "notes", parseOptionalText); err != nil {
		return EliminationUpdate{}, err
	}
	return update, nil
}

func ParseFeedingUpdate(form TrackingForm, location *time.Location) (FeedingUpdate, error) {
	var update FeedingUpdate
	var err error

	rawType, hasType := form.value("type")
	if update.Type, err = requiredPatch(rawType, hasType, TrackingFeeding.validateType); err != nil {
		return FeedingUpdate{}, err
	}
	rawStart, hasStart := form.startValue()
	if update.StartTime, err = requiredPatch(rawStart, hasStart, eventTimeParser(location)); err != nil {
		return FeedingUpdate{}, err
	}
	if update.EndTime, err = optionalPatch(form, "endTime", optionalTimeParser(location)); err != nil {
		return FeedingUpdate{}, err
	}
	if update.Side, err = optionalPatch(form, "side", parseOptionalSide); err != nil {
		return FeedingUpdate{}, err
	}
	if update.Amount, err = optionalPatch(form, "amount", nonNegativeParser(ErrInvalidAmount)); err != nil {
		return FeedingUpdate{}, err
	}
	if update.Food, err = optionalPatch(form, "food", parseOptionalText); err != nil {
		return FeedingUpdate{}, err
	}
	if update.Notes, err = optionalPatch(form, "notes", parseOptionalText); err != nil {
		return FeedingUpdate{}, err
	}
	return update, nil
}

func ParseSleepUpdate(form TrackingForm, location *time.Location) (SleepUpdate, error) {
	var update SleepUpdate
	var err error

	rawType, hasType := form.value("type")
	if update.Type, err = requiredPatch(rawType, hasType, TrackingSleep.validateType); err != nil {
		return SleepUpdate{}, err
	}
	rawStart, hasStart := form.startValue()
	if update.StartTime, err = requiredPatch(rawStart, hasStart, eventTimeParser(location)); err != nil {
		return SleepUpdate{}, err
	}
	if update.EndTime, err = optionalPatch(form, "endTime", optionalTimeParser(location)); err != nil {
		return SleepUpdate{}, err
	}
	if update.How, err = optionalPatch(form, "how", parseOptionalText); err != nil {
		return SleepUpdate{}, err
	}
	if update.WhereFellAsleep, err = optionalPatch(form, "whereFellAsleep", parseOptionalText); err != nil {
		return SleepUpdate{}, err
	}
	if update.WhereSlept, err = optionalPatch(form, "whereSlept", parseOptionalText); err != nil {
		return SleepUpdate{}, err
	}
	if update.Quality, err = optionalPatch(form, "quality", parseOptionalQuality); err != nil {
		return SleepUpdate{}, err
	}
	if update.Notes, err = optionalPatch(form, "notes", parseOptionalText); err != nil {
		return SleepUpdate{}, err
	}
	return update, nil
}

func eventTimeParser(location *time.Location) func(string) (time.Time, error) {
	return func(raw string) (time.Time, error) {
		return ParseEventTime(raw, location)
	}
}

func optionalTimeParser(location *time.Location) func(string) (*time.Time, error) {
	return func(raw string) (*time.Time, error) {
		return parseOptionalTime(raw, location)
	}
}

func nonNegativeParser(invalid error) func(string) (*float64, error) {
	return func(raw string) (*float64, error) {
		return parseOptionalNonNegative(raw, invalid)
	}
}
