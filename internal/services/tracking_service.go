package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cradle/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrTrackingEventNotFound  = errors.New("tracking event not found")
	ErrTrackEventFailed       = errors.New("track event failed")
	ErrUpdateTrackingFailed   = errors.New("update tracking event failed")
	ErrLoadRecentEventsFailed = errors.New("load recent tracking events failed")
)

const DefaultRecentEventsLimit = 5

type TrackingRepository interface {
	CreateElimination(entry *models.Elimination) error
	CreateFeeding(entry *models.Feeding) error
	CreateSleep(entry *models.Sleep) error
	FindElimination(id uint) (models.Elimination, error)
	FindFeeding(id uint) (models.Feeding, error)
	FindSleep(id uint) (models.Sleep, error)
	UpdateElimination(id uint, updates map[string]any) (int64, error)
	UpdateFeeding(id uint, updates map[string]any) (int64, error)
	UpdateSleep(id uint, updates map[string]any) (int64, error)
	ListRecentEliminations(ctx context.Context, babyID uint, limit int) ([]models.Elimination, error)
	ListRecentFeedings(ctx context.Context, babyID uint, limit int) ([]models.Feeding, error)
	ListRecentSleeps(ctx context.Context, babyID uint, limit int) ([]models.Sleep, error)
}

// TrackingService records and edits care events. Callers check baby access
// before calling; the service does not re-check ownership.
type TrackingService struct {
	events  TrackingRepository
	options serviceOptions
}

func NewTrackingService(events TrackingRepository, opts ...Option) *TrackingService {
	return &TrackingService{events: events, options: buildServiceOptions(opts)}
}

// TrackElimination stores the event. Success is always recorded as true.
func (service *TrackingService) TrackElimination(input EliminationInput) (*models.Elimination, error) {
	eventType, err := TrackingElimination.validateType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.Timestamp.IsZero() {
		return nil, ErrInvalidEventTime
	}
	if input.Weight != nil && *input.Weight < 0 {
		return nil, ErrInvalidWeight
	}

	entry := models.Elimination{
		BabyID:    input.BabyID,
		Type:      eventType,
		Timestamp: input.Timestamp.UTC(),
		Weight:    input.Weight,
		Location:  input.Location,
		Notes:     input.Notes,
		Success:   true,
	}
	if err := service.events.CreateElimination(&entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTrackEventFailed, err)
	}
	service.recorded(TrackingElimination, input.BabyID, entry.ID)
	return &entry, nil
}

func (service *TrackingService) TrackFeeding(input FeedingInput) (*models.Feeding, error) {
	eventType, err := TrackingFeeding.validateType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.StartTime.IsZero() {
		return nil, ErrInvalidEventTime
	}
	if err := checkEndAfterStart(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if input.Amount != nil && *input.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	entry := models.Feeding{
		BabyID:    input.BabyID,
		Type:      eventType,
		StartTime: input.StartTime.UTC(),
		EndTime:   utcPointer(input.EndTime),
		Side:      input.Side,
		Amount:    input.Amount,
		Food:      input.Food,
		Notes:     input.Notes,
	}
	if err := service.events.CreateFeeding(&entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTrackEventFailed, err)
	}
	service.recorded(TrackingFeeding, input.BabyID, entry.ID)
	return &entry, nil
}

func (service *TrackingService) TrackSleep(input SleepInput) (*models.Sleep, error) {
	eventType, err := TrackingSleep.validateType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.StartTime.IsZero() {
		return nil, ErrInvalidEventTime
	}
	if err := checkEndAfterStart(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if input.Quality != nil && (*input.Quality < minSleepQuality || *input.Quality > maxSleepQuality) {
		return nil, ErrInvalidQuality
	}

	entry := models.Sleep{
		BabyID:          input.BabyID,
		Type:            eventType,
		StartTime:       input.StartTime.UTC(),
		EndTime:         utcPointer(input.EndTime),
		How:             input.How,
		WhereFellAsleep: input.WhereFellAsleep,
		WhereSlept:      input.WhereSlept,
		Quality:         input.Quality,
		Notes:           input.Notes,
	}
	if err := service.events.CreateSleep(&entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTrackEventFailed, err)
	}
	service.recorded(TrackingSleep, input.BabyID, entry.ID)
	return &entry, nil
}

func (service *TrackingService) GetElimination(id uint) (*models.Elimination, error) {
	entry, err := service.events.FindElimination(id)
	if err != nil {
		return nil, translateTrackingLookupError(err)
	}
	return &entry, nil
}

func (service *TrackingService) GetFeeding(id uint) (*models.Feeding, error) {
	entry, err := service.events.FindFeeding(id)
	if err != nil {
		return nil, translateTrackingLookupError(err)
	}
	return &entry, nil
}

func (service *TrackingService) GetSleep(id uint) (*models.Sleep, error) {
	entry, err := service.events.FindSleep(id)
	if err != nil {
		return nil, translateTrackingLookupError(err)
	}
	return &entry, nil
}

func (service *TrackingService) EditElimination(id uint, update EliminationUpdate) (*models.Elimination, error) {
	current, err := service.GetElimination(id)
	if err != nil {
		return nil, err
	}
	if err := validateEventPatch(TrackingElimination, update.Type, update.Timestamp); err != nil {
		return nil, err
	}
	if weight := update.Weight.resolve(current.Weight); weight != nil && *weight < 0 {
		return nil, ErrInvalidWeight
	}

	updates := map[string]any{}
	update.Type.applyTo(updates, "type")
	update.Timestamp.applyTo(updates, "timestamp")
	update.Weight.applyTo(updates, "weight")
	update.Location.applyTo(updates, "location")
	update.Notes.applyTo(updates, "notes")

	if err := service.applyUpdate(service.events.UpdateElimination, id, updates); err != nil {
		return nil, err
	}
	return service.GetElimination(id)
}

func (service *TrackingService) EditFeeding(id uint, update FeedingUpdate) (*models.Feeding, error) {
	current, err := service.GetFeeding(id)
	if err != nil {
		return nil, err
	}
	if err := validateEventPatch(TrackingFeeding, update.Type, update.StartTime); err != nil {
		return nil, err
	}
	start := update.StartTime.resolve(&current.StartTime)
	if err := checkEndAfterStart(*start, update.EndTime.resolve(current.EndTime)); err != nil {
		return nil, err
	}
	if amount := update.Amount.resolve(current.Amount); amount != nil && *amount < 0 {
		return nil, ErrInvalidAmount
	}

	updates := map[string]any{}
	update.Type.applyTo(updates, "type")
	update.StartTime.applyTo(updates, "start_time")
	update.EndTime.applyTo(updates, "end_time")
	update.Side.applyTo(updates, "side")
	update.Amount.applyTo(updates, "amount")
	update.Food.applyTo(updates, "food")
	update.Notes.applyTo(updates, "notes")

	if err := service.applyUpdate(service.events.UpdateFeeding, id, updates); err != nil {
		return nil, err
	}
	return service.GetFeeding(id)
}

func (service *TrackingService) EditSleep(id uint, update SleepUpdate) (*models.Sleep, error) {
	current, err := service.GetSleep(id)
	if err != nil {
		return nil, err
	}
	if err := validateEventPatch(TrackingSleep, update.Type, update.StartTime); err != nil {
		return nil, err
	}
	start := update.StartTime.resolve(&current.StartTime)
	if err := checkEndAfterStart(*start, update.EndTime.resolve(current.EndTime)); err != nil {
		return nil, err
	}
	if quality := update.Quality.resolve(current.Quality); quality != nil && (*quality < minSleepQuality || *quality > maxSleepQuality) {
		return nil, ErrInvalidQuality
	}

	updates := map[string]any{}
	update.Type.applyTo(updates, "type")
	update.StartTime.applyTo(updates, "start_time")
	update.EndTime.applyTo(updates, "end_time")
	update.How.applyTo(updates, "how")
	update.WhereFellAsleep.applyTo(updates, "where_fell_asleep")
	update.WhereSlept.applyTo(updates, "where_slept")
	update.Quality.applyTo(updates, "quality")
	update.Notes.applyTo(updates, "notes")

	if err := service.applyUpdate(service.events.UpdateSleep, id, updates); err != nil {
		return nil, err
	}
	return service.GetSleep(id)
}

// GetRecentTrackingEvents loads the latest events of each kind for the baby.
// The three queries run concurrently and the first failure cancels the rest.
func (service *TrackingService) GetRecentTrackingEvents(ctx context.Context, babyID uint, limit int) (models.RecentTrackingEvents, error) {
	if limit <= 0 {
		limit = DefaultRecentEventsLimit
	}

	var recent models.RecentTrackingEvents
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		entries, err := service.events.ListRecentEliminations(groupCtx, babyID, limit)
		recent.Eliminations = entries
		return err
	})
	group.Go(func() error {
		entries, err := service.events.ListRecentFeedings(groupCtx, babyID, limit)
		recent.Feedings = entries
		return err
	})
	group.Go(func() error {
		entries, err := service.events.ListRecentSleeps(groupCtx, babyID, limit)
		recent.SleepSessions = entries
		return err
	})

	if err := group.Wait(); err != nil {
		return models.RecentTrackingEvents{}, fmt.Errorf("%w: %v", ErrLoadRecentEventsFailed, err)
	}
	return recent, nil
}

func (service *TrackingService) applyUpdate(update func(uint, map[string]any) (int64, error), id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	affected, err := update(id, updates)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateTrackingFailed, err)
	}
	if affected == 0 {
		return ErrTrackingEventNotFound
	}
	return nil
}

func (service *TrackingService) recorded(kind TrackingKind, babyID uint, eventID uint) {
	service.options.metrics.IncrementTrackingEvent(string(kind))
	service.options.logger.Info("tracking event recorded", "kind", string(kind), "baby_id", babyID, "event_id", eventID)
}

// validateEventPatch rejects clearing the event type or its main time and
// checks a new type against the kind.
func validateEventPatch(kind TrackingKind, eventType Patch[string], eventTime Patch[time.Time]) error {
	if eventType.Present {
		if eventType.Value == nil {
			return ErrInvalidTrackingType
		}
		if _, err := kind.validateType(*eventType.Value); err != nil {
			return err
		}
	}
	if eventTime.Present && (eventTime.Value == nil || eventTime.Value.IsZero()) {
		return ErrInvalidEventTime
	}
	return nil
}

func translateTrackingLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTrackingEventNotFound
	}
	return err
}

func utcPointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
