package api

import "github.com/terraincognita07/cradle/internal/services"

// trackedEvent is one loaded event of any kind along with its form values.
type trackedEvent struct {
	BabyID uint
	Value  any
	Form   map[string]string
}

func (handler *Handler) findTrackingEvent(kind services.TrackingKind, eventID uint) (trackedEvent, error) {
	switch kind {
	case services.TrackingElimination:
		event, err := handler.trackingService.GetElimination(eventID)
		if err != nil {
			return trackedEvent{}, err
		}
		return trackedEvent{BabyID: event.BabyID, Value: event, Form: handler.eliminationFormValues(event)}, nil
	case services.TrackingFeeding:
		event, err := handler.trackingService.GetFeeding(eventID)
		if err != nil {
			return trackedEvent{}, err
		}
		return trackedEvent{BabyID: event.BabyID, Value: event, Form: handler.feedingFormValues(event)}, nil
	case services.TrackingSleep:
		event, err := handler.trackingService.GetSleep(eventID)
		if err != nil {
			return trackedEvent{}, err
		}
		return trackedEvent{BabyID: event.BabyID, Value: event, Form: handler.sleepFormValues(event)}, nil
	default:
		return trackedEvent{}, services.ErrInvalidTrackingKind
	}
}

func (handler *Handler) recordTrackingEvent(kind services.TrackingKind, babyID uint, form services.TrackingForm) (any, error) {
	switch kind {
	case services.TrackingElimination:
		input, err := services.ParseEliminationInput(babyID, form, handler.location)
		if err != nil {
			return nil, err
		}
		return handler.trackingService.TrackElimination(input)
	case services.TrackingFeeding:
		input, err := services.ParseFeedingInput(babyID, form, handler.location)
		if err != nil {
			return nil, err
		}
		return handler.trackingService.TrackFeeding(input)
	case services.TrackingSleep:
		input, err := services.ParseSleepInput(babyID, form, handler.location)
		if err != nil {
			return nil, err
		}
		return handler.trackingService.TrackSleep(input)
	default:
		return nil, services.ErrInvalidTrackingKind
	}
}

func (handler *Handler) updateTrackingEvent(kind services.TrackingKind, eventID uint, form services.TrackingForm) (any, error) {
	switch kind {
	case services.TrackingElimination:
		update, err := services.ParseEliminationUpdate(form, handler.location)
		if err != nil {
			return nil, err
		}
		return handler.trackingService.EditElimination(eventID, update)
	case services.TrackingFeeding:
		update, err := services.ParseFeedingUpdate(form, handler.location)
		if err != nil {
			return nil, err
		}
		return handler.trackingService.EditFeeding(eventID, update)
	case services.TrackingSleep:
		update, err := services.ParseSleepUpdate(form, handler.location)
		if err != nil {
			return nil, err
		}
		return handler.trackingService.EditSleep(eventID, update)
	default:
		return nil, services.ErrInvalidTrackingKind
	}
}
