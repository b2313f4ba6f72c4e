package usecase

import (
	"context"

	"github.com/gatherly/gatherly/internal/domain/event"
)

// EventStore is the persistence contract the use-cases are written against.
// A single concrete adapter (mongo in production, memory in tests) is passed
// in at startup; there is no runtime wiring beyond the constructor.
type EventStore interface {
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	// FindByID returns (nil, nil) when the id is unknown; callers translate
	// that into their own not-found response.
	FindByID(ctx context.Context, id string) (*event.Details, error)
	FindByOrganizerID(ctx context.Context, organizerID string) ([]event.Event, error)
	Search(ctx context.Context, filter event.SearchFilter) ([]event.Event, error)
	Update(ctx context.Context, id string, patch event.Patch) error
	AddAttendee(ctx context.Context, eventID, userID string) error
	RemoveAttendee(ctx context.Context, eventID, userID string) error
}

// Events groups the application operations. Each method is one verb and
// does nothing beyond delegating to the store.
type Events struct {
	store EventStore
}

func NewEvents(store EventStore) *Events {
	return &Events{store: store}
}

func (u *Events) CreateEvent(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	return u.store.Create(ctx, req)
}

func (u *Events) FindEventByID(ctx context.Context, id string) (*event.Details, error) {
	return u.store.FindByID(ctx, id)
}

func (u *Events) FindEventsByOrganizer(ctx context.Context, organizerID string) ([]event.Event, error) {
	return u.store.FindByOrganizerID(ctx, organizerID)
}

func (u *Events) SearchEvents(ctx context.Context, filter event.SearchFilter) ([]event.Event, error) {
	return u.store.Search(ctx, filter)
}

// ConfirmEvent moves the event to CONFIRMED without checking the current
// status; confirming a CONFIRMED event is a no-op by construction.
func (u *Events) ConfirmEvent(ctx context.Context, id string) error {
	status := event.StatusConfirmed

	return u.store.Update(ctx, id, event.Patch{Status: &status})
}

func (u *Events) AddAttendee(ctx context.Context, eventID, userID string) error {
	return u.store.AddAttendee(ctx, eventID, userID)
}

func (u *Events) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	return u.store.RemoveAttendee(ctx, eventID, userID)
}
