package memory

import (
	"context"
	"sync"

	"github.com/gatherly/gatherly/internal/domain/event"
	"github.com/gatherly/gatherly/internal/domain/user"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type eventRecord struct {
	event       event.Event
	organizerID string
	attendees   []string // insertion-ordered set of user ids
}

// EventsRepo mirrors the mongo adapter's semantics in memory: forced DRAFT
// on create, nil result for unknown ids, set semantics for attendees.
// Used by tests and local runs without a database.
type EventsRepo struct {
	mu     sync.RWMutex
	events map[string]*eventRecord
	users  map[string]user.User
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		events: make(map[string]*eventRecord),
		users:  make(map[string]user.User),
	}
}

// AddUser registers a user record and returns its id (generated when empty).
func (r *EventsRepo) AddUser(u user.User) string {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}

	r.mu.Lock()
	r.users[u.ID] = u
	r.mu.Unlock()

	return u.ID
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	organizer, ok := r.users[req.OrganizerID]

	if !ok {
		return event.Event{}, event.ErrOrganizerNotFound
	}

	e := event.Event{
		ID:          primitive.NewObjectID().Hex(),
		Title:       req.Title,
		Date:        req.Date.UTC(),
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
		Status:      event.StatusDraft,
		Organizer: event.Organizer{
			ID:    organizer.ID,
			Name:  organizer.Name,
			Email: organizer.Email,
		},
	}

	r.events[e.ID] = &eventRecord{
		event:       e,
		organizerID: organizer.ID,
	}

	return e, nil
}

func (r *EventsRepo) FindByID(ctx context.Context, id string) (*event.Details, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.events[id]

	if !ok {
		return nil, nil
	}

	attendees := make([]event.Attendee, 0, len(rec.attendees))

	for _, userID := range rec.attendees {
		u, ok := r.users[userID]
		if !ok {
			continue
		}
		attendees = append(attendees, event.Attendee{Name: u.Name, Email: u.Email})
	}

	return &event.Details{
		Event:    rec.event,
		Atendees: attendees,
	}, nil
}

func (r *EventsRepo) FindByOrganizerID(ctx context.Context, organizerID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []event.Event{}

	for _, rec := range r.events {
		if rec.organizerID == organizerID {
			out = append(out, rec.event)
		}
	}

	return out, nil
}

func (r *EventsRepo) Search(ctx context.Context, filter event.SearchFilter) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []event.Event{}

	for _, rec := range r.events {
		if filter.Category != nil && rec.event.Category != *filter.Category {
			continue
		}

		if filter.Status != nil && rec.event.Status != *filter.Status {
			continue
		}

		out = append(out, rec.event)
	}

	return out, nil
}

func (r *EventsRepo) Update(ctx context.Context, id string, patch event.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.events[id]

	if !ok {
		return event.ErrNotFound
	}

	if patch.Title != nil {
		rec.event.Title = *patch.Title
	}
	if patch.Date != nil {
		rec.event.Date = patch.Date.UTC()
	}
	if patch.Location != nil {
		rec.event.Location = *patch.Location
	}
	if patch.Description != nil {
		rec.event.Description = *patch.Description
	}
	if patch.Category != nil {
		rec.event.Category = *patch.Category
	}
	if patch.Status != nil {
		rec.event.Status = *patch.Status
	}

	return nil
}

func (r *EventsRepo) AddAttendee(ctx context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.events[eventID]

	if !ok {
		return event.ErrNotFound
	}

	for _, existing := range rec.attendees {
		if existing == userID {
			// already attending, nothing to do
			return nil
		}
	}

	rec.attendees = append(rec.attendees, userID)

	return nil
}

func (r *EventsRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.events[eventID]

	if !ok {
		return event.ErrNotFound
	}

	for i, existing := range rec.attendees {
		if existing == userID {
			rec.attendees = append(rec.attendees[:i], rec.attendees[i+1:]...)
			return nil
		}
	}

	return nil
}
