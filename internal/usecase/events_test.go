package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/gatherly/internal/domain/event"
	"github.com/gatherly/gatherly/internal/usecase"
)

// fake store in the style of the handler tests: one function field per method

type fakeStore struct {
	createFn         func(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	findByIDFn       func(ctx context.Context, id string) (*event.Details, error)
	findByOrgFn      func(ctx context.Context, organizerID string) ([]event.Event, error)
	searchFn         func(ctx context.Context, filter event.SearchFilter) ([]event.Event, error)
	updateFn         func(ctx context.Context, id string, patch event.Patch) error
	addAttendeeFn    func(ctx context.Context, eventID, userID string) error
	removeAttendeeFn func(ctx context.Context, eventID, userID string) error
}

func (f *fakeStore) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return event.Event{}, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*event.Details, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeStore) FindByOrganizerID(ctx context.Context, organizerID string) ([]event.Event, error) {
	if f.findByOrgFn != nil {
		return f.findByOrgFn(ctx, organizerID)
	}
	return nil, nil
}

func (f *fakeStore) Search(ctx context.Context, filter event.SearchFilter) ([]event.Event, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, patch event.Patch) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, patch)
	}
	return nil
}

func (f *fakeStore) AddAttendee(ctx context.Context, eventID, userID string) error {
	if f.addAttendeeFn != nil {
		return f.addAttendeeFn(ctx, eventID, userID)
	}
	return nil
}

func (f *fakeStore) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	if f.removeAttendeeFn != nil {
		return f.removeAttendeeFn(ctx, eventID, userID)
	}
	return nil
}

func TestConfirmEventSetsConfirmedStatus(t *testing.T) {
	var gotID string
	var gotPatch event.Patch

	store := &fakeStore{
		updateFn: func(ctx context.Context, id string, patch event.Patch) error {
			gotID = id
			gotPatch = patch
			return nil
		},
	}

	u := usecase.NewEvents(store)

	if err := u.ConfirmEvent(context.Background(), "abc123"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if gotID != "abc123" {
		t.Fatalf("update called with id %q", gotID)
	}

	if gotPatch.Status == nil || *gotPatch.Status != event.StatusConfirmed {
		t.Fatalf("patch status = %v, want CONFIRMED", gotPatch.Status)
	}

	// confirm touches nothing but the status
	if gotPatch.Title != nil || gotPatch.Date != nil || gotPatch.Location != nil ||
		gotPatch.Description != nil || gotPatch.Category != nil {
		t.Fatalf("patch mutated more than status: %+v", gotPatch)
	}
}

func TestCreateEventPropagatesOrganizerNotFound(t *testing.T) {
	store := &fakeStore{
		createFn: func(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
			return event.Event{}, event.ErrOrganizerNotFound
		},
	}

	u := usecase.NewEvents(store)

	_, err := u.CreateEvent(context.Background(), event.CreateEventRequest{
		Title:       "Go Meetup",
		Date:        time.Now().Add(time.Hour),
		Location:    "Berlin",
		Description: "Talks and pizza afterwards",
		Category:    event.CategoryMeetup,
		OrganizerID: "aaaaaaaaaaaaaaaaaaaaaaaa",
	})

	if !errors.Is(err, event.ErrOrganizerNotFound) {
		t.Fatalf("err = %v, want ErrOrganizerNotFound", err)
	}
}

func TestFindEventByIDPassesThroughNil(t *testing.T) {
	u := usecase.NewEvents(&fakeStore{})

	details, err := u.FindEventByID(context.Background(), "ffffffffffffffffffffffff")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details != nil {
		t.Fatalf("details = %+v, want nil", details)
	}
}
