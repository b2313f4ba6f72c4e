package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gatherly/gatherly/internal/domain/event"
	"github.com/gin-gonic/gin"
)

// EventsService is the slice of the use-case layer this handler needs.
type EventsService interface {
	CreateEvent(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	FindEventByID(ctx context.Context, id string) (*event.Details, error)
	FindEventsByOrganizer(ctx context.Context, organizerID string) ([]event.Event, error)
	SearchEvents(ctx context.Context, filter event.SearchFilter) ([]event.Event, error)
	ConfirmEvent(ctx context.Context, id string) error
	AddAttendee(ctx context.Context, eventID, userID string) error
	RemoveAttendee(ctx context.Context, eventID, userID string) error
}

type EventsHandler struct {
	svc EventsService
}

func NewEventsHandler(svc EventsService) *EventsHandler {
	return &EventsHandler{svc: svc}
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), req)

	if err != nil {
		if errors.Is(err, event.ErrOrganizerNotFound) {
			RespondNotFound(ctx, "Organizer not found")
			return
		}

		RespondInternal(ctx, "Could not create event")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	id := ctx.Param("id")

	details, err := h.svc.FindEventByID(ctx.Request.Context(), id)

	if err != nil {
		RespondInternal(ctx, "Could not fetch event")
		return
	}

	// absent is a value here, not an error
	if details == nil {
		RespondNotFound(ctx, "Event not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, details)
}

func (h *EventsHandler) GetEventsByOrganizer(ctx *gin.Context) {
	organizerID := ctx.Param("organizerId")

	events, err := h.svc.FindEventsByOrganizer(ctx.Request.Context(), organizerID)

	if err != nil {
		RespondInternal(ctx, "Could not fetch events")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"events": events,
	})
}

func (h *EventsHandler) SearchEvents(ctx *gin.Context) {
	var filter event.SearchFilter

	if !BindQuery(ctx, &filter) {
		return
	}

	events, err := h.svc.SearchEvents(ctx.Request.Context(), filter)

	if err != nil {
		RespondInternal(ctx, "Could not search events")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"events": events,
	})
}

// ConfirmEvent trusts the caller: ownership is enforced upstream at the BFF,
// not here. A direct API caller can confirm any event.
func (h *EventsHandler) ConfirmEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	err := h.svc.ConfirmEvent(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not confirm event")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *EventsHandler) AddAttendee(ctx *gin.Context) {
	err := h.svc.AddAttendee(ctx.Request.Context(), ctx.Param("id"), ctx.Param("userId"))

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not add attendee")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *EventsHandler) RemoveAttendee(ctx *gin.Context) {
	err := h.svc.RemoveAttendee(ctx.Request.Context(), ctx.Param("id"), ctx.Param("userId"))

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not remove attendee")
		return
	}

	ctx.Status(http.StatusNoContent)
}
