package event

import (
	"errors"
	"time"
)

type Category string

const (
	CategoryWorkshop Category = "WORKSHOP"
	CategoryMeetup   Category = "MEETUP"
	CategoryTalk     Category = "TALK"
	CategorySocial   Category = "SOCIAL"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
	// CANCELLED is accepted as a valid value (search filters, stored data)
	// but nothing transitions an event into it yet.
	StatusCancelled Status = "CANCELLED"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWorkshop, CategoryMeetup, CategoryTalk, CategorySocial:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Organizer is the denormalized owner reference attached at read time.
type Organizer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	Organizer   Organizer `json:"organizer"`
}

// Details is the single-event read shape; the attendee list keeps the
// legacy "atendees" field name the web clients already depend on.
type Details struct {
	Event
	Atendees []Attendee `json:"atendees"`
}

var (
	ErrNotFound          = errors.New("event not found")
	ErrOrganizerNotFound = errors.New("organizer not found")
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=100"`
	Date        time.Time `json:"date" binding:"required,gt"`
	Location    string    `json:"location" binding:"required,min=3,max=100"`
	Description string    `json:"description" binding:"required,min=10,max=500"`
	Category    Category  `json:"category" binding:"required,oneof=WORKSHOP MEETUP TALK SOCIAL"`
	OrganizerID string    `json:"organizerId" binding:"required,len=24"`
}

// with pointers if optional, it will be nil
type SearchFilter struct {
	Category *Category `form:"category" binding:"omitempty,oneof=WORKSHOP MEETUP TALK SOCIAL"`
	Status   *Status   `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
}

// Patch carries the mutable fields for partial updates. ID and organizer
// are deliberately absent: both are immutable after creation.
type Patch struct {
	Title       *string
	Date        *time.Time
	Location    *string
	Description *string
	Category    *Category
	Status      *Status
}
