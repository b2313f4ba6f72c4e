package mongo

import (
	"time"

	"github.com/gatherly/gatherly/internal/domain/event"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// persisted shapes; domain types never carry bson tags

type eventDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Date        time.Time            `bson:"date"`
	Location    string               `bson:"location"`
	Description string               `bson:"description"`
	Category    string               `bson:"category"`
	Status      string               `bson:"status"`
	OrganizerID primitive.ObjectID   `bson:"organizerId"`
	AttendeeIDs []primitive.ObjectID `bson:"attendeeIds"`
}

type userDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

func (d eventDoc) toDomain(organizer event.Organizer) event.Event {
	return event.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Date:        d.Date,
		Location:    d.Location,
		Description: d.Description,
		Category:    event.Category(d.Category),
		Status:      event.Status(d.Status),
		Organizer:   organizer,
	}
}

func (u userDoc) toOrganizer() event.Organizer {
	return event.Organizer{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
