package bff

import (
	"log/slog"

	"github.com/gatherly/gatherly/internal/bff/restclient"
	"github.com/gatherly/gatherly/internal/bff/session"
	"github.com/graphql-go/graphql"
)

// Resolvers proxy GraphQL operations to the events API. Reads degrade to
// nil/empty on upstream failure; mutations surface an error instead. That
// asymmetry is deliberate: a broken dashboard should still render, a write
// that went nowhere must not look like it succeeded.
type Resolvers struct {
	client *restclient.Client
	log    *slog.Logger
}

func NewResolvers(client *restclient.Client, log *slog.Logger) *Resolvers {
	return &Resolvers{client: client, log: log}
}

// GetEvent is the only unauthenticated operation.
func (r *Resolvers) GetEvent(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	e, err := r.client.GetEvent(p.Context, id)

	if err != nil {
		r.log.Error("get event failed", "err", err, "event_id", id)
		return nil, nil
	}

	if e == nil {
		return nil, nil
	}

	return e, nil
}

func (r *Resolvers) SearchEvents(p graphql.ResolveParams) (interface{}, error) {
	if _, ok := session.FromContext(p.Context); !ok {
		return nil, errUnauthorized()
	}

	var category, status *string

	if input, ok := p.Args["input"].(map[string]interface{}); ok {
		category = optionalString(input, "category")
		status = optionalString(input, "status")
	}

	events, err := r.client.SearchEvents(p.Context, category, status)

	if err != nil {
		r.log.Error("search events failed", "err", err)
		return []restclient.Event{}, nil
	}

	return events, nil
}

func (r *Resolvers) GetMyEvents(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := session.FromContext(p.Context)

	if !ok {
		return nil, errUnauthorized()
	}

	events, err := r.client.EventsByOrganizer(p.Context, identity.UserID)

	if err != nil {
		r.log.Error("get my events failed", "err", err, "user_id", identity.UserID)
		return []restclient.Event{}, nil
	}

	return events, nil
}

func (r *Resolvers) CreateEvent(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := session.FromContext(p.Context)

	if !ok {
		return nil, errUnauthorized()
	}

	input, _ := p.Args["input"].(map[string]interface{})

	payload := restclient.CreateEventPayload{
		Title:       stringArg(input, "title"),
		Date:        stringArg(input, "date"),
		Location:    stringArg(input, "location"),
		Description: stringArg(input, "description"),
		Category:    stringArg(input, "category"),
		// the organizer is always the caller; a client-supplied id is
		// never trusted
		OrganizerID: identity.UserID,
	}

	err := r.client.CreateEvent(p.Context, payload)

	if err != nil {
		r.log.Error("create event failed", "err", err, "user_id", identity.UserID)
		return nil, errInternal("Failed to create event")
	}

	return true, nil
}

func (r *Resolvers) ConfirmEvent(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := session.FromContext(p.Context)

	if !ok {
		return nil, errUnauthorized()
	}

	eventID, _ := p.Args["eventId"].(string)

	// ownership is decided on a fresh read, never on client input
	current, err := r.client.GetEvent(p.Context, eventID)

	if err != nil {
		r.log.Error("confirm event lookup failed", "err", err, "event_id", eventID)
		return nil, errInternal("Failed to confirm event")
	}

	if current == nil || current.Organizer.ID != identity.UserID {
		return nil, errForbidden()
	}

	err = r.client.ConfirmEvent(p.Context, eventID)

	if err != nil {
		r.log.Error("confirm event failed", "err", err, "event_id", eventID)
		return nil, errInternal("Failed to confirm event")
	}

	return true, nil
}

func (r *Resolvers) MarkAttendance(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := session.FromContext(p.Context)

	if !ok {
		return nil, errUnauthorized()
	}

	input, _ := p.Args["input"].(map[string]interface{})

	eventID := stringArg(input, "eventId")
	willAttend, _ := input["willAttend"].(bool)

	var err error

	if willAttend {
		err = r.client.AddAttendee(p.Context, eventID, identity.UserID)
	} else {
		err = r.client.RemoveAttendee(p.Context, eventID, identity.UserID)
	}

	if err != nil {
		r.log.Error("mark attendance failed", "err", err, "event_id", eventID, "user_id", identity.UserID)
		return nil, errInternal("Failed to mark attendance")
	}

	return true, nil
}

func stringArg(input map[string]interface{}, key string) string {
	s, _ := input[key].(string)
	return s
}

func optionalString(input map[string]interface{}, key string) *string {
	s, ok := input[key].(string)

	if !ok {
		return nil
	}

	return &s
}
