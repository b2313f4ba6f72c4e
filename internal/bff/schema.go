package bff

import (
	"github.com/gatherly/gatherly/internal/bff/restclient"
	"github.com/graphql-go/graphql"
)

// NewSchema builds the GraphQL schema the SPA consumes. The shape mirrors
// the events API one-to-one; the only transformation is the attendee field
// spelling (upstream "atendees" -> GraphQL "attendees").
func NewSchema(r *Resolvers) (graphql.Schema, error) {
	categoryEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "EventCategory",
		Values: graphql.EnumValueConfigMap{
			"WORKSHOP": &graphql.EnumValueConfig{Value: "WORKSHOP"},
			"MEETUP":   &graphql.EnumValueConfig{Value: "MEETUP"},
			"TALK":     &graphql.EnumValueConfig{Value: "TALK"},
			"SOCIAL":   &graphql.EnumValueConfig{Value: "SOCIAL"},
		},
	})

	statusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "EventStatus",
		Values: graphql.EnumValueConfigMap{
			"DRAFT":     &graphql.EnumValueConfig{Value: "DRAFT"},
			"CONFIRMED": &graphql.EnumValueConfig{Value: "CONFIRMED"},
			"CANCELLED": &graphql.EnumValueConfig{Value: "CANCELLED"},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"organizer":   &graphql.Field{Type: graphql.NewNonNull(userType)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"location":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"category":    &graphql.Field{Type: graphql.NewNonNull(categoryEnum)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(statusEnum)},
			"attendees": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: resolveAttendees,
			},
		},
	})

	createEventInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateEventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"location":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"category":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(categoryEnum)},
		},
	})

	searchEventsInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SearchEventsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"category": &graphql.InputObjectFieldConfig{Type: categoryEnum},
			"status":   &graphql.InputObjectFieldConfig{Type: statusEnum},
		},
	})

	markAttendanceInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "MarkAttendanceInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"eventId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"willAttend": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.GetEvent,
			},
			"getMyEvents": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: r.GetMyEvents,
			},
			"searchEvents": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: searchEventsInput},
				},
				Resolve: r.SearchEvents,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createEvent": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createEventInput)},
				},
				Resolve: r.CreateEvent,
			},
			"confirmEvent": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.ConfirmEvent,
			},
			"markAttendance": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(markAttendanceInput)},
				},
				Resolve: r.MarkAttendance,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func resolveAttendees(p graphql.ResolveParams) (interface{}, error) {
	var attendees []restclient.User

	switch e := p.Source.(type) {
	case restclient.Event:
		attendees = e.Atendees
	case *restclient.Event:
		if e != nil {
			attendees = e.Atendees
		}
	}

	if attendees == nil {
		// search/byOrganizer payloads carry no attendee projection
		attendees = []restclient.User{}
	}

	return attendees, nil
}
