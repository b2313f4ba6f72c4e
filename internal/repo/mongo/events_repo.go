package mongo

import (
	"context"
	"errors"

	"github.com/gatherly/gatherly/internal/domain/event"
	"github.com/gatherly/gatherly/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EventsRepo struct {
	events *mongo.Collection
	users  *mongo.Collection
	prom   *observability.Prom
}

// constructor function

func NewEventsRepo(events, users *mongo.Collection, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		events: events,
		users:  users,
		prom:   prom,
	}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom == nil {
		return fn()
	}

	return r.prom.ObserveDB(op, fn)
}

// Create verifies the organizer exists before inserting. The two steps are
// not atomic: an organizer deleted in between leaves a dangling reference.
// Accepted risk; there is no multi-document transaction here.
func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	organizerID, err := primitive.ObjectIDFromHex(req.OrganizerID)

	if err != nil {
		return event.Event{}, event.ErrOrganizerNotFound
	}

	var organizer userDoc

	err = r.observe("users.find_one", func() error {
		return r.users.FindOne(ctx, bson.M{"_id": organizerID}).Decode(&organizer)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return event.Event{}, event.ErrOrganizerNotFound
		}

		return event.Event{}, err
	}

	doc := eventDoc{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Date:        req.Date.UTC(),
		Location:    req.Location,
		Description: req.Description,
		Category:    string(req.Category),
		// status is forced here; whatever the caller had in mind, a new
		// event starts as a draft.
		Status:      string(event.StatusDraft),
		OrganizerID: organizerID,
		AttendeeIDs: []primitive.ObjectID{},
	}

	err = r.observe("events.insert_one", func() error {
		_, insertErr := r.events.InsertOne(ctx, doc)
		return insertErr
	})

	if err != nil {
		return event.Event{}, err
	}

	// organizer info comes from the pre-insert read, not a second fetch
	return doc.toDomain(organizer.toOrganizer()), nil
}

func (r *EventsRepo) FindByID(ctx context.Context, id string) (*event.Details, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		// a malformed id can never match a stored document
		return nil, nil
	}

	var doc eventDoc

	err = r.observe("events.find_one", func() error {
		return r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	organizers, err := r.usersByID(ctx, []primitive.ObjectID{doc.OrganizerID})

	if err != nil {
		return nil, err
	}

	attendees := make([]event.Attendee, 0, len(doc.AttendeeIDs))

	if len(doc.AttendeeIDs) > 0 {
		users, err := r.usersByID(ctx, doc.AttendeeIDs)

		if err != nil {
			return nil, err
		}

		for _, attendeeID := range doc.AttendeeIDs {
			u, ok := users[attendeeID]
			if !ok {
				continue
			}
			attendees = append(attendees, event.Attendee{Name: u.Name, Email: u.Email})
		}
	}

	organizer := organizers[doc.OrganizerID].toOrganizer()

	return &event.Details{
		Event:    doc.toDomain(organizer),
		Atendees: attendees,
	}, nil
}

func (r *EventsRepo) FindByOrganizerID(ctx context.Context, organizerID string) ([]event.Event, error) {
	oid, err := primitive.ObjectIDFromHex(organizerID)

	if err != nil {
		return []event.Event{}, nil
	}

	return r.findMany(ctx, "events.find_by_organizer", bson.M{"organizerId": oid})
}

func (r *EventsRepo) Search(ctx context.Context, filter event.SearchFilter) ([]event.Event, error) {
	query := bson.M{}

	// absent filter fields are wildcards
	if filter.Category != nil {
		query["category"] = string(*filter.Category)
	}

	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	return r.findMany(ctx, "events.search", query)
}

func (r *EventsRepo) Update(ctx context.Context, id string, patch event.Patch) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return event.ErrNotFound
	}

	set := bson.M{}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Date != nil {
		set["date"] = patch.Date.UTC()
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = string(*patch.Category)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	if len(set) == 0 {
		return nil
	}

	var res *mongo.UpdateResult

	err = r.observe("events.update_one", func() error {
		var updateErr error
		res, updateErr = r.events.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
		return updateErr
	})

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return event.ErrNotFound
	}

	return nil
}

// AddAttendee relies on $addToSet, so adding the same user twice is a no-op.
func (r *EventsRepo) AddAttendee(ctx context.Context, eventID, userID string) error {
	return r.updateAttendees(ctx, "events.add_attendee", eventID, userID, "$addToSet")
}

// RemoveAttendee relies on $pull, so removing a non-member is a no-op.
func (r *EventsRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	return r.updateAttendees(ctx, "events.remove_attendee", eventID, userID, "$pull")
}

func (r *EventsRepo) updateAttendees(ctx context.Context, op, eventID, userID, operator string) error {
	eid, err := primitive.ObjectIDFromHex(eventID)

	if err != nil {
		return event.ErrNotFound
	}

	uid, err := primitive.ObjectIDFromHex(userID)

	if err != nil {
		return event.ErrNotFound
	}

	var res *mongo.UpdateResult

	err = r.observe(op, func() error {
		var updateErr error
		res, updateErr = r.events.UpdateOne(ctx,
			bson.M{"_id": eid},
			bson.M{operator: bson.M{"attendeeIds": uid}},
		)
		return updateErr
	})

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return event.ErrNotFound
	}

	return nil
}

func (r *EventsRepo) findMany(ctx context.Context, op string, query bson.M) ([]event.Event, error) {
	var docs []eventDoc

	err := r.observe(op, func() error {
		cur, findErr := r.events.Find(ctx, query)

		if findErr != nil {
			return findErr
		}

		defer cur.Close(ctx)

		return cur.All(ctx, &docs)
	})

	if err != nil {
		return nil, err
	}

	organizerIDs := make([]primitive.ObjectID, 0, len(docs))

	for _, doc := range docs {
		organizerIDs = append(organizerIDs, doc.OrganizerID)
	}

	organizers, err := r.usersByID(ctx, organizerIDs)

	if err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(docs))

	for _, doc := range docs {
		out = append(out, doc.toDomain(organizers[doc.OrganizerID].toOrganizer()))
	}

	return out, nil
}

func (r *EventsRepo) usersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]userDoc, error) {
	out := make(map[primitive.ObjectID]userDoc, len(ids))

	if len(ids) == 0 {
		return out, nil
	}

	err := r.observe("users.find_many", func() error {
		cur, findErr := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})

		if findErr != nil {
			return findErr
		}

		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var u userDoc

			if decodeErr := cur.Decode(&u); decodeErr != nil {
				return decodeErr
			}

			out[u.ID] = u
		}

		return cur.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
