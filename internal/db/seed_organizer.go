package db

import (
	"context"
	"errors"

	"github.com/gatherly/gatherly/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureSeedOrganizer inserts a first organizer account when one is
// configured and the users collection does not have it yet. User records
// normally arrive through the external auth service; this exists so a fresh
// local database can create events at all.
func EnsureSeedOrganizer(ctx context.Context, users *mongo.Collection, cfg config.Config) error {
	if cfg.SeedOrganizerEmail == "" {
		return nil
	}

	err := users.FindOne(ctx, bson.M{"email": cfg.SeedOrganizerEmail}).Err()

	if err == nil {
		return nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = users.InsertOne(ctx, bson.M{
		"_id":   primitive.NewObjectID(),
		"email": cfg.SeedOrganizerEmail,
		"name":  cfg.SeedOrganizerName,
	})

	return err
}
