package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
)

// TripsCollection is the name of the trip collection.
const TripsCollection = "trips"

// TripRepositoryMongo implements repository.TripRepository on MongoDB.
type TripRepositoryMongo struct {
	collection *mongo.Collection
}

// NewTripRepositoryMongo creates a new TripRepositoryMongo.
func NewTripRepositoryMongo(db *mongo.Database) *TripRepositoryMongo {
	return &TripRepositoryMongo{collection: db.Collection(TripsCollection)}
}

// Create inserts a new trip.
func (r *TripRepositoryMongo) Create(ctx context.Context, trip *models.Trip) error {
	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// FindByID retrieves a trip by id.
func (r *TripRepositoryMongo) FindByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return &trip, nil
}

func (r *TripRepositoryMongo) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Trip, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

// FindByUser lists a user's trips, newest first.
func (r *TripRepositoryMongo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findMany(ctx, bson.M{"userId": userID}, opts)
}

// FindPublic lists public trips for the community feed, newest first.
func (r *TripRepositoryMongo) FindPublic(ctx context.Context, limit int64) ([]*models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return r.findMany(ctx, bson.M{"isPublic": true}, opts)
}

// Update replaces the mutable fields of a trip.
func (r *TripRepositoryMongo) Update(ctx context.Context, trip *models.Trip) error {
	trip.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":       trip.Title,
		"destination": trip.Destination,
		"description": trip.Description,
		"startDate":   trip.StartDate,
		"endDate":     trip.EndDate,
		"status":      trip.Status,
		"isPublic":    trip.IsPublic,
		"updatedAt":   trip.UpdatedAt,
	}}
	result, err := r.collection.UpdateByID(ctx, trip.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrTripNotFound
	}
	return nil
}

// Delete removes a trip by id.
func (r *TripRepositoryMongo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.DeletedCount == 0 {
		return domainErrors.ErrTripNotFound
	}
	return nil
}

// StartDueTrips flips planned trips whose start date has arrived to ongoing.
func (r *TripRepositoryMongo) StartDueTrips(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"status": models.TripStatusPlanned, "startDate": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{"status": models.TripStatusOngoing, "updatedAt": now}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to start due trips: %w", err)
	}
	return result.ModifiedCount, nil
}

// CompleteFinishedTrips flips ongoing trips whose end date has passed to
// completed.
func (r *TripRepositoryMongo) CompleteFinishedTrips(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"status": models.TripStatusOngoing, "endDate": bson.M{"$lt": now}}
	update := bson.M{"$set": bson.M{"status": models.TripStatusCompleted, "updatedAt": now}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete finished trips: %w", err)
	}
	return result.ModifiedCount, nil
}

var _ repository.TripRepository = (*TripRepositoryMongo)(nil)
