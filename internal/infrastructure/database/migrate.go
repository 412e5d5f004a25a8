package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository/mongodb"
)

// Migrate runs the schema bootstrap: index creation plus the one-time
// backfill that gives legacy user documents an empty session ledger. It
// replaces per-request self-healing so the request path never carries
// schema-migration writes.
func Migrate(ctx context.Context, db *mongo.Database, userRepo repository, logger *zap.Logger) error {
	if err := EnsureIndexes(ctx, db); err != nil {
		return err
	}

	modified, err := userRepo.BackfillSessionLedgers(ctx)
	if err != nil {
		return fmt.Errorf("failed to backfill session ledgers: %w", err)
	}
	if modified > 0 {
		logger.Info("Backfilled missing session ledgers", zap.Int64("users", modified))
	}
	return nil
}

type repository interface {
	BackfillSessionLedgers(ctx context.Context) (int64, error)
}

// EnsureIndexes creates the indexes the queries rely on. Index creation is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(mongodb.UsersCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "activeSessions.sessionId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	trips := db.Collection(mongodb.TripsCollection)
	_, err = trips.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create trip indexes: %w", err)
	}
	return nil
}
