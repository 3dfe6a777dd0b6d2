package database

import (
	"context"
	"fmt"

	"game-platform/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitMongo connects to the document store and returns the configured database
func InitMongo(ctx context.Context, config utils.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.URI).
		SetConnectTimeout(config.Timeout).
		SetServerSelectionTimeout(config.Timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return client, client.Database(config.Database), nil
}
