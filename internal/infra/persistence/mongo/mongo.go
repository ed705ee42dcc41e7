// Package mongo stores products in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName matches the collection the storefront data was seeded into.
const CollectionName = "Product"

func Open(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Collection, error) {
	const op = "mongo.Open"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	return client, client.Database(database).Collection(CollectionName), nil
}
