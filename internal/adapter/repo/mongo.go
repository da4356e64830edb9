package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	donationsCollection = "donations"
	contactsCollection  = "contacts"
)

// latestFirst orders documents by submission date, newest first, with the
// ObjectID as a tie breaker.
var latestFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

// storedAt returns the insertion timestamp at the precision a BSON date keeps.
func storedAt(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}

func findLatest[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(latestFirst))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func ensureDateIndex(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    latestFirst,
		Options: options.Index().SetName("date_desc"),
	})
	if err != nil {
		return fmt.Errorf("index %s: %w", coll.Name(), err)
	}
	return nil
}
