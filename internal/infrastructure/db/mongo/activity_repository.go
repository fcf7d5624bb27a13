package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

const activityCollection = "activity_log"

// ActivityRepository persists the gateway's audit trail in MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID         string `bson:"_id"`
	Actor      string `bson:"actor"`
	Action     string `bson:"action"`
	Resource   string `bson:"resource"`
	ResourceID string `bson:"resource_id,omitempty"`
	At         int64  `bson:"at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry domain.ActivityEntry) error {
	doc := activityDoc{
		ID:         entry.ID,
		Actor:      entry.Actor,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		At:         entry.At.UnixMilli(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns one page of entries, newest first, plus the total count.
func (r *ActivityRepository) List(ctx context.Context, page, pageSize int) ([]domain.ActivityEntry, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.ActivityEntry
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, domain.ActivityEntry{
			ID:         doc.ID,
			Actor:      doc.Actor,
			Action:     doc.Action,
			Resource:   doc.Resource,
			ResourceID: doc.ResourceID,
			At:         time.UnixMilli(doc.At).UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activity: %w", err)
	}

	return entries, total, nil
}
