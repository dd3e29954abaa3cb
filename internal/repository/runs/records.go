package runs

import (
	"context"
	"fmt"
	"time"

	mg "fivec_analysis/internal/config/connections/mongo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RunsCollection = "analysis_runs"

// Run statuses.
const (
	StatusUploaded = "uploaded"
	StatusPending  = "pending"
	StatusDone     = "done"
	StatusFailed   = "failed"
)

// Record tracks one dataset upload or one analysis run end to end.
type Record struct {
	ID           string     `bson:"_id" json:"id"`
	Kind         string     `bson:"kind" json:"kind"`
	Status       string     `bson:"status" json:"status"`
	ConsumerPath *string    `bson:"consumer_path,omitempty" json:"consumer_path,omitempty"`
	SMEPath      *string    `bson:"sme_path,omitempty" json:"sme_path,omitempty"`
	Scenario     *string    `bson:"scenario,omitempty" json:"scenario,omitempty"`
	Rows         int        `bson:"rows" json:"rows"`
	Bucket       *string    `bson:"bucket,omitempty" json:"bucket,omitempty"`
	Key          *string    `bson:"key,omitempty" json:"key,omitempty"`
	SizeBytes    *int64     `bson:"size_bytes,omitempty" json:"size_bytes,omitempty"`
	Errors       *string    `bson:"errors,omitempty" json:"errors,omitempty"`
	DurationMS   int64      `bson:"duration_ms" json:"duration_ms"`
	UserID       *string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

func InsertRecord(ctx context.Context, m *mg.Mongo, rec Record) (Record, error) {
	if m == nil || m.Database == nil {
		return rec, mongo.ErrClientDisconnected
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = StatusPending
	}

	_, err := m.Database.Collection(RunsCollection).InsertOne(ctx, rec, options.InsertOne())
	return rec, err
}

func UpdateRecordStatus(ctx context.Context, m *mg.Mongo, id, status string, rows int, durationMS int64, runErr *string) error {
	if m == nil || m.Database == nil {
		return mongo.ErrClientDisconnected
	}

	update := bson.M{"$set": bson.M{
		"status":      status,
		"rows":        rows,
		"duration_ms": durationMS,
		"errors":      runErr,
		"updated_at":  time.Now().UTC(),
	}}
	res, err := m.Database.Collection(RunsCollection).UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("run %q not found", id)
	}
	return nil
}

func FindRecordByID(ctx context.Context, m *mg.Mongo, id string) (Record, error) {
	var out Record
	if m == nil || m.Database == nil {
		return out, mongo.ErrClientDisconnected
	}
	if err := m.Database.Collection(RunsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return out, fmt.Errorf("not found: %w", err)
	}
	return out, nil
}

func ListRecords(ctx context.Context, m *mg.Mongo, filter bson.M, limit, skip int64) ([]Record, int64, error) {
	if m == nil || m.Database == nil {
		return nil, 0, mongo.ErrClientDisconnected
	}
	coll := m.Database.Collection(RunsCollection)
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	recs := make([]Record, 0)
	for cur.Next(ctx) {
		var r Record
		if err := cur.Decode(&r); err != nil {
			continue
		}
		recs = append(recs, r)
	}
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		total = int64(len(recs))
	}
	return recs, total, nil
}
