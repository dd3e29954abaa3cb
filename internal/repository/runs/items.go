package runs

import (
	"context"
	"time"

	mg "fivec_analysis/internal/config/connections/mongo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const RunItemsCollection = "analysis_run_items"

// Item archives one borrower's score record for audit: the run it belongs
// to, the borrower identity, and the full score payload as JSON.
type Item struct {
	ID         string    `bson:"_id" json:"id"`
	RunID      string    `bson:"run_id" json:"run_id"`
	BorrowerID string    `bson:"borrower_id" json:"borrower_id"`
	Payload    string    `bson:"payload" json:"payload"`
	RiskLevel  string    `bson:"risk_level" json:"risk_level"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

func InsertItems(ctx context.Context, m *mg.Mongo, items []Item) error {
	if m == nil || m.Database == nil {
		return mongo.ErrClientDisconnected
	}
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		docs = append(docs, it)
	}

	_, err := m.Database.Collection(RunItemsCollection).InsertMany(ctx, docs)
	return err
}
