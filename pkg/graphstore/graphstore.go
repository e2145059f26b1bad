package graphstore

import (
	"context"

	"github.com/grapevine-ai/grapevine/pkg/common"
)

// CoPurchasePair is one row of the co-purchase frequency ranking.
type CoPurchasePair struct {
	Entity1   string `json:"entity1"`
	Entity2   string `json:"entity2"`
	Frequency int64  `json:"frequency"`
}

// Preference is one row of a per-user preference ranking. Score counts the
// RELATED edges pointing at the entity.
type Preference struct {
	Entity string `json:"entity"`
	Score  int64  `json:"score"`
}

// SentimentCount is one bucket of the entity sentiment histogram.
type SentimentCount struct {
	Sentiment string `json:"sentiment"`
	Count     int64  `json:"count"`
}

// GraphStore defines the interface for the labeled property graph the review
// records are projected into. Nodes are merge-upserted on their full identity
// tuple; RELATED edges are created additively, so replaying a record adds a
// parallel edge. The co-purchase ranking counts edges, which depends on that
// additive behavior.
type GraphStore interface {
	ProjectRecord(ctx context.Context, record common.ReviewRecord) error

	FrequentCoPurchases(ctx context.Context, limit int) ([]CoPurchasePair, error)
	UserPreferences(ctx context.Context, userID string, limit int) ([]Preference, error)
	SentimentHistogram(ctx context.Context) ([]SentimentCount, error)

	Close(ctx context.Context) error
}
