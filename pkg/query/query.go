package query

import (
	"context"

	"github.com/grapevine-ai/grapevine/pkg/graphstore"
)

// DefaultLimit is the ranking depth used when a caller passes no limit.
const DefaultLimit = 5

// Service exposes the read-only analytics over the projected graph.
type Service struct {
	graph graphstore.GraphStore
}

// NewServiceParams contains configuration for creating a query Service.
type NewServiceParams struct {
	Graph graphstore.GraphStore
}

// NewService creates a Service over the given graph store.
func NewService(params NewServiceParams) *Service {
	return &Service{graph: params.Graph}
}

// FrequentCoPurchases ranks entity pairs by "Frequently Co-Purchased" edge
// count. A limit <= 0 falls back to DefaultLimit.
func (s *Service) FrequentCoPurchases(ctx context.Context, limit int) ([]graphstore.CoPurchasePair, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.graph.FrequentCoPurchases(ctx, limit)
}

// UserPreferences ranks entities linked from the node named after the user ID.
// The lookup matches the user ID against Entity names, which only yields rows
// when such nodes exist in the data.
func (s *Service) UserPreferences(ctx context.Context, userID string, limit int) ([]graphstore.Preference, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.graph.UserPreferences(ctx, userID, limit)
}

// SentimentHistogram buckets Entity nodes by sentiment, largest bucket first.
func (s *Service) SentimentHistogram(ctx context.Context) ([]graphstore.SentimentCount, error) {
	return s.graph.SentimentHistogram(ctx)
}
