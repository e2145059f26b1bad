package neo4j

import (
	"context"
	"fmt"

	"github.com/grapevine-ai/grapevine/pkg/classify"
	"github.com/grapevine-ai/grapevine/pkg/common"
	"github.com/grapevine-ai/grapevine/pkg/graphstore"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

const projectRecordCypher = `
MERGE (c:Community {name: $category})
MERGE (sc:SubCommunity {name: $sub_category})-[:PART_OF]->(c)
MERGE (e1:Entity {name: $entity1, type: $type, sentiment: $sentiment, brand: $brand, category: $category, sub_category: $sub_category})-[:BELONGS_TO]->(sc)
MERGE (e2:Entity {name: $entity2, type: $type, sentiment: $sentiment, brand: $brand, category: $category, sub_category: $sub_category})-[:BELONGS_TO]->(sc)
CREATE (e1)-[:RELATED {relation: $relation, user_id: $user_id, review: $review, rating: $rating}]->(e2)`

const coPurchaseCypher = `
MATCH (e1:Entity)-[r:RELATED {relation: $relation}]->(e2:Entity)
RETURN e1.name AS Entity1, e2.name AS Entity2, COUNT(r) AS Frequency
ORDER BY Frequency DESC
LIMIT $limit`

const userPreferenceCypher = `
MATCH (u:Entity {name: $user_id})-[r:RELATED]->(e:Entity)
RETURN e.name AS PreferredEntity, COUNT(r) AS PreferenceScore
ORDER BY PreferenceScore DESC
LIMIT $limit`

const sentimentHistogramCypher = `
MATCH (e:Entity)
RETURN e.sentiment AS Sentiment, COUNT(e) AS Count
ORDER BY Count DESC`

// ReviewGraphStore implements the GraphStore interface against a Neo4j
// database. Each operation opens its own session; the underlying driver
// is safe for concurrent use.
type ReviewGraphStore struct {
	client   neo4j.DriverWithContext
	database string
}

// NewReviewGraphStoreParams contains configuration for creating a
// ReviewGraphStore.
type NewReviewGraphStoreParams struct {
	URI      string
	Username string
	Password string

	// Database defaults to "neo4j" when empty.
	Database string
}

// NewReviewGraphStore creates a ReviewGraphStore connected to the configured
// Neo4j instance.
func NewReviewGraphStore(params NewReviewGraphStoreParams) (*ReviewGraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(params.URI, neo4j.BasicAuth(params.Username, params.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	database := params.Database
	if database == "" {
		database = "neo4j"
	}

	return &ReviewGraphStore{
		client:   driver,
		database: database,
	}, nil
}

// ProjectRecord upserts one review record into the graph: the Community and
// SubCommunity hierarchy and both Entity nodes are merged on their identity
// properties, then a fresh RELATED edge is created between the two entities.
func (s *ReviewGraphStore) ProjectRecord(ctx context.Context, record common.ReviewRecord) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	var rating any
	if record.Rating != nil {
		rating = int64(*record.Rating)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, projectRecordCypher, map[string]any{
			"entity1":      record.Entity1,
			"entity2":      record.Entity2,
			"type":         record.Type,
			"relation":     record.Relation,
			"sentiment":    record.Sentiment,
			"brand":        record.Brand,
			"category":     record.Category,
			"sub_category": record.SubCommunityName(),
			"user_id":      record.UserID,
			"review":       record.CleanedText,
			"rating":       rating,
		})
		return nil, err
	})
	return err
}

// FrequentCoPurchases returns the entity pairs most often linked by a
// "Frequently Co-Purchased" relation, ranked by edge count.
func (s *ReviewGraphStore) FrequentCoPurchases(ctx context.Context, limit int) ([]graphstore.CoPurchasePair, error) {
	records, err := s.executeRead(ctx, coPurchaseCypher, map[string]any{
		"relation": classify.RelationCoPurchased,
		"limit":    int64(limit),
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]graphstore.CoPurchasePair, 0, len(records))
	for _, record := range records {
		pair := graphstore.CoPurchasePair{}
		if v, ok := record.Get("Entity1"); ok {
			pair.Entity1, _ = v.(string)
		}
		if v, ok := record.Get("Entity2"); ok {
			pair.Entity2, _ = v.(string)
		}
		if v, ok := record.Get("Frequency"); ok {
			pair.Frequency, _ = v.(int64)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// UserPreferences returns the entities most often linked from the node whose
// name equals the given user ID, ranked by edge count.
func (s *ReviewGraphStore) UserPreferences(ctx context.Context, userID string, limit int) ([]graphstore.Preference, error) {
	records, err := s.executeRead(ctx, userPreferenceCypher, map[string]any{
		"user_id": userID,
		"limit":   int64(limit),
	})
	if err != nil {
		return nil, err
	}

	prefs := make([]graphstore.Preference, 0, len(records))
	for _, record := range records {
		pref := graphstore.Preference{}
		if v, ok := record.Get("PreferredEntity"); ok {
			pref.Entity, _ = v.(string)
		}
		if v, ok := record.Get("PreferenceScore"); ok {
			pref.Score, _ = v.(int64)
		}
		prefs = append(prefs, pref)
	}
	return prefs, nil
}

// SentimentHistogram returns the count of Entity nodes per sentiment value,
// largest bucket first.
func (s *ReviewGraphStore) SentimentHistogram(ctx context.Context) ([]graphstore.SentimentCount, error) {
	records, err := s.executeRead(ctx, sentimentHistogramCypher, nil)
	if err != nil {
		return nil, err
	}

	counts := make([]graphstore.SentimentCount, 0, len(records))
	for _, record := range records {
		count := graphstore.SentimentCount{}
		if v, ok := record.Get("Sentiment"); ok {
			count.Sentiment, _ = v.(string)
		}
		if v, ok := record.Get("Count"); ok {
			count.Count, _ = v.(int64)
		}
		counts = append(counts, count)
	}
	return counts, nil
}

// Close shuts down the underlying driver and its connection pool.
func (s *ReviewGraphStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func (s *ReviewGraphStore) executeRead(ctx context.Context, query string, params map[string]any) ([]*db.Record, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*db.Record), nil
}
