package project

import (
	"context"
	"errors"
	"testing"

	"github.com/grapevine-ai/grapevine/pkg/common"
	"github.com/grapevine-ai/grapevine/pkg/graphstore"
)

type fakeRecordStore struct {
	records []common.ReviewRecord
	err     error
}

func (f *fakeRecordStore) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeRecordStore) SaveRecords(ctx context.Context, records []common.ReviewRecord) ([]int64, error) {
	return nil, errors.New("not used")
}

func (f *fakeRecordStore) ListRecords(ctx context.Context) ([]common.ReviewRecord, error) {
	return f.records, f.err
}

func (f *fakeRecordStore) CountRecords(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

// fakeGraph mimics the graph write semantics: nodes merged on their identity
// tuple, edges appended on every call.
type fakeGraph struct {
	nodes   map[common.EntityKey]struct{}
	edges   int
	failIDs map[int64]bool
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		nodes:   map[common.EntityKey]struct{}{},
		failIDs: map[int64]bool{},
	}
}

func (f *fakeGraph) ProjectRecord(ctx context.Context, record common.ReviewRecord) error {
	if f.failIDs[record.ID] {
		return errors.New("write failed")
	}
	f.nodes[record.Entity1Key()] = struct{}{}
	f.nodes[record.Entity2Key()] = struct{}{}
	f.edges++
	return nil
}

func (f *fakeGraph) FrequentCoPurchases(ctx context.Context, limit int) ([]graphstore.CoPurchasePair, error) {
	return nil, nil
}

func (f *fakeGraph) UserPreferences(ctx context.Context, userID string, limit int) ([]graphstore.Preference, error) {
	return nil, nil
}

func (f *fakeGraph) SentimentHistogram(ctx context.Context) ([]graphstore.SentimentCount, error) {
	return nil, nil
}

func (f *fakeGraph) Close(ctx context.Context) error { return nil }

func record(id int64, entity1, entity2, sentiment string) common.ReviewRecord {
	return common.ReviewRecord{
		ID:        id,
		Entity1:   entity1,
		Entity2:   entity2,
		Type:      "Product",
		Relation:  "Related To",
		Sentiment: sentiment,
		Category:  "Beauty",
	}
}

func TestRun_ProjectsAllRecords(t *testing.T) {
	records := &fakeRecordStore{records: []common.ReviewRecord{
		record(1, "Sunscreen", "zinc oxide", "Positive"),
		record(2, "Shampoo", "lavender scent", "Neutral"),
	}}
	graph := newFakeGraph()
	p := NewProjector(NewProjectorParams{Records: records, Graph: graph})

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if summary.Total != 2 || summary.Projected != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if graph.edges != 2 {
		t.Fatalf("expected 2 edges, got %d", graph.edges)
	}
}

func TestRun_ReplayMergesNodesAndDoublesEdges(t *testing.T) {
	records := &fakeRecordStore{records: []common.ReviewRecord{
		record(1, "Sunscreen", "zinc oxide", "Positive"),
	}}
	graph := newFakeGraph()
	p := NewProjector(NewProjectorParams{Records: records, Graph: graph})

	for range 2 {
		if _, err := p.Run(context.Background()); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if len(graph.nodes) != 2 {
		t.Fatalf("expected 2 distinct nodes after replay, got %d", len(graph.nodes))
	}
	if graph.edges != 2 {
		t.Fatalf("expected doubled edge count after replay, got %d", graph.edges)
	}
}

func TestRun_DistinctSentimentsMakeDistinctNodes(t *testing.T) {
	records := &fakeRecordStore{records: []common.ReviewRecord{
		record(1, "Sunscreen", "zinc oxide", "Positive"),
		record(2, "Sunscreen", "zinc oxide", "Negative"),
	}}
	graph := newFakeGraph()
	p := NewProjector(NewProjectorParams{Records: records, Graph: graph})

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(graph.nodes) != 4 {
		t.Fatalf("expected 4 distinct nodes, got %d", len(graph.nodes))
	}
}

func TestRun_ContinuesPastFailedRecords(t *testing.T) {
	records := &fakeRecordStore{records: []common.ReviewRecord{
		record(1, "Sunscreen", "zinc oxide", "Positive"),
		record(2, "Shampoo", "lavender scent", "Neutral"),
		record(3, "Serum", "vitamin c", "Positive"),
	}}
	graph := newFakeGraph()
	graph.failIDs[2] = true
	p := NewProjector(NewProjectorParams{Records: records, Graph: graph})

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if summary.Projected != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRun_ListFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	records := &fakeRecordStore{err: boom}
	p := NewProjector(NewProjectorParams{Records: records, Graph: newFakeGraph()})

	_, err := p.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestRun_UnknownSubCategoryProjection(t *testing.T) {
	r := record(1, "Sunscreen", "zinc oxide", "Positive")
	if r.SubCommunityName() != "Unknown" {
		t.Fatalf("expected Unknown sub-community, got %q", r.SubCommunityName())
	}
	if r.Entity1Key().SubCategory != "Unknown" {
		t.Fatalf("expected Unknown in entity key, got %q", r.Entity1Key().SubCategory)
	}
}
