package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/grapevine-ai/grapevine/pkg/ai"
	"github.com/grapevine-ai/grapevine/pkg/classify"
	"github.com/grapevine-ai/grapevine/pkg/common"
	"github.com/grapevine-ai/grapevine/pkg/extract"

	"github.com/rabbitmq/amqp091-go"
)

// fakeModelClient answers GenerateCompletionWithFormat with a canned JSON
// payload, or fails with a fixed error.
type fakeModelClient struct {
	payload string
	err     error
	calls   int
}

func (f *fakeModelClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeModelClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.payload), out)
}

func (f *fakeModelClient) ResetMetrics()               {}
func (f *fakeModelClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

type fakeReviewStore struct {
	saved   [][]common.ReviewRecord
	records []common.ReviewRecord
	saveErr error
	listErr error
}

func (f *fakeReviewStore) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeReviewStore) SaveRecords(ctx context.Context, records []common.ReviewRecord) ([]int64, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, records)
	ids := make([]int64, len(records))
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func (f *fakeReviewStore) ListRecords(ctx context.Context) ([]common.ReviewRecord, error) {
	return f.records, f.listErr
}

func (f *fakeReviewStore) CountRecords(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

// fakeChannel records what gets published on which routing key.
type fakeChannel struct {
	published []amqp091.Publishing
	keys      []string
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func reviewMsg(t *testing.T, review common.ReviewInput) string {
	t.Helper()
	body, err := json.Marshal(QueueReviewMsg{Review: review})
	if err != nil {
		t.Fatalf("marshal review message: %v", err)
	}
	return string(body)
}

func intPtr(v int) *int {
	return &v
}

func TestProcessReviewMessage_StoresRecordsAndQueuesProjection(t *testing.T) {
	client := &fakeModelClient{
		payload: `{"entities":[{"entity1":"Sunscreen","entity2":"fresh scent","type":"Product","relation":"smells like"}]}`,
	}
	extractor := extract.NewExtractor(extract.NewExtractorParams{Client: client})
	records := &fakeReviewStore{}
	ch := &fakeChannel{}

	msg := reviewMsg(t, common.ReviewInput{
		ReviewText:  "Love the fresh scent of this sunscreen",
		UserID:      "u1",
		Rating:      intPtr(5),
		Brand:       "SunCo",
		Category:    "Suncare",
		SubCategory: "Body",
	})

	if err := ProcessReviewMessage(context.Background(), extractor, records, ch, msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(records.saved) != 1 || len(records.saved[0]) != 1 {
		t.Fatalf("expected 1 save of 1 record, got %+v", records.saved)
	}
	rec := records.saved[0][0]
	if rec.CleanedText != "love fresh scent sunscreen" {
		t.Errorf("CleanedText = %q, want normalized text", rec.CleanedText)
	}
	if rec.Entity1 != "Sunscreen" || rec.Entity2 != "fresh scent" || rec.Type != "Product" {
		t.Errorf("unexpected entity pair: %+v", rec)
	}
	if rec.Relation != classify.RelationHasScent {
		t.Errorf("Relation = %q, want %q from the rule table, not the model suggestion", rec.Relation, classify.RelationHasScent)
	}
	if rec.Sentiment != classify.SentimentPositive {
		t.Errorf("Sentiment = %q, want %q for a 5-star rating", rec.Sentiment, classify.SentimentPositive)
	}
	if rec.UserID != "u1" || rec.Brand != "SunCo" || rec.Category != "Suncare" || rec.SubCategory != "Body" {
		t.Errorf("review attributes not carried over: %+v", rec)
	}

	if len(ch.keys) != 1 || ch.keys[0] != ProjectionQueue {
		t.Fatalf("expected one publish to %q, got %v", ProjectionQueue, ch.keys)
	}
	var trigger QueueProjectionMsg
	if err := json.Unmarshal(ch.published[0].Body, &trigger); err != nil {
		t.Fatalf("unmarshal projection trigger: %v", err)
	}
	if trigger.Trigger != "review_processed" {
		t.Errorf("Trigger = %q, want review_processed", trigger.Trigger)
	}
}

// Reviews whose extraction yields nothing usable are acked without touching
// the store or the projection queue, so they never abort a batch or loop
// through retries.
func TestProcessReviewMessage_SkipsUnusableExtractions(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
	}{
		{name: "no entities in payload", payload: `{"entities":[]}`},
		{name: "no structured response", err: ai.ErrNoStructuredResponse},
		{name: "malformed payload", err: ai.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeModelClient{payload: tt.payload, err: tt.err}
			extractor := extract.NewExtractor(extract.NewExtractorParams{Client: client})
			records := &fakeReviewStore{}
			ch := &fakeChannel{}

			msg := reviewMsg(t, common.ReviewInput{
				ReviewText: "Decent product overall",
				UserID:     "u2",
				Rating:     intPtr(3),
			})

			if err := ProcessReviewMessage(context.Background(), extractor, records, ch, msg); err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if len(records.saved) != 0 {
				t.Errorf("expected no saves, got %d", len(records.saved))
			}
			if len(ch.keys) != 0 {
				t.Errorf("expected no publishes, got %v", ch.keys)
			}
		})
	}
}

func TestProcessReviewMessage_RejectsInvalidReview(t *testing.T) {
	client := &fakeModelClient{payload: `{"entities":[]}`}
	extractor := extract.NewExtractor(extract.NewExtractorParams{Client: client})
	records := &fakeReviewStore{}
	ch := &fakeChannel{}

	msg := reviewMsg(t, common.ReviewInput{ReviewText: "No user attached"})

	if err := ProcessReviewMessage(context.Background(), extractor, records, ch, msg); err == nil {
		t.Fatal("expected validation error for missing user_id")
	}
	if client.calls != 0 {
		t.Errorf("expected no model calls, got %d", client.calls)
	}
	if len(records.saved) != 0 {
		t.Errorf("expected no saves, got %d", len(records.saved))
	}
}

func TestProcessReviewMessage_StoreFailurePropagates(t *testing.T) {
	client := &fakeModelClient{
		payload: `{"entities":[{"entity1":"Serum","entity2":"vitamin c","type":"Product"}]}`,
	}
	extractor := extract.NewExtractor(extract.NewExtractorParams{Client: client})
	records := &fakeReviewStore{saveErr: errors.New("db down")}
	ch := &fakeChannel{}

	msg := reviewMsg(t, common.ReviewInput{
		ReviewText: "Great serum with vitamin c",
		UserID:     "u3",
	})

	if err := ProcessReviewMessage(context.Background(), extractor, records, ch, msg); err == nil {
		t.Fatal("expected store error to propagate for the retry path")
	}
	if len(ch.keys) != 0 {
		t.Errorf("expected no projection trigger after a failed save, got %v", ch.keys)
	}
}
