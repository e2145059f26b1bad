package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grapevine-ai/grapevine/pkg/ai"
	"github.com/grapevine-ai/grapevine/pkg/classify"
	"github.com/grapevine-ai/grapevine/pkg/common"
	"github.com/grapevine-ai/grapevine/pkg/extract"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/store"
	"github.com/grapevine-ai/grapevine/pkg/textnorm"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// ProcessReviewMessage runs one review through the pipeline: validate,
// normalize, extract entity pairs, classify relation and sentiment, persist
// the flattened records and queue a projection replay. Extraction failures
// that are recoverable per review (no structured response, malformed payload,
// zero entities) are logged and the message is treated as handled so it is
// not retried.
func ProcessReviewMessage(
	ctx context.Context,
	extractor *extract.Extractor,
	records store.ReviewStore,
	ch Channel,
	msg string,
) error {
	data := new(QueueReviewMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}
	review := data.Review

	if err := validate.Struct(review); err != nil {
		return fmt.Errorf("invalid review: %w", err)
	}

	cleaned := textnorm.Normalize(review.ReviewText)

	pairs, err := extractor.Extract(ctx, cleaned)
	if err != nil {
		if errors.Is(err, extract.ErrNoEntitiesFound) ||
			errors.Is(err, ai.ErrNoStructuredResponse) ||
			errors.Is(err, ai.ErrMalformedPayload) {
			logger.Warn("[Queue] Skipping review, extraction yielded nothing usable",
				"user_id", review.UserID,
				"err", err,
			)
			return nil
		}
		return err
	}

	sentiment := classify.Sentiment(review.Rating)
	out := make([]common.ReviewRecord, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, common.ReviewRecord{
			CleanedText: cleaned,
			UserID:      review.UserID,
			Entity1:     pair.Entity1,
			Entity2:     pair.Entity2,
			Type:        pair.Type,
			Relation:    classify.Relation(pair.Entity2),
			Rating:      review.Rating,
			Sentiment:   sentiment,
			Brand:       review.Brand,
			Category:    review.Category,
			SubCategory: review.SubCategory,
		})
	}

	ids, err := records.SaveRecords(ctx, out)
	if err != nil {
		return err
	}
	logger.Info("[Queue] Stored review records",
		"user_id", review.UserID,
		"pairs", len(ids),
		"sentiment", sentiment,
	)

	body, err := json.Marshal(QueueProjectionMsg{Trigger: "review_processed"})
	if err != nil {
		return err
	}
	return PublishFIFO(ch, ProjectionQueue, body)
}
