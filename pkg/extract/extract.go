package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grapevine-ai/grapevine/internal/util"
	"github.com/grapevine-ai/grapevine/pkg/ai"
	"github.com/grapevine-ai/grapevine/pkg/common"
)

// ErrNoEntitiesFound means the model produced a well-formed payload that
// named no entity pairs. Callers log and skip the review.
var ErrNoEntitiesFound = errors.New("no entities found in review")

type extractedPair struct {
	Entity1  string `json:"entity1" jsonschema_description:"Name of the first entity, typically the product or feature being discussed"`
	Entity2  string `json:"entity2" jsonschema_description:"Name of the second entity the first relates to, such as an ingredient, effect or attribute"`
	Type     string `json:"type" jsonschema_description:"Kind of the first entity, one of Product, Feature or Sentiment"`
	Relation string `json:"relation" jsonschema_description:"Short phrase describing how the two entities relate"`
}

type extractResponse struct {
	Entities []extractedPair `json:"entities" jsonschema_description:"Entity pairs identified in the review"`
}

// Extractor turns a cleaned review text into entity pairs by calling a
// structured-generation model. The relation the model suggests per pair is
// dropped; relation labels are assigned by the rule classifier downstream.
type Extractor struct {
	client     ai.ReviewAIClient
	maxRetries int
	timeout    time.Duration
}

// NewExtractorParams contains configuration for creating an Extractor.
type NewExtractorParams struct {
	Client ai.ReviewAIClient

	// MaxRetries bounds attempts per review, 0 means a single attempt.
	MaxRetries int
	// Timeout caps each model call, 0 disables the per-call deadline.
	Timeout time.Duration
}

// NewExtractor creates an Extractor backed by the given model client.
func NewExtractor(params NewExtractorParams) *Extractor {
	return &Extractor{
		client:     params.Client,
		maxRetries: params.MaxRetries,
		timeout:    params.Timeout,
	}
}

// Extract calls the model on the cleaned review text and returns the entity
// pairs it names. Pairs with an empty entity1 or entity2 are dropped. Returns
// ErrNoEntitiesFound when the payload decodes but holds no usable pairs;
// model-level failures surface as ai.ErrNoStructuredResponse or
// ai.ErrMalformedPayload.
func (e *Extractor) Extract(ctx context.Context, cleanedText string) ([]common.EntityPair, error) {
	if strings.TrimSpace(cleanedText) == "" {
		return nil, fmt.Errorf("empty review text: %w", ErrNoEntitiesFound)
	}

	prompt := fmt.Sprintf(ai.ExtractUserPrompt, cleanedText)
	opts := []ai.GenerateOption{
		ai.WithSystemPrompts(ai.ExtractSystemPrompt),
	}

	res, err := util.RetryWithContext(ctx, e.maxRetries, func(ctx context.Context) (*extractResponse, error) {
		if e.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}

		var res extractResponse
		err := e.client.GenerateCompletionWithFormat(
			ctx,
			"extract_entity_pairs",
			"Extract entity pairs from a product review.",
			prompt,
			&res,
			opts...,
		)
		if err != nil {
			return nil, err
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]common.EntityPair, 0, len(res.Entities))
	for _, entity := range res.Entities {
		if strings.TrimSpace(entity.Entity1) == "" || strings.TrimSpace(entity.Entity2) == "" {
			continue
		}
		pairs = append(pairs, common.EntityPair{
			Entity1: entity.Entity1,
			Entity2: entity.Entity2,
			Type:    entity.Type,
		})
	}
	if len(pairs) == 0 {
		return nil, ErrNoEntitiesFound
	}

	return pairs, nil
}
