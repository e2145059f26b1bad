package openai

import (
	"math"
	"sync"

	"github.com/grapevine-ai/grapevine/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ReviewOpenAIClient talks to an OpenAI-compatible chat endpoint for the
// review extraction pipeline. It is constructed explicitly with its endpoint
// and key; nothing is configured at package scope.
//
// A ReviewOpenAIClient should be created using NewReviewOpenAIClient.
type ReviewOpenAIClient struct {
	extractionModel string
	chatModel       string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewReviewOpenAIClientParams defines the configuration for creating a new
// ReviewOpenAIClient.
//
// ExtractionModel is used for structured entity extraction, ChatModel for
// plain completions. ChatURL may be empty to use the default OpenAI endpoint.
type NewReviewOpenAIClientParams struct {
	ExtractionModel string
	ChatModel       string

	ChatURL string
	ChatKey string
}

// NewReviewOpenAIClient creates a ReviewOpenAIClient configured with the
// provided parameters.
//
// Example:
//
//	client := openai.NewReviewOpenAIClient(openai.NewReviewOpenAIClientParams{
//		ExtractionModel: "gpt-4o-mini",
//		ChatModel:       "gpt-4o-mini",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//	})
func NewReviewOpenAIClient(params NewReviewOpenAIClientParams) *ReviewOpenAIClient {
	return &ReviewOpenAIClient{
		extractionModel: params.ExtractionModel,
		chatModel:       params.ChatModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(baseURL string, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}

// ResetMetrics clears all accumulated token and timing metrics to zero.
func (c *ReviewOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	c.metrics = ai.ModelMetrics{}
	c.metricsLock.Unlock()
}

// GetMetrics returns the accumulated token usage and timing metrics since
// the last reset.
func (c *ReviewOpenAIClient) GetMetrics() ai.ModelMetrics {
	return c.metrics
}

func (c *ReviewOpenAIClient) modifyMetrics(m ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += m.InputTokens
	c.metrics.OutputTokens += m.OutputTokens
	c.metrics.TotalTokens += m.TotalTokens
	c.metrics.DurationMs += m.DurationMs

	if c.metrics.DurationMs > 0 {
		tokensPerSecond := (float64(c.metrics.TotalTokens) * 1000.0) / float64(c.metrics.DurationMs)
		c.metrics.TokenPerSecond = float32(math.Round(tokensPerSecond*100) / 100)
	}
}
