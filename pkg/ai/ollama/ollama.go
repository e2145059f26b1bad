package ollama

import (
	"math"
	"net/http"
	"net/url"
	"sync"

	"github.com/grapevine-ai/grapevine/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// ReviewOllamaClient implements ai.ReviewAIClient against a locally-hosted
// Ollama server. Concurrent requests are bounded with a weighted semaphore
// so a single worker cannot overload the local model.
type ReviewOllamaClient struct {
	extractionModel string
	chatModel       string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	Client *api.Client
}

// NewReviewOllamaClientParams contains configuration for creating a new
// ReviewOllamaClient.
type NewReviewOllamaClientParams struct {
	ExtractionModel string
	ChatModel       string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewReviewOllamaClient creates a ReviewOllamaClient configured with the
// provided parameters.
func NewReviewOllamaClient(params NewReviewOllamaClientParams) (*ReviewOllamaClient, error) {
	baseURL, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if params.ApiKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.ApiKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &ReviewOllamaClient{
		extractionModel: params.ExtractionModel,
		chatModel:       params.ChatModel,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		Client: api.NewClient(baseURL, httpClient),
	}, nil
}

// ResetMetrics clears all accumulated token and timing metrics to zero.
func (c *ReviewOllamaClient) ResetMetrics() {
	c.metricsLock.Lock()
	c.metrics = ai.ModelMetrics{}
	c.metricsLock.Unlock()
}

// GetMetrics returns the accumulated token usage and timing metrics since
// the last reset.
func (c *ReviewOllamaClient) GetMetrics() ai.ModelMetrics {
	return c.metrics
}

func (c *ReviewOllamaClient) modifyMetrics(m ai.ModelMetrics) {
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
