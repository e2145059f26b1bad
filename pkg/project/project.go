package project

import (
	"context"

	"github.com/grapevine-ai/grapevine/pkg/graphstore"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/store"
)

// Projector rebuilds the labeled property graph by replaying every review
// record currently in the store. There is no delta path: each run re-applies
// all records, which merges nodes idempotently and appends RELATED edges.
// Runs must therefore be fenced externally (see pkg/leaselock) so two workers
// do not replay concurrently.
type Projector struct {
	records store.ReviewStore
	graph   graphstore.GraphStore
}

// NewProjectorParams contains the stores a Projector reads from and writes to.
type NewProjectorParams struct {
	Records store.ReviewStore
	Graph   graphstore.GraphStore
}

// NewProjector creates a Projector over the given stores.
func NewProjector(params NewProjectorParams) *Projector {
	return &Projector{
		records: params.Records,
		graph:   params.Graph,
	}
}

// Summary reports the outcome of one projection run.
type Summary struct {
	Total     int `json:"total"`
	Projected int `json:"projected"`
	Failed    int `json:"failed"`
}

// Run replays the full review record set into the graph. A record that fails
// to project is logged and skipped; the run continues with the rest. The
// returned error is non-nil only when the record set itself cannot be read
// or the context ends mid-run.
func (p *Projector) Run(ctx context.Context) (Summary, error) {
	records, err := p.records.ListRecords(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(records)}
	logger.Info("[Project] Replaying review records into graph", "records", summary.Total)

	for _, record := range records {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		if err := p.graph.ProjectRecord(ctx, record); err != nil {
			summary.Failed++
			logger.Error("[Project] Failed to project record",
				"id", record.ID,
				"entity1", record.Entity1,
				"entity2", record.Entity2,
				"error", err,
			)
			continue
		}
		summary.Projected++
	}

	logger.Info("[Project] Replay finished",
		"records", summary.Total,
		"projected", summary.Projected,
		"failed", summary.Failed,
	)
	return summary, nil
}
