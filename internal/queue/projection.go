package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/grapevine-ai/grapevine/pkg/graphstore"
	"github.com/grapevine-ai/grapevine/pkg/leaselock"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/project"
	"github.com/grapevine-ai/grapevine/pkg/store"
)

const projectorLockKey = "graph_projector"

// ProcessProjectionMessage replays the full review record set into the graph.
// The replay is fenced with a Postgres lease so only one worker projects at a
// time; when the lease is busy the error is returned so the message goes back
// through the retry queue and the replay runs again once the holder finishes.
func ProcessProjectionMessage(
	ctx context.Context,
	locks *leaselock.Client,
	records store.ReviewStore,
	graph graphstore.GraphStore,
	msg string,
) error {
	data := new(QueueProjectionMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	err := locks.WithLease(ctx, projectorLockKey, leaselock.Options{
		TTL:         10 * time.Minute,
		RenewEvery:  4 * time.Minute,
		TokenPrefix: "projector/",
	}, func(ctx context.Context) error {
		projector := project.NewProjector(project.NewProjectorParams{
			Records: records,
			Graph:   graph,
		})
		summary, err := projector.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("[Queue] Projection run complete",
			"trigger", data.Trigger,
			"records", summary.Total,
			"projected", summary.Projected,
			"failed", summary.Failed,
		)
		return nil
	})
	if errors.Is(err, leaselock.ErrBusy) {
		logger.Info("[Queue] Projection already running elsewhere, requeueing trigger", "trigger", data.Trigger)
	}
	return err
}
