package store

import (
	"context"

	"github.com/grapevine-ai/grapevine/pkg/common"
)

// ReviewStore defines the interface for persisting flattened review records.
// The pipeline only ever appends rows and reads them back in bulk for graph
// projection; there is no update or delete path.
type ReviewStore interface {
	EnsureSchema(ctx context.Context) error

	SaveRecords(ctx context.Context, records []common.ReviewRecord) ([]int64, error)

	ListRecords(ctx context.Context) ([]common.ReviewRecord, error)
	CountRecords(ctx context.Context) (int64, error)
}

// ChunkRange invokes fn over [start,end) windows of at most chunkSize until
// total is covered, stopping at the first error.
func ChunkRange(total, chunkSize int, fn func(start, end int) error) error {
	if total <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = total
	}
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		if err := fn(start, end); err != nil {
			return err
		}
	}
	return nil
}
