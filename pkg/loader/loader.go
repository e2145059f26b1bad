package loader

import "context"

// ReviewFileLoader defines the interface for fetching raw review dataset
// bytes by path. Implementations load from the local filesystem or from
// object storage.
type ReviewFileLoader interface {
	GetFileBytes(ctx context.Context, path string) ([]byte, error)
}
