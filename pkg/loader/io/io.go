package io

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// IOReviewFileLoader loads review datasets from the local filesystem with
// caching. Concurrent reads of the same path are collapsed into one.
type IOReviewFileLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewIOReviewFileLoader creates a new filesystem-based loader.
func NewIOReviewFileLoader() *IOReviewFileLoader {
	return &IOReviewFileLoader{
		cache: make(map[string][]byte),
	}
}

// GetFileBytes reads the file content from the filesystem. Results are cached.
func (l *IOReviewFileLoader) GetFileBytes(ctx context.Context, path string) ([]byte, error) {
	l.cacheMu.RLock()
	if cached, ok := l.cache[path]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(path, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[path]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[path] = content
		l.cacheMu.Unlock()

		return content, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
