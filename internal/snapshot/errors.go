package snapshot

import "errors"

var (
	// ErrCacheMiss means no readable snapshot exists for a source.
	ErrCacheMiss = errors.New("snapshot not found")
	// ErrStale means a snapshot exists but its source has changed since it
	// was written.
	ErrStale = errors.New("snapshot is stale")
)
