package object

import (
	"context"
	"io"
)

// ObjectStore persists report snapshots and other per-user blobs.
type ObjectStore interface {
	// Save writes the reader under the user's namespace and returns the
	// storage key and byte count.
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	// Open streams a previously saved object.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
