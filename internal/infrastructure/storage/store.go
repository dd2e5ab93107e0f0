package storage

import (
	"context"
	"io"
)

// AudioStore persists uploaded meeting recordings. Implementations
// return an opaque path that is stored on the meeting record and later
// handed back to Open and Delete.
type AudioStore interface {
	// Save writes the audio stream under objectName and returns the
	// stored path.
	Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)

	// Open returns a reader over a previously saved recording.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a recording. Deleting a path that no longer
	// exists is not an error.
	Delete(ctx context.Context, path string) error
}
