package pipeline

import (
	"context"
	"io"
)

// StorageService covers the object-storage operations the pipeline needs.
// gcsstore.Store is the production implementation.
type StorageService interface {
	Upload(ctx context.Context, bucket, object, contentType string, r io.Reader) (string, error)
	Fetch(ctx context.Context, gcsURI string) ([]byte, error)
}
