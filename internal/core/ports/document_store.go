package ports

import (
	"context"
	"io"
)

// DocumentStore defines the blob storage contract for uploaded document
// content. The store only needs to persist bytes under a caller-chosen
// relative path and hand the stored path back; serving the bytes to users is
// a concern of the customer-facing application.
type DocumentStore interface {
	// Store writes the content under the given relative path and returns
	// the path at which it was stored.
	Store(ctx context.Context, path string, content io.Reader) (string, error)
}
