// Package blob persists opaque byte objects addressed by UUID.
// Every stored object is owned by exactly one referencing record.
package blob

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no object exists for the given id.
var ErrNotFound = errors.New("blob: not found")

// Info describes a stored object.
type Info struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Store reads and writes blobs. Put streams the reader to durable storage
// and returns the assigned id; the object is fully persisted when Put
// returns. Delete fails loudly with ErrNotFound when the id is unknown.
type Store interface {
	Put(ctx context.Context, r io.Reader, contentType string) (uuid.UUID, error)
	Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, Info, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
