package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FSStore keeps blobs on the local filesystem: the object bytes live at
// <dir>/<uuid> and a JSON sidecar at <dir>/<uuid>.json carries the content
// type and size.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Put(ctx context.Context, r io.Reader, contentType string) (uuid.UUID, error) {
	id := uuid.New()

	// Write to a temp name first so a crash mid-copy never leaves a
	// readable half-object at the final path.
	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create blob file: %w", err)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return uuid.Nil, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return uuid.Nil, fmt.Errorf("failed to sync blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to close blob: %w", err)
	}

	sidecar, err := json.Marshal(Info{ContentType: contentType, Size: size})
	if err != nil {
		return uuid.Nil, err
	}
	if err := os.WriteFile(s.sidecarPath(id), sidecar, 0o644); err != nil {
		return uuid.Nil, fmt.Errorf("failed to write blob sidecar: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.objectPath(id)); err != nil {
		os.Remove(s.sidecarPath(id))
		return uuid.Nil, fmt.Errorf("failed to finalize blob: %w", err)
	}

	return id, nil
}

func (s *FSStore) Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, Info, error) {
	raw, err := os.ReadFile(s.sidecarPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, fmt.Errorf("failed to read blob sidecar: %w", err)
	}

	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, Info{}, fmt.Errorf("failed to parse blob sidecar: %w", err)
	}

	f, err := os.Open(s.objectPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, fmt.Errorf("failed to open blob: %w", err)
	}

	return f, info, nil
}

func (s *FSStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := os.Remove(s.objectPath(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	if err := os.Remove(s.sidecarPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob sidecar: %w", err)
	}
	return nil
}

func (s *FSStore) objectPath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String())
}

func (s *FSStore) sidecarPath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}
