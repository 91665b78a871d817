// Package ingest turns an uploaded video file into a stored VideoAsset:
// probe, derive thumbnail, persist both blobs, insert the record, announce.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tutorhub/tutorhub/internal/blob"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/media"
)

// ErrStorage wraps blob store failures inside the pipeline.
var ErrStorage = errors.New("ingest: storage failure")

// Publisher announces a newly ingested video. Implementations must not
// block; delivery is fire and forget.
type Publisher interface {
	PublishVideo(v *db.Video)
}

// Deriver produces the thumbnail for a probed video file.
type Deriver interface {
	Derive(ctx context.Context, path string, info media.VideoInfo) (*media.Thumbnail, error)
}

// Repo is the slice of the database the pipeline touches.
type Repo interface {
	NewVideo(ctx context.Context, params db.NewVideoParams) (*db.Video, error)
	GetVideo(ctx context.Context, id pgtype.UUID) (*db.Video, error)
	DeleteVideo(ctx context.Context, id pgtype.UUID) (*db.Video, error)
}

// Request is one upload to ingest.
type Request struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	UserID      pgtype.UUID
	Title       string
	Description string
	Category    string
	Tags        []string
}

type Ingestor struct {
	Prober    media.Prober
	Deriver   Deriver
	Store     blob.Store
	Repo      Repo
	Publisher Publisher // optional
}

// Ingest runs the pipeline strictly in order with no retries: probe,
// derive, store video blob, store thumbnail blob, insert record. Any
// failure aborts; blobs already written by a failed ingestion are
// rolled back best-effort.
func (ing *Ingestor) Ingest(ctx context.Context, req Request) (*db.Video, error) {
	tmpDir, err := os.MkdirTemp("", "ingest-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create ingest scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	srcPath := filepath.Join(tmpDir, "upload")
	size, err := spool(srcPath, req.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}

	info, err := ing.Prober.Probe(ctx, srcPath)
	if err != nil {
		return nil, err
	}

	thumb, err := ing.Deriver.Derive(ctx, srcPath, info)
	if err != nil {
		return nil, err
	}

	videoBlob, err := ing.putFile(ctx, srcPath, req.ContentType)
	if err != nil {
		return nil, err
	}

	thumbBlob, err := ing.Store.Put(ctx, bytes.NewReader(thumb.Data), "image/jpeg")
	if err != nil {
		ing.rollback(videoBlob)
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	video, err := ing.Repo.NewVideo(ctx, db.NewVideoParams{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		VideoBlob:     db.PgUUID(videoBlob),
		ThumbnailBlob: db.PgUUID(thumbBlob),
		VideoWidth:    int32(info.Width),
		VideoHeight:   int32(info.Height),
		ThumbWidth:    int32(thumb.Width),
		ThumbHeight:   int32(thumb.Height),
		Duration:      info.Duration,
		FileName:      req.FileName,
		FileSize:      size,
		Tags:          req.Tags,
	})
	if err != nil {
		ing.rollback(videoBlob, thumbBlob)
		return nil, fmt.Errorf("failed to insert video record: %w", err)
	}

	if ing.Publisher != nil {
		ing.Publisher.PublishVideo(video)
	}

	return video, nil
}

// Remove deletes a video: both blobs first, then the record. A blob
// already missing from the store is logged and skipped so a previously
// interrupted removal can complete.
func (ing *Ingestor) Remove(ctx context.Context, id pgtype.UUID) (*db.Video, error) {
	video, err := ing.Repo.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, blobID := range []pgtype.UUID{video.VideoBlob, video.ThumbnailBlob} {
		err := ing.Store.Delete(ctx, uuid.UUID(blobID.Bytes))
		if errors.Is(err, blob.ErrNotFound) {
			slog.Warn("blob already missing during video removal", "blob", db.UUIDString(blobID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
	}

	return ing.Repo.DeleteVideo(ctx, id)
}

func (ing *Ingestor) putFile(ctx context.Context, path, contentType string) (uuid.UUID, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	defer f.Close()

	id, err := ing.Store.Put(ctx, f, contentType)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return id, nil
}

// rollback reaps blobs written by an ingestion that failed later on.
// Failures here are logged, never surfaced: the pipeline error already
// in flight is the one the caller needs.
func (ing *Ingestor) rollback(ids ...uuid.UUID) {
	for _, id := range ids {
		if err := ing.Store.Delete(context.Background(), id); err != nil {
			slog.Error("failed to roll back blob", "blob", id, "error", err)
		}
	}
}

func spool(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(f, r)
}
