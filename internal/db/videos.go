package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const videoColumns = `id, user_id, title, description, category, video_blob, thumbnail_blob,
video_width, video_height, thumb_width, thumb_height, duration, file_name, file_size,
likes, dislikes, viewed_by, tags, created_at`

// NewVideoParams contains everything required to persist an ingested video.
// Both blobs must already be durably stored.
type NewVideoParams struct {
	UserID        pgtype.UUID
	Title         string
	Description   string
	Category      string
	VideoBlob     pgtype.UUID
	ThumbnailBlob pgtype.UUID
	VideoWidth    int32
	VideoHeight   int32
	ThumbWidth    int32
	ThumbHeight   int32
	Duration      float64
	FileName      string
	FileSize      int64
	Tags          []string
}

const insertVideo = `
INSERT INTO videos (id, user_id, title, description, category, video_blob, thumbnail_blob,
	video_width, video_height, thumb_width, thumb_height, duration, file_name, file_size, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + videoColumns

func (q *Queries) NewVideo(ctx context.Context, params NewVideoParams) (*Video, error) {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	row := q.db.QueryRow(ctx, insertVideo,
		PgUUID(uuid.New()),
		params.UserID,
		params.Title,
		params.Description,
		params.Category,
		params.VideoBlob,
		params.ThumbnailBlob,
		params.VideoWidth,
		params.VideoHeight,
		params.ThumbWidth,
		params.ThumbHeight,
		params.Duration,
		params.FileName,
		params.FileSize,
		tags,
	)

	var v Video
	if err := scanVideo(row, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

const getVideo = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

func (q *Queries) GetVideo(ctx context.Context, id pgtype.UUID) (*Video, error) {
	var v Video
	if err := scanVideo(q.db.QueryRow(ctx, getVideo, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

const listVideos = `SELECT ` + videoColumns + ` FROM videos ORDER BY created_at DESC`

func (q *Queries) ListVideos(ctx context.Context) ([]*Video, error) {
	rows, err := q.db.Query(ctx, listVideos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		var v Video
		if err := scanVideo(rows, &v); err != nil {
			return nil, err
		}
		videos = append(videos, &v)
	}
	return videos, rows.Err()
}

// UpdateVideoParams carries the mutable metadata fields.
type UpdateVideoParams struct {
	ID          pgtype.UUID
	Title       string
	Description string
	Category    string
	Tags        []string
}

const updateVideo = `
UPDATE videos SET title = $2, description = $3, category = $4, tags = $5
WHERE id = $1
RETURNING ` + videoColumns

func (q *Queries) UpdateVideo(ctx context.Context, params UpdateVideoParams) (*Video, error) {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	var v Video
	row := q.db.QueryRow(ctx, updateVideo, params.ID, params.Title, params.Description, params.Category, tags)
	if err := scanVideo(row, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

const deleteVideo = `DELETE FROM videos WHERE id = $1 RETURNING ` + videoColumns

// DeleteVideo removes the row and returns it so the caller can reap blobs.
func (q *Queries) DeleteVideo(ctx context.Context, id pgtype.UUID) (*Video, error) {
	var v Video
	if err := scanVideo(q.db.QueryRow(ctx, deleteVideo, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Reaction updates run as single statements so concurrent reactions on the
// same video never clobber each other. The CASE guards keep the operations
// idempotent and the likes/dislikes sets disjoint.

const likeVideo = `
UPDATE videos
SET dislikes = array_remove(dislikes, $2),
    likes = CASE WHEN $2 = ANY(likes) THEN likes ELSE array_append(likes, $2) END
WHERE id = $1
RETURNING ` + videoColumns

func (q *Queries) LikeVideo(ctx context.Context, id, viewer pgtype.UUID) (*Video, error) {
	var v Video
	if err := scanVideo(q.db.QueryRow(ctx, likeVideo, id, viewer), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

const dislikeVideo = `
UPDATE videos
SET likes = array_remove(likes, $2),
    dislikes = CASE WHEN $2 = ANY(dislikes) THEN dislikes ELSE array_append(dislikes, $2) END
WHERE id = $1
RETURNING ` + videoColumns

func (q *Queries) DislikeVideo(ctx context.Context, id, viewer pgtype.UUID) (*Video, error) {
	var v Video
	if err := scanVideo(q.db.QueryRow(ctx, dislikeVideo, id, viewer), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

const viewVideo = `
UPDATE videos
SET viewed_by = CASE WHEN $2 = ANY(viewed_by) THEN viewed_by ELSE array_append(viewed_by, $2) END
WHERE id = $1
RETURNING ` + videoColumns

func (q *Queries) ViewVideo(ctx context.Context, id, viewer pgtype.UUID) (*Video, error) {
	var v Video
	if err := scanVideo(q.db.QueryRow(ctx, viewVideo, id, viewer), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ApplyLike mirrors the likeVideo statement for in-memory values.
func ApplyLike(likes, dislikes []pgtype.UUID, viewer pgtype.UUID) (newLikes, newDislikes []pgtype.UUID) {
	return appendUnique(likes, viewer), removeUUID(dislikes, viewer)
}

// ApplyDislike mirrors the dislikeVideo statement for in-memory values.
func ApplyDislike(likes, dislikes []pgtype.UUID, viewer pgtype.UUID) (newLikes, newDislikes []pgtype.UUID) {
	return removeUUID(likes, viewer), appendUnique(dislikes, viewer)
}

// ApplyView mirrors the viewVideo statement for in-memory values.
func ApplyView(viewedBy []pgtype.UUID, viewer pgtype.UUID) []pgtype.UUID {
	return appendUnique(viewedBy, viewer)
}

func appendUnique(set []pgtype.UUID, u pgtype.UUID) []pgtype.UUID {
	for _, e := range set {
		if e == u {
			return set
		}
	}
	return append(set, u)
}

func removeUUID(set []pgtype.UUID, u pgtype.UUID) []pgtype.UUID {
	out := set[:0:0]
	for _, e := range set {
		if e != u {
			out = append(out, e)
		}
	}
	return out
}

func scanVideo(row rowScanner, v *Video) error {
	return row.Scan(
		&v.ID,
		&v.UserID,
		&v.Title,
		&v.Description,
		&v.Category,
		&v.VideoBlob,
		&v.ThumbnailBlob,
		&v.VideoWidth,
		&v.VideoHeight,
		&v.ThumbWidth,
		&v.ThumbHeight,
		&v.Duration,
		&v.FileName,
		&v.FileSize,
		&v.Likes,
		&v.Dislikes,
		&v.ViewedBy,
		&v.Tags,
		&v.CreatedAt,
	)
}
