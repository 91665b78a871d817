package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tutorhub/tutorhub/pkg/utils/markdown"
)

// CommentWithAuthor joins the commenting user's display fields for listings.
type CommentWithAuthor struct {
	Comment
	AuthorName  string
	AuthorPhoto pgtype.UUID
}

const insertComment = `
INSERT INTO comments (id, user_id, video_id, body)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, video_id, body, created_at
`

func (q *Queries) NewComment(ctx context.Context, userID, videoID pgtype.UUID, body markdown.Markdown) (*Comment, error) {
	var c Comment
	row := q.db.QueryRow(ctx, insertComment, PgUUID(uuid.New()), userID, videoID, body)
	if err := row.Scan(&c.ID, &c.UserID, &c.VideoID, &c.Body, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

const listCommentsByVideo = `
SELECT c.id, c.user_id, c.video_id, c.body, c.created_at, u.name, u.photo_blob
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.video_id = $1
ORDER BY c.created_at DESC
`

func (q *Queries) ListCommentsByVideo(ctx context.Context, videoID pgtype.UUID) ([]*CommentWithAuthor, error) {
	rows, err := q.db.Query(ctx, listCommentsByVideo, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.UserID, &c.VideoID, &c.Body, &c.CreatedAt, &c.AuthorName, &c.AuthorPhoto); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// A comment may be removed by its author or by the owner of the video it
// sits on. The ownership check lives in the statement itself so the delete
// stays a single round trip.
const deleteComment = `
DELETE FROM comments c
USING videos v
WHERE c.id = $1 AND v.id = c.video_id AND (c.user_id = $2 OR v.user_id = $2)
RETURNING c.id, c.user_id, c.video_id, c.body, c.created_at
`

func (q *Queries) DeleteComment(ctx context.Context, commentID, actor pgtype.UUID) (*Comment, error) {
	var c Comment
	row := q.db.QueryRow(ctx, deleteComment, commentID, actor)
	if err := row.Scan(&c.ID, &c.UserID, &c.VideoID, &c.Body, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
