// package comment_api provides comment API handlers.
package comment_api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/pkg/utils/markdown"
)

// HandleCreate adds a comment to a video.
func HandleCreate(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		videoUUID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var body struct {
			Body markdown.Markdown `json:"body"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		body.Body.Source = strings.TrimSpace(body.Body.Source)
		if body.Body.Source == "" {
			return common.ErrBadRequest("comment body is required")
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)

		if _, err := q.GetVideo(ctx, videoUUID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("video not found")
			}
			slog.Error("failed to fetch video for comment", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to add comment")
		}

		comment, err := q.NewComment(ctx, userUUID, videoUUID, body.Body)
		if err != nil {
			slog.Error("failed to insert comment", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to add comment")
		}

		return c.JSON(201, viewtypes.CommentFromRow(comment))
	}
}

// HandleIndex lists a video's comments, newest first.
func HandleIndex(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoUUID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListCommentsByVideo(ctx, videoUUID)
		if err != nil {
			slog.Error("failed to list comments", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to list comments")
		}

		return c.JSON(200, viewtypes.CommentsFromRows(rows))
	}
}

// HandleDelete removes a comment. Allowed for the comment's author and
// for the owner of the video it sits on.
func HandleDelete(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		commentUUID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		_, err = dbc.Queries(ctx).DeleteComment(ctx, commentUUID, userUUID)
		if err != nil {
			// No row means unknown comment or an actor without rights;
			// don't reveal which.
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("comment not found")
			}
			slog.Error("failed to delete comment", "comment_id", commentUUID, "error", err)
			return common.ErrInternal("failed to delete comment")
		}

		return c.JSON(200, map[string]any{"status": "deleted", "comment_id": db.UUIDString(commentUUID)})
	}
}
