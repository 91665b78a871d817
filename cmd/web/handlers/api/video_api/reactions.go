package video_api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/db"
)

// HandleLike records the session user's like. Liking removes any dislike
// by the same user; repeat likes are no-ops.
func HandleLike(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return reactionHandler(sm, dbc, func(ctx context.Context, q *db.Queries, id, viewer pgtype.UUID) (*db.Video, error) {
		return q.LikeVideo(ctx, id, viewer)
	})
}

// HandleDislike records the session user's dislike, removing any like.
func HandleDislike(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return reactionHandler(sm, dbc, func(ctx context.Context, q *db.Queries, id, viewer pgtype.UUID) (*db.Video, error) {
		return q.DislikeVideo(ctx, id, viewer)
	})
}

// HandleView adds the session user to the viewer set. A user counts once
// no matter how many times they watch.
func HandleView(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return reactionHandler(sm, dbc, func(ctx context.Context, q *db.Queries, id, viewer pgtype.UUID) (*db.Video, error) {
		return q.ViewVideo(ctx, id, viewer)
	})
}

func reactionHandler(sm *auth.SessionManager, dbc *db.DatabaseConnection, apply func(context.Context, *db.Queries, pgtype.UUID, pgtype.UUID) (*db.Video, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		videoUUID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		video, err := apply(ctx, dbc.Queries(ctx), videoUUID, userUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("video not found")
			}
			slog.Error("failed to update reaction", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to update reaction")
		}

		return c.JSON(200, viewtypes.VideoFromRow(video))
	}
}
