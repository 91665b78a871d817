package video_api

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/ingest"
)

// HandleDelete removes a video: both blobs first, then the record. Only
// the uploader may delete.
func HandleDelete(sm *auth.SessionManager, dbc *db.DatabaseConnection, ing *ingest.Ingestor) echo.HandlerFunc {
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

		video, err := dbc.Queries(ctx).GetVideo(ctx, videoUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("video not found")
			}
			slog.Error("failed to fetch video", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to delete video")
		}
		if video.UserID != userUUID {
			return c.String(403, "forbidden")
		}

		if _, err := ing.Remove(ctx, videoUUID); err != nil {
			slog.Error("failed to remove video", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to delete video")
		}

		return c.JSON(200, map[string]any{"status": "deleted", "video_id": db.UUIDString(videoUUID)})
	}
}
