package video_api

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
)

// HandleUpdate edits a video's metadata. Only the uploader may edit.
func HandleUpdate(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
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
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Category    string   `json:"category"`
			Tags        []string `json:"tags"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		if strings.TrimSpace(body.Title) == "" {
			return common.ErrBadRequest("title is required")
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)

		current, err := q.GetVideo(ctx, videoUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("video not found")
			}
			slog.Error("failed to fetch video", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to fetch video")
		}
		if current.UserID != userUUID {
			return c.String(403, "forbidden")
		}

		video, err := q.UpdateVideo(ctx, db.UpdateVideoParams{
			ID:          videoUUID,
			Title:       strings.TrimSpace(body.Title),
			Description: body.Description,
			Category:    body.Category,
			Tags:        body.Tags,
		})
		if err != nil {
			slog.Error("failed to update video", "video_id", videoUUID, "error", err)
			return common.ErrInternal("failed to update video")
		}

		return c.JSON(200, viewtypes.VideoFromRow(video))
	}
}
