// package video_api provides video-related API handlers.
package video_api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/ingest"
	"github.com/tutorhub/tutorhub/internal/media"
	"github.com/tutorhub/tutorhub/pkg/utils/filename"
)

// HandleUpload ingests a multipart video upload and returns the created
// asset.
func HandleUpload(sm *auth.SessionManager, ing *ingest.Ingestor) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("video")
		if err != nil {
			return common.FailJSON(c, 400, "no video file in request", err)
		}

		src, err := fileHeader.Open()
		if err != nil {
			return common.FailJSON(c, 500, "failed to read upload", err)
		}
		defer src.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		video, err := ing.Ingest(c.Request().Context(), ingest.Request{
			Reader:      src,
			FileName:    filename.Sanitize(fileHeader.Filename, 0),
			ContentType: contentType,
			UserID:      userUUID,
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: c.FormValue("description"),
			Category:    c.FormValue("category"),
			Tags:        parseTags(c.FormValue("tags")),
		})
		if err != nil {
			slog.Error("video ingest failed", "file", fileHeader.Filename, "error", err)
			return common.FailJSON(c, 500, ingestFailureMessage(err), err)
		}

		return c.JSON(201, viewtypes.VideoFromRow(video))
	}
}

func ingestFailureMessage(err error) string {
	switch {
	case errors.Is(err, media.ErrNoVideoStream):
		return "uploaded file has no video stream"
	case errors.Is(err, media.ErrProbeFailed):
		return "failed to analyze uploaded file"
	case errors.Is(err, media.ErrInvalidDimensions):
		return "uploaded file has unusable dimensions"
	case errors.Is(err, media.ErrThumbnailFailed):
		return "failed to generate thumbnail"
	case errors.Is(err, ingest.ErrStorage):
		return "failed to store video"
	default:
		return "failed to ingest video"
	}
}

func parseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
