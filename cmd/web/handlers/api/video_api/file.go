package video_api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/internal/blob"
)

// HandleFile streams a stored blob (video or thumbnail) with its recorded
// content type and length.
func HandleFile(store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		blobID, err := uuid.Parse(c.Param("blobId"))
		if err != nil {
			return common.ErrBadRequest("invalid blobId")
		}

		rc, info, err := store.Open(c.Request().Context(), blobID)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				return common.ErrNotFound("file not found")
			}
			slog.Error("failed to open blob", "blob_id", blobID, "error", err)
			return common.ErrInternal("failed to open file")
		}
		defer rc.Close()

		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
		return c.Stream(200, info.ContentType, rc)
	}
}
