// package meeting_api provides meeting room API handlers.
package meeting_api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/email"
)

// HandleCreate opens a meeting and returns its join code.
func HandleCreate(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body struct {
			HostEmail string `json:"hostEmail" form:"hostEmail"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}

		address := strings.TrimSpace(body.HostEmail)
		if !email.IsEmail(address) {
			return common.ErrBadRequest("invalid host email")
		}

		ctx := c.Request().Context()
		meeting, err := dbc.Queries(ctx).NewMeeting(ctx, address)
		if err != nil {
			slog.Error("failed to create meeting", "error", err)
			return common.ErrInternal("failed to create meeting")
		}

		return c.JSON(201, viewtypes.MeetingFromRow(meeting))
	}
}

// HandleValidate checks a join code. Unknown and inactive codes both 404.
func HandleValidate(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := c.Param("code")
		if code == "" {
			return common.ErrBadRequest("code is required")
		}

		ctx := c.Request().Context()
		meeting, err := dbc.Queries(ctx).GetActiveMeetingByCode(ctx, code)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("meeting not found")
			}
			slog.Error("failed to validate meeting", "code", code, "error", err)
			return common.ErrInternal("failed to validate meeting")
		}

		return c.JSON(200, viewtypes.MeetingFromRow(meeting))
	}
}
