package user_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/blob"
	"github.com/tutorhub/tutorhub/internal/db"
)

// HandleIndex lists registered students.
func HandleIndex(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := common.RequireSessionUser(c, sm); err != nil {
			return err
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListUsers(ctx)
		if err != nil {
			slog.Error("failed to list users", "error", err)
			return common.ErrInternal("failed to list users")
		}

		return c.JSON(200, viewtypes.UsersFromRows(rows))
	}
}

// HandleUpdateProfile updates the session user's profile. The photo part
// is optional; when present it replaces the stored photo.
func HandleUpdateProfile(sm *auth.SessionManager, dbc *db.DatabaseConnection, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		// Profile edits are restricted to the session user.
		paramUUID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}
		if paramUUID != userUUID {
			return c.String(403, "forbidden")
		}

		ctx := c.Request().Context()

		photoBlob, err := StorePhoto(ctx, c, store)
		if err != nil {
			slog.Error("failed to store profile photo", "error", err)
			return common.ErrInternal("failed to store photo")
		}

		user, err := dbc.Queries(ctx).UpdateUserProfile(ctx, db.UpdateProfileParams{
			ID:             userUUID,
			Year:           c.FormValue("year"),
			Course:         c.FormValue("course"),
			Institution:    c.FormValue("institution"),
			GraduationYear: c.FormValue("graduationYear"),
			Phone:          c.FormValue("phone"),
			PhotoBlob:      photoBlob,
		})
		if err != nil {
			slog.Error("failed to update profile", "user_id", db.UUIDString(userUUID), "error", err)
			return common.ErrInternal("failed to update profile")
		}

		return c.JSON(200, viewtypes.UserFromRow(user))
	}
}
