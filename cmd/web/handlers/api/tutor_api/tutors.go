// package tutor_api provides tutor account API handlers.
package tutor_api

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/user_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/blob"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/email"
)

// HandleRegister creates a tutor account. The photo part is optional.
func HandleRegister(sm *auth.SessionManager, dbc *db.DatabaseConnection, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := strings.TrimSpace(c.FormValue("name"))
		address := strings.TrimSpace(c.FormValue("email"))
		password := c.FormValue("password")

		if name == "" || address == "" || password == "" {
			return common.ErrBadRequest("name, email and password are required")
		}
		if !email.IsEmail(address) {
			return common.ErrBadRequest("invalid email address")
		}

		ctx := c.Request().Context()

		photoBlob, err := user_api.StorePhoto(ctx, c, store)
		if err != nil {
			slog.Error("failed to store tutor photo", "error", err)
			return common.ErrInternal("failed to store photo")
		}

		tutor, err := dbc.Queries(ctx).NewTutor(ctx, db.NewTutorParams{
			Name:           name,
			Email:          address,
			Password:       password,
			Phone:          c.FormValue("phone"),
			Institution:    c.FormValue("institution"),
			Course:         c.FormValue("course"),
			Qualifications: c.FormValue("qualifications"),
			PhotoBlob:      photoBlob,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return common.ErrBadRequest("email already registered")
			}
			slog.Error("failed to create tutor", "email", address, "error", err)
			return common.ErrInternal("failed to register")
		}

		if err := sm.SaveSession(c.Response().Writer, c.Request(), db.UUIDString(tutor.ID), tutor.Name, auth.AccessTutor); err != nil {
			slog.Error("failed to save session after tutor register", "error", err)
		}

		return c.JSON(201, viewtypes.TutorFromRow(tutor))
	}
}

// HandleIndex lists registered tutors.
func HandleIndex(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListTutors(ctx)
		if err != nil {
			slog.Error("failed to list tutors", "error", err)
			return common.ErrInternal("failed to list tutors")
		}

		return c.JSON(200, viewtypes.TutorsFromRows(rows))
	}
}
