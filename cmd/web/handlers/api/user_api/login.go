package user_api

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
	"github.com/tutorhub/tutorhub/pkg/utils/passwords"
)

// HandleLogin authenticates a student and starts a session.
func HandleLogin(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body struct {
			Email    string `json:"email" form:"email"`
			Password string `json:"password" form:"password"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}

		address := strings.TrimSpace(body.Email)
		if address == "" || body.Password == "" {
			return common.ErrBadRequest("email and password are required")
		}

		ctx := c.Request().Context()
		user, err := dbc.Queries(ctx).GetUserByEmail(ctx, address)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrUnauthorized()
			}
			slog.Error("failed to fetch user for login", "email", address, "error", err)
			return common.ErrInternal("failed to log in")
		}

		match, err := user.Password.ComparePasswordAndHash(passwords.PasswordInput{Password: body.Password})
		if err != nil || !match {
			return common.ErrUnauthorized()
		}

		if err := sm.SaveSession(c.Response().Writer, c.Request(), db.UUIDString(user.ID), user.Name, auth.AccessUser); err != nil {
			slog.Error("failed to save session", "user_id", db.UUIDString(user.ID), "error", err)
			return common.ErrInternal("failed to log in")
		}

		return c.JSON(200, viewtypes.UserFromRow(user))
	}
}

// HandleLogout clears the session cookie.
func HandleLogout(sm *auth.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sm.ClearSession(c.Response().Writer, c.Request()); err != nil {
			slog.Warn("failed to clear session", "error", err)
		}
		return c.JSON(200, map[string]any{"status": "logged out"})
	}
}
