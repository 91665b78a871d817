// package connection_api provides connection request API handlers.
package connection_api

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/email"
)

// HandleCreate records a pending connection request and notifies the
// target by email, best effort.
func HandleCreate(sm *auth.SessionManager, dbc *db.DatabaseConnection, sender email.Sender) echo.HandlerFunc {
	return func(c echo.Context) error {
		requesterUUID, requesterName, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		var body struct {
			Target string `json:"target"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}

		targetUUID, err := db.ParsePgUUID(body.Target)
		if err != nil {
			return common.ErrBadRequest("invalid target")
		}
		if targetUUID == requesterUUID {
			return common.ErrBadRequest("cannot connect to yourself")
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)

		target, err := q.GetUserByID(ctx, targetUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("target user not found")
			}
			slog.Error("failed to fetch connection target", "target", body.Target, "error", err)
			return common.ErrInternal("failed to create connection")
		}

		conn, err := q.NewConnection(ctx, requesterUUID, targetUUID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return common.ErrBadRequest("a pending request already exists")
			}
			slog.Error("failed to create connection", "target", body.Target, "error", err)
			return common.ErrInternal("failed to create connection")
		}

		// A lost email never fails the request.
		if sender != nil {
			go func() {
				if err := sender.SendConnectionRequest(target.Email, target.Name, requesterName); err != nil {
					slog.Warn("failed to send connection request email", "to", target.Email, "error", err)
				}
			}()
		}

		return c.JSON(201, viewtypes.ConnectionFromRow(conn))
	}
}

// HandleAccept accepts a pending request. Only the target may accept.
func HandleAccept(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return resolveHandler(sm, dbc, db.ConnectionStatusAccepted)
}

// HandleDecline declines a pending request. Only the target may decline.
func HandleDecline(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return resolveHandler(sm, dbc, db.ConnectionStatusDeclined)
}

func resolveHandler(sm *auth.SessionManager, dbc *db.DatabaseConnection, status db.ConnectionStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		connUUID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		conn, err := dbc.Queries(ctx).ResolveConnection(ctx, connUUID, userUUID, status)
		if err != nil {
			// Unknown id, already resolved, or not the target.
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("no pending request")
			}
			slog.Error("failed to resolve connection", "connection_id", connUUID, "error", err)
			return common.ErrInternal("failed to update connection")
		}

		return c.JSON(200, viewtypes.ConnectionFromRow(conn))
	}
}

// HandleRequests lists pending requests aimed at a user.
func HandleRequests(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := common.RequireSessionUser(c, sm); err != nil {
			return err
		}

		userUUID, err := common.RequireUUIDParam(c, "userId")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListPendingForUser(ctx, userUUID)
		if err != nil {
			slog.Error("failed to list pending connections", "user_id", db.UUIDString(userUUID), "error", err)
			return common.ErrInternal("failed to list requests")
		}

		return c.JSON(200, viewtypes.ConnectionsFromRows(rows))
	}
}

// HandleAccepted lists a user's accepted connections, either direction.
func HandleAccepted(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := common.RequireSessionUser(c, sm); err != nil {
			return err
		}

		userUUID, err := common.RequireUUIDParam(c, "userId")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListAcceptedForUser(ctx, userUUID)
		if err != nil {
			slog.Error("failed to list accepted connections", "user_id", db.UUIDString(userUUID), "error", err)
			return common.ErrInternal("failed to list connections")
		}

		return c.JSON(200, viewtypes.ConnectionsFromRows(rows))
	}
}

// HandleStatus returns the most recent connection between two users.
func HandleStatus(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := common.RequireSessionUser(c, sm); err != nil {
			return err
		}

		requesterUUID, err := common.RequireUUIDParam(c, "requesterId")
		if err != nil {
			return err
		}
		targetUUID, err := common.RequireUUIDParam(c, "targetId")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		conn, err := dbc.Queries(ctx).GetConnectionStatus(ctx, requesterUUID, targetUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(200, map[string]any{"status": "none"})
			}
			slog.Error("failed to fetch connection status", "error", err)
			return common.ErrInternal("failed to fetch status")
		}

		return c.JSON(200, viewtypes.ConnectionFromRow(conn))
	}
}
