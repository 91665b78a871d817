// package chat_api provides direct message API handlers.
package chat_api

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/notify"
)

// HandleCreate sends a message from the session user and pushes it to the
// recipient's live streams.
func HandleCreate(sm *auth.SessionManager, dbc *db.DatabaseConnection, hub *notify.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		senderUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		var body struct {
			Recipient string `json:"recipient"`
			Body      string `json:"body"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		if strings.TrimSpace(body.Body) == "" {
			return common.ErrBadRequest("message body is required")
		}

		recipientUUID, err := db.ParsePgUUID(body.Recipient)
		if err != nil {
			return common.ErrBadRequest("invalid recipient")
		}

		ctx := c.Request().Context()
		msg, err := dbc.Queries(ctx).NewMessage(ctx, senderUUID, recipientUUID, body.Body)
		if err != nil {
			slog.Error("failed to insert message", "error", err)
			return common.ErrInternal("failed to send message")
		}

		view := viewtypes.MessageFromRow(msg)
		if hub != nil {
			hub.SendToUser(view.Recipient, notify.Event{Type: "message", Payload: view})
		}

		return c.JSON(201, view)
	}
}

// HandleConversation returns the exchange between two users, oldest first.
func HandleConversation(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		otherUUID, err := db.ParsePgUUID(c.QueryParam("recipient"))
		if err != nil {
			// Accept either query key; the client sends whichever side it knows.
			otherUUID, err = db.ParsePgUUID(c.QueryParam("sender"))
			if err != nil {
				return common.ErrBadRequest("recipient or sender is required")
			}
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListConversation(ctx, userUUID, otherUUID)
		if err != nil {
			slog.Error("failed to list conversation", "error", err)
			return common.ErrInternal("failed to list messages")
		}

		return c.JSON(200, viewtypes.MessagesFromRows(rows))
	}
}

// HandlePartners lists the session user's conversations, newest first.
func HandlePartners(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := common.RequireSessionUser(c, sm); err != nil {
			return err
		}

		userUUID, err := common.RequireUUIDParam(c, "userId")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListChatPartners(ctx, userUUID)
		if err != nil {
			slog.Error("failed to list chat partners", "user_id", db.UUIDString(userUUID), "error", err)
			return common.ErrInternal("failed to list chats")
		}

		return c.JSON(200, viewtypes.ChatPartnersFromRows(rows))
	}
}
