// package call_api provides call record API handlers.
package call_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/notify"
)

// HandleCreate records an outgoing call and rings the receiver's live
// streams.
func HandleCreate(sm *auth.SessionManager, dbc *db.DatabaseConnection, hub *notify.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerUUID, callerName, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		var body struct {
			Receiver string `json:"receiver"`
			Kind     string `json:"kind"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}

		receiverUUID, err := db.ParsePgUUID(body.Receiver)
		if err != nil {
			return common.ErrBadRequest("invalid receiver")
		}

		kind := db.CallKind(body.Kind)
		switch kind {
		case db.CallKindAudio, db.CallKindVideo:
		default:
			return common.ErrBadRequest("kind must be audio or video")
		}

		ctx := c.Request().Context()
		call, err := dbc.Queries(ctx).NewCall(ctx, callerUUID, receiverUUID, kind)
		if err != nil {
			slog.Error("failed to create call", "error", err)
			return common.ErrInternal("failed to create call")
		}

		view := viewtypes.CallFromRow(call)
		if hub != nil {
			hub.SendToUser(view.Receiver, notify.Event{
				Type: "incomingCall",
				Payload: map[string]any{
					"call":       view,
					"callerName": callerName,
				},
			})
		}

		return c.JSON(201, view)
	}
}
