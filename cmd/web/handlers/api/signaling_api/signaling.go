// package signaling_api relays WebRTC session descriptions and ICE
// candidates between connected users.
package signaling_api

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/notify"
)

// HandleOffer relays an SDP offer to the target user.
func HandleOffer(sm *auth.SessionManager, hub *notify.Hub) echo.HandlerFunc {
	return relayHandler(sm, hub, "offer")
}

// HandleAnswer relays an SDP answer to the target user.
func HandleAnswer(sm *auth.SessionManager, hub *notify.Hub) echo.HandlerFunc {
	return relayHandler(sm, hub, "answer")
}

// HandleICECandidate relays an ICE candidate to the target user.
func HandleICECandidate(sm *auth.SessionManager, hub *notify.Hub) echo.HandlerFunc {
	return relayHandler(sm, hub, "ice-candidate")
}

// relayHandler forwards the payload to the target's live streams. The
// response is 200 whether or not the target is connected; signaling state
// is the peers' problem, not the relay's.
func relayHandler(sm *auth.SessionManager, hub *notify.Hub, eventType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		senderUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		var body struct {
			Target  string          `json:"target"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := c.Bind(&body); err != nil {
			return common.ErrBadRequest("invalid request body")
		}

		targetUUID, err := db.ParsePgUUID(body.Target)
		if err != nil {
			return common.ErrBadRequest("invalid target")
		}

		delivered := hub.SendToUser(db.UUIDString(targetUUID), notify.Event{
			Type: eventType,
			Payload: map[string]any{
				"from":    db.UUIDString(senderUUID),
				"payload": body.Payload,
			},
		})

		return c.JSON(200, map[string]any{"delivered": delivered})
	}
}
