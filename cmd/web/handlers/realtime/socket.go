// package realtime bridges the notification hub onto websockets.
package realtime

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/notify"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session cookie is the actual gate; the socket carries no commands.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSocket subscribes the session user to live events: newVideo
// broadcasts, chat messages, incoming calls and signaling relays.
func HandleSocket(sm *auth.SessionManager, hub *notify.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		userUUID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}
		userID := db.UUIDString(userUUID)

		events, unsubscribe, ok := hub.Subscribe(userID)
		if !ok {
			return c.String(503, "too many streams")
		}

		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			unsubscribe()
			return nil
		}

		// Reader drains control frames and notices the peer going away.
		go func() {
			defer unsubscribe()
			conn.SetReadLimit(512)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				conn.SetReadDeadline(time.Now().Add(pongWait))
				return nil
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		defer conn.Close()

		for {
			select {
			case evt, open := <-events:
				if !open {
					conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
					return nil
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(evt); err != nil {
					slog.Debug("websocket write failed", "user_id", userID, "error", err)
					unsubscribe()
					return nil
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					unsubscribe()
					return nil
				}
			}
		}
	}
}
