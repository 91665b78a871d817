package web

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/call_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/chat_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/comment_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/connection_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/meeting_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/signaling_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/tutor_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/user_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/api/video_api"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/realtime"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/blob"
	"github.com/tutorhub/tutorhub/internal/config"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/email"
	"github.com/tutorhub/tutorhub/internal/ingest"
	"github.com/tutorhub/tutorhub/internal/notify"
)

type Webserver struct {
	*echo.Echo
	conf           config.Config
	sessionManager *auth.SessionManager
	dbc            *db.DatabaseConnection
	store          blob.Store
	ingestor       *ingest.Ingestor
	hub            *notify.Hub
	mailer         email.Sender
}

func NewWebserver(conf config.Config, dbc *db.DatabaseConnection, store blob.Store, ing *ingest.Ingestor, hub *notify.Hub, sessionManager *auth.SessionManager) (*Webserver, error) {
	e := echo.New()

	webserver := &Webserver{
		Echo:           e,
		conf:           conf,
		sessionManager: sessionManager,
		dbc:            dbc,
		store:          store,
		ingestor:       ing,
		hub:            hub,
	}

	if conf.EmailEnabled() {
		webserver.mailer = email.NewSMTPSender(conf)
	} else {
		slog.Info("SMTP not configured; connection request emails disabled")
	}

	webserver.registerRoutes()
	webserver.setupMiddleware()

	return webserver, nil
}

// VideoAnnouncer adapts the hub to the ingest pipeline's publish step.
type VideoAnnouncer struct {
	Hub *notify.Hub
}

func (a VideoAnnouncer) PublishVideo(v *db.Video) {
	a.Hub.Broadcast(notify.Event{Type: "newVideo", Payload: viewtypes.VideoFromRow(v)})
}

func (s *Webserver) setupMiddleware() {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit(s.conf.UploadLimit))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{s.conf.PublicURL},
		AllowCredentials: true,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/ws"
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))
}

func (s *Webserver) registerRoutes() {
	apiGroup := s.Group("/api")

	// Videos
	apiGroup.POST("/videos", video_api.HandleUpload(s.sessionManager, s.ingestor))
	apiGroup.GET("/videos", video_api.HandleIndex(s.dbc))
	apiGroup.GET("/videos/file/:blobId", video_api.HandleFile(s.store))
	apiGroup.GET("/videos/:id", video_api.HandleGet(s.dbc))
	apiGroup.PUT("/videos/:id", video_api.HandleUpdate(s.sessionManager, s.dbc))
	apiGroup.DELETE("/videos/:id", video_api.HandleDelete(s.sessionManager, s.dbc, s.ingestor))
	apiGroup.PUT("/videos/:id/like", video_api.HandleLike(s.sessionManager, s.dbc))
	apiGroup.PUT("/videos/:id/dislike", video_api.HandleDislike(s.sessionManager, s.dbc))
	apiGroup.PUT("/videos/:id/view", video_api.HandleView(s.sessionManager, s.dbc))

	// Comments
	apiGroup.POST("/videos/:id/comments", comment_api.HandleCreate(s.sessionManager, s.dbc))
	apiGroup.GET("/videos/:id/comments", comment_api.HandleIndex(s.dbc))
	apiGroup.DELETE("/comments/:id", comment_api.HandleDelete(s.sessionManager, s.dbc))

	// Users
	apiGroup.POST("/users/register", user_api.HandleRegister(s.sessionManager, s.dbc, s.store))
	apiGroup.POST("/users/login", user_api.HandleLogin(s.sessionManager, s.dbc))
	apiGroup.POST("/users/logout", user_api.HandleLogout(s.sessionManager))
	apiGroup.GET("/users", user_api.HandleIndex(s.sessionManager, s.dbc))
	apiGroup.POST("/users/:id/profile", user_api.HandleUpdateProfile(s.sessionManager, s.dbc, s.store))

	// Tutors
	apiGroup.POST("/tutors/register", tutor_api.HandleRegister(s.sessionManager, s.dbc, s.store))
	apiGroup.GET("/tutors", tutor_api.HandleIndex(s.dbc))

	// Connections
	apiGroup.POST("/connections", connection_api.HandleCreate(s.sessionManager, s.dbc, s.mailer))
	apiGroup.POST("/connections/:id/accept", connection_api.HandleAccept(s.sessionManager, s.dbc))
	apiGroup.POST("/connections/:id/decline", connection_api.HandleDecline(s.sessionManager, s.dbc))
	apiGroup.GET("/connections/requests/:userId", connection_api.HandleRequests(s.sessionManager, s.dbc))
	apiGroup.GET("/connections/accepted/:userId", connection_api.HandleAccepted(s.sessionManager, s.dbc))
	apiGroup.GET("/connections/status/:requesterId/:targetId", connection_api.HandleStatus(s.sessionManager, s.dbc))

	// Chat
	apiGroup.POST("/messages", chat_api.HandleCreate(s.sessionManager, s.dbc, s.hub))
	apiGroup.GET("/messages", chat_api.HandleConversation(s.sessionManager, s.dbc))
	apiGroup.GET("/chats/:userId", chat_api.HandlePartners(s.sessionManager, s.dbc))

	// Meetings and calls
	apiGroup.POST("/meetings", meeting_api.HandleCreate(s.dbc))
	apiGroup.GET("/meetings/:code", meeting_api.HandleValidate(s.dbc))
	apiGroup.POST("/calls", call_api.HandleCreate(s.sessionManager, s.dbc, s.hub))

	// WebRTC signaling relay
	apiGroup.POST("/signaling/offer", signaling_api.HandleOffer(s.sessionManager, s.hub))
	apiGroup.POST("/signaling/answer", signaling_api.HandleAnswer(s.sessionManager, s.hub))
	apiGroup.POST("/signaling/ice-candidate", signaling_api.HandleICECandidate(s.sessionManager, s.hub))

	// Live events
	s.GET("/ws", realtime.HandleSocket(s.sessionManager, s.hub))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})
}
