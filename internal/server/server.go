package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/handlers/auth"
	"github.com/idnildas/hipchat/internal/handlers/room"
	"github.com/idnildas/hipchat/internal/handlers/user"
	"github.com/idnildas/hipchat/internal/middleware"
	"github.com/idnildas/hipchat/internal/utils"
)

type Server struct {
	Addr      string
	DB        *database.Store
	JWTSecret string
	JWTTTL    time.Duration
	Logger    logrus.FieldLogger
}

func NewServer(addr string, db *database.Store, jwtSecret string, jwtTTL time.Duration, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		Addr:      addr,
		DB:        db,
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,
		Logger:    logger,
	}
}

func HandlerFunc(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

// IssueToken signs a token for userID (0 for an integration token).
func (s *Server) IssueToken(userID int64, scopes ...string) (string, error) {
	return utils.GenerateJWT(userID, scopes, s.JWTSecret, s.JWTTTL)
}

// Handler builds the router serving the v2 API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// middlewares
	r.Use(middleware.Logger(s.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.HealthCheck)

	r.Route("/v2", func(r chi.Router) {
		// public
		r.Post("/oauth/token", HandlerFunc(&auth.TokenHandler{
			DB:        s.DB,
			JWTSecret: s.JWTSecret,
			JWTTTL:    s.JWTTTL,
		}))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(s.JWTSecret))
			r.Route("/room", s.roomRoutes)
			r.Route("/user", s.userRoutes)
		})
	})

	return r
}

func (s *Server) roomRoutes(r chi.Router) {
	scoped := func(scope string, h http.Handler) http.HandlerFunc {
		return HandlerFunc(middleware.RequireScope(scope)(h))
	}

	r.Get("/", scoped(utils.ScopeViewGroup, &room.RoomListHandler{DB: s.DB}))
	r.Post("/", scoped(utils.ScopeManageRooms, &room.CreateRoomHandler{DB: s.DB}))

	r.Route("/{room}", func(r chi.Router) {
		r.Get("/", scoped(utils.ScopeViewGroup, &room.GetRoomHandler{DB: s.DB}))
		r.Put("/", scoped(utils.ScopeAdminRoom, &room.UpdateRoomHandler{DB: s.DB}))
		r.Delete("/", scoped(utils.ScopeManageRooms, &room.DeleteRoomHandler{DB: s.DB}))

		r.Put("/topic", scoped(utils.ScopeAdminRoom, &room.TopicHandler{DB: s.DB}))
		r.Get("/history", scoped(utils.ScopeViewMessages, &room.HistoryHandler{DB: s.DB}))
		r.Get("/statistics", scoped(utils.ScopeViewGroup, &room.StatisticsHandler{DB: s.DB}))

		r.Post("/message", scoped(utils.ScopeSendMessage, &room.SendMessageHandler{DB: s.DB}))
		r.Post("/reply", scoped(utils.ScopeSendMessage, &room.ReplyHandler{DB: s.DB}))
		r.Post("/notification", scoped(utils.ScopeSendNotification, &room.NotificationHandler{DB: s.DB}))
		r.Post("/share/link", scoped(utils.ScopeSendMessage, &room.ShareLinkHandler{DB: s.DB}))
		r.Post("/share/file", scoped(utils.ScopeSendMessage, &room.ShareFileHandler{DB: s.DB}))

		r.Post("/invite/{user}", scoped(utils.ScopeAdminRoom, &room.InviteHandler{DB: s.DB}))
		r.Put("/member/{user}", scoped(utils.ScopeAdminRoom, &room.AddMemberHandler{DB: s.DB}))

		r.Get("/webhook", scoped(utils.ScopeAdminRoom, &room.ListWebhooksHandler{DB: s.DB}))
		r.Post("/webhook", scoped(utils.ScopeAdminRoom, &room.CreateWebhookHandler{DB: s.DB}))
		r.Get("/webhook/{webhook}", scoped(utils.ScopeAdminRoom, &room.GetWebhookHandler{DB: s.DB}))
		r.Delete("/webhook/{webhook}", scoped(utils.ScopeAdminRoom, &room.DeleteWebhookHandler{DB: s.DB}))
	})
}

func (s *Server) userRoutes(r chi.Router) {
	scoped := func(scope string, h http.Handler) http.HandlerFunc {
		return HandlerFunc(middleware.RequireScope(scope)(h))
	}

	r.Get("/", scoped(utils.ScopeViewGroup, &user.UserListHandler{DB: s.DB}))
	r.Post("/", scoped(utils.ScopeAdminGroup, &user.CreateUserHandler{DB: s.DB}))

	r.Route("/{user}", func(r chi.Router) {
		r.Get("/", scoped(utils.ScopeViewGroup, &user.ViewUserHandler{DB: s.DB}))
		r.Put("/", scoped(utils.ScopeAdminGroup, &user.UpdateUserHandler{DB: s.DB}))
		r.Delete("/", scoped(utils.ScopeAdminGroup, &user.DeleteUserHandler{DB: s.DB}))

		r.Post("/message", scoped(utils.ScopeSendMessage, &user.PrivateMessageHandler{DB: s.DB}))
		r.Post("/share/file", scoped(utils.ScopeSendMessage, &user.ShareFileHandler{DB: s.DB}))
		r.Get("/history/latest", scoped(utils.ScopeViewMessages, &user.HistoryHandler{DB: s.DB}))
	})
}

func (s *Server) Run() error {
	s.Logger.WithField("addr", s.Addr).Info("server running")
	return http.ListenAndServe(s.Addr, s.Handler())
}
