package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/gophboard-server/internal/api/http/handler"
	"github.com/dtroode/gophboard-server/internal/api/http/middleware"
	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
	"github.com/dtroode/gophboard-server/internal/service"
)

// Options tunes request handling.
type Options struct {
	SecureCookie   bool
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// Router wires board handlers and middleware into a chi mux.
type Router struct {
	authService    *service.Auth
	boardService   *service.Board
	contextManager model.ContextManager
	options        Options
	logger         *logger.Logger
}

func New(
	authService *service.Auth,
	boardService *service.Board,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		boardService:   boardService,
		contextManager: contextManager,
		options:        options,
		logger:         logger,
	}
}

// Register builds the HTTP handler serving pages, form actions and downloads.
func (r *Router) Register() (http.Handler, error) {
	pages, err := handler.NewPages(r.contextManager, r.logger)
	if err != nil {
		return nil, err
	}

	logging := middleware.NewLogging(r.logger)
	session := middleware.NewSession(r.authService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(logging.Handle)
	mux.Use(chimw.Recoverer)
	if r.options.RequestTimeout > 0 {
		mux.Use(chimw.Timeout(r.options.RequestTimeout))
	}
	mux.Use(session.Handle)

	mux.Get("/", pages.Index)
	mux.Get("/create", pages.Create)
	mux.Get("/login", pages.Login)
	mux.Get("/signup", pages.Signup)

	r.registerAuthRoutes(mux)
	r.registerBoardRoutes(mux)

	return mux, nil
}

func (r *Router) registerAuthRoutes(mux chi.Router) {
	authHandler := handler.NewAuth(r.authService, r.options.SecureCookie, r.logger)

	mux.Post("/register", authHandler.Register)
	mux.Post("/login", authHandler.Login)
	mux.Get("/logout", authHandler.Logout)
}

func (r *Router) registerBoardRoutes(mux chi.Router) {
	boardHandler := handler.NewBoard(r.boardService, r.contextManager, r.options.MaxUploadBytes, r.logger)

	mux.Get("/board", boardHandler.List)
	mux.Get("/download/{id}", boardHandler.Download)
	mux.With(middleware.RequireUser(r.contextManager, handler.UnauthorizedPost(r.logger))).
		Post("/post", boardHandler.Create)
}
