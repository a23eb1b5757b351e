package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Users       IdentityStore
	Credentials CredentialChecker
	Sessions    SessionStore
	Renderer    Renderer
	Timeout     time.Duration
	// StaticDir is served under /static/ when set.
	StaticDir string
}

func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Users, cfg.Credentials, cfg.Sessions, cfg.Renderer, cfg.Timeout)
	userHandler := NewUserHandler(cfg.Users, cfg.Sessions, cfg.Renderer, cfg.Timeout)
	homeHandler := NewHomeHandler(cfg.Sessions, cfg.Renderer, cfg.Timeout)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/health", HandleHealth)
	if cfg.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(LoadIdentity(cfg.Users, cfg.Sessions, cfg.Timeout))

		r.Get("/", homeHandler.HandleHome)
		r.Get("/login", authHandler.HandleLogin)
		r.Post("/login", authHandler.HandleLogin)
		r.Get("/register", userHandler.HandleReg)
		r.Post("/register", userHandler.HandleReg)
		r.HandleFunc("/logout", authHandler.HandleLogout)
		r.With(RequireLogin).Get("/dashboard", homeHandler.HandleDashboard)
	})

	return r
}
