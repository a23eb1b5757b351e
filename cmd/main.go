package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zobayer1/estate-portal/config"
	"github.com/zobayer1/estate-portal/internal/handlers"
	"github.com/zobayer1/estate-portal/internal/services"
	"github.com/zobayer1/estate-portal/internal/templates"
	"github.com/zobayer1/estate-portal/pkg/db"
	"github.com/zobayer1/estate-portal/pkg/session"
)

// version (string): Set at build-time via ldflags
var version = "version:unknown"

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Infof("Estate Portal %s", version)

	cfg, cfgErr := config.NewConfig()
	if cfgErr != nil {
		log.WithError(cfgErr).Fatal("Failed to load configuration")
	}

	level, lvlErr := log.ParseLevel(cfg.LogLevel)
	if lvlErr != nil {
		log.WithError(lvlErr).Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	conn, dbErr := db.Open(cfg.SqliteDb)
	if dbErr != nil {
		log.WithError(dbErr).Fatal("Failed to initialize database")
	}
	defer func(DB *sql.DB) {
		if err := DB.Close(); err != nil {
			log.WithError(err).Error("Failed to close database connection")
		}
	}(conn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, conn); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	renderer, tmplErr := templates.NewRenderer()
	if tmplErr != nil {
		log.WithError(tmplErr).Fatal("Failed to parse templates")
	}

	store := session.NewCookieStore(cfg.Secret, session.Options{
		Domain: cfg.CookieDomain,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.SecureCookies(),
	})
	userService := services.NewUserService(conn, cfg.BcryptCost)

	router := handlers.NewRouter(handlers.RouterConfig{
		Users:       userService,
		Credentials: userService,
		Sessions:    session.NewManager(store, cfg.SessionName),
		Renderer:    renderer,
		Timeout:     cfg.DBTimeout,
		StaticDir:   cfg.StaticDir,
	})

	server := &http.Server{
		Addr:              cfg.Host,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{
				tls.CurveP256,
				tls.X25519,
			},
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Failed to shut down server")
		}
	}()

	var err error
	if cfg.TLSEnabled() {
		log.Infof("Starting server on %s (TLS)", cfg.Host)
		err = server.ListenAndServeTLS(cfg.CertPath, cfg.KeyPath)
	} else {
		if cfg.SecureCookies() {
			log.Warn("Serving plain HTTP with secure cookies; sessions only work behind a TLS proxy")
		}
		log.Infof("Starting server on %s", cfg.Host)
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatalf("Failed to listen on %s", cfg.Host)
	}

	log.Info("Server terminated!")
}
