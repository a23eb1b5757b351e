package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/zobayer1/estate-portal/internal/services"
)

// LoadIdentity resolves the user bound to the session and exposes it through
// CurrentUser. Unknown or inactive users leave the request anonymous.
func LoadIdentity(users IdentityStore, sessions SessionStore, timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			user, err := users.FindByID(ctx, id)
			cancel()

			switch {
			case err == nil && user.IsActive():
				r = r.WithContext(withCurrentUser(r.Context(), user))
			case err == nil:
				log.WithField("user_id", id).Debug("Session bound to inactive user")
			case errors.Is(err, services.ErrUserNotFound):
				log.WithField("user_id", id).Debug("Session bound to unknown user")
			default:
				log.WithError(err).WithField("user_id", id).Error("Failed to load session user")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin sends anonymous requests to the login page, remembering where they were headed.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.WithFields(log.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
			}).Info("Request handled")
		}()
		next.ServeHTTP(ww, r)
	})
}
