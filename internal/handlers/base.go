package handlers

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zobayer1/estate-portal/internal/models"
)

const (
	defaultTimeout = 5 * time.Second

	msgSomethingWrong = "Something went wrong. Please try again."
)

// base holds what every page handler needs: the session for flashes and redirects, and
// the renderer.
type base struct {
	sessions SessionStore
	renderer Renderer
	timeout  time.Duration
}

func newBase(sessions SessionStore, renderer Renderer, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return base{sessions: sessions, renderer: renderer, timeout: timeout}
}

func (b *base) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), b.timeout)
}

func (b *base) flash(r *http.Request, level models.FlashLevel, message string) {
	if err := b.sessions.AddFlash(r, level, message); err != nil {
		log.WithError(err).Error("Failed to queue flash message")
	}
}

// pageData pops the queued flashes; they are gone once the session is saved.
func (b *base) pageData(r *http.Request, title, page string) models.PageData {
	flashes, err := b.sessions.Flashes(r)
	if err != nil {
		log.WithError(err).Error("Failed to read flash messages")
	}
	return models.PageData{
		Title:       title,
		Page:        page,
		CurrentUser: CurrentUser(r),
		Flashes:     flashes,
	}
}

func (b *base) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := b.sessions.Save(w, r); err != nil {
		log.WithError(err).Error("Failed to save session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.renderer.Render(w, page, data); err != nil {
		log.WithError(err).WithField("page", page).Error("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (b *base) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if err := b.sessions.Save(w, r); err != nil {
		log.WithError(err).Error("Failed to save session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

// signIn binds the session to user and records the login time. A failure to record the
// time is logged and does not undo the login.
func (b *base) signIn(r *http.Request, users IdentityStore, user *models.User) error {
	if err := b.sessions.Bind(r, user.ID); err != nil {
		return err
	}
	ctx, cancel := b.storeContext(r)
	defer cancel()
	if err := users.MarkLoggedIn(ctx, user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}
	log.WithField("user_id", user.ID).Info("User signed in")
	return nil
}
