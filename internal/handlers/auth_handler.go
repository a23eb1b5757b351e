package handlers

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zobayer1/estate-portal/internal/helpers"
	"github.com/zobayer1/estate-portal/internal/models"
	"github.com/zobayer1/estate-portal/internal/services"
	"github.com/zobayer1/estate-portal/internal/templates"
)

const (
	msgNoAccount          = "No account found with this email address."
	msgInvalidCredentials = "Invalid email or password."
	msgLoggedOut          = "You have been logged out successfully."
)

type AuthHandler struct {
	base
	users       IdentityStore
	credentials CredentialChecker
}

func NewAuthHandler(users IdentityStore, credentials CredentialChecker, sessions SessionStore, renderer Renderer, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		base:        newBase(sessions, renderer, timeout),
		users:       users,
		credentials: credentials,
	}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if CurrentUser(r) != nil {
		h.redirect(w, r, "/")
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.submitLogin(w, r)
	default:
		h.renderLogin(w, r, helpers.NewLoginForm(nil))
	}
}

func (h *AuthHandler) submitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.WithError(err).Warn("Failed to parse login form")
	}
	form := helpers.NewLoginForm(r.PostForm)
	if !form.Validate() {
		h.renderLogin(w, r, form)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.flash(r, models.FlashError, msgNoAccount)
		} else {
			log.WithError(err).Error("Failed to look up user by email")
			h.flash(r, models.FlashError, msgSomethingWrong)
		}
		h.renderLogin(w, r, form)
		return
	}

	if err := h.credentials.CheckPassword(ctx, user, form.Password); err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) && !errors.Is(err, services.ErrInactiveUser) {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to check credentials")
		}
		log.WithField("user_id", user.ID).Info("Rejected login attempt")
		h.flash(r, models.FlashError, msgInvalidCredentials)
		h.renderLogin(w, r, form)
		return
	}

	if err := h.signIn(r, h.users, user); err != nil {
		log.WithError(err).Error("Failed to bind session")
		h.flash(r, models.FlashError, msgSomethingWrong)
		h.renderLogin(w, r, form)
		return
	}
	h.flash(r, models.FlashSuccess, "Welcome back, "+user.DisplayName()+"!")
	h.redirect(w, r, "/")
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, form *helpers.LoginForm) {
	h.render(w, r, templates.PageLogin, models.AuthPageData{
		PageData: h.pageData(r, "Login - Premium Estate", templates.PageLogin),
		FormType: "login",
		Values:   form.Values(),
		Errors:   form.Errors,
	})
}

// HandleLogout clears the session whether or not anyone was signed in.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user := CurrentUser(r); user != nil {
		log.WithField("user_id", user.ID).Info("User signed out")
	}
	if err := h.sessions.Clear(r); err != nil {
		log.WithError(err).Error("Failed to clear session")
	}
	h.flash(r, models.FlashInfo, msgLoggedOut)
	h.redirect(w, r, "/login")
}
