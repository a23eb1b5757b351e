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
	msgFixErrors     = "Please correct the errors below."
	msgEmailTaken    = "An account with this email already exists."
	msgUsernameTaken = "A user with that username already exists."
)

type UserHandler struct {
	base
	users IdentityStore
}

func NewUserHandler(users IdentityStore, sessions SessionStore, renderer Renderer, timeout time.Duration) *UserHandler {
	return &UserHandler{
		base:  newBase(sessions, renderer, timeout),
		users: users,
	}
}

func (h *UserHandler) HandleReg(w http.ResponseWriter, r *http.Request) {
	if CurrentUser(r) != nil {
		h.redirect(w, r, "/")
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.submitReg(w, r)
	default:
		h.renderRegister(w, r, helpers.NewRegistrationForm(nil))
	}
}

func (h *UserHandler) submitReg(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.WithError(err).Warn("Failed to parse registration form")
	}
	form := helpers.NewRegistrationForm(r.PostForm)
	form.Validate()

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if _, invalid := form.Errors["username"]; !invalid {
		taken, err := h.users.CheckUsernameExists(ctx, form.Username)
		if err != nil {
			log.WithError(err).Error("Failed to check username availability")
			h.flash(r, models.FlashError, msgSomethingWrong)
			h.renderRegister(w, r, form)
			return
		}
		if taken {
			form.Errors.Add("username", msgUsernameTaken)
		}
	}

	if !form.Errors.Valid() {
		h.flash(r, models.FlashError, msgFixErrors)
		h.renderRegister(w, r, form)
		return
	}

	exists, err := h.users.CheckEmailExists(ctx, form.Email)
	if err != nil {
		log.WithError(err).Error("Failed to check email availability")
		h.flash(r, models.FlashError, msgSomethingWrong)
		h.renderRegister(w, r, form)
		return
	}
	if exists {
		h.flash(r, models.FlashError, msgEmailTaken)
		h.renderRegister(w, r, form)
		return
	}

	user, err := h.users.CreateUser(ctx, models.NewUser{
		Email:     form.Email,
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password1,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			h.flash(r, models.FlashError, msgEmailTaken)
		case errors.Is(err, services.ErrUsernameTaken):
			form.Errors.Add("username", msgUsernameTaken)
			h.flash(r, models.FlashError, msgFixErrors)
		default:
			log.WithError(err).Error("Failed to create user")
			h.flash(r, models.FlashError, msgSomethingWrong)
		}
		h.renderRegister(w, r, form)
		return
	}
	log.WithField("user_id", user.ID).WithField("email", user.Email).Info("User registered successfully")

	if err := h.signIn(r, h.users, user); err != nil {
		log.WithError(err).Error("Failed to bind session")
		h.redirect(w, r, "/login")
		return
	}
	h.flash(r, models.FlashSuccess, "Welcome to Premium Estate, "+user.FirstName+"!")
	h.redirect(w, r, "/")
}

func (h *UserHandler) renderRegister(w http.ResponseWriter, r *http.Request, form *helpers.RegistrationForm) {
	h.render(w, r, templates.PageRegister, models.AuthPageData{
		PageData: h.pageData(r, "Register - Premium Estate", templates.PageRegister),
		FormType: "register",
		Values:   form.Values(),
		Errors:   form.Errors,
	})
}
