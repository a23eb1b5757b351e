package handlers

import (
	"net/http"
	"time"

	"github.com/zobayer1/estate-portal/internal/models"
	"github.com/zobayer1/estate-portal/internal/templates"
)

type HomeHandler struct {
	base
}

func NewHomeHandler(sessions SessionStore, renderer Renderer, timeout time.Duration) *HomeHandler {
	return &HomeHandler{base: newBase(sessions, renderer, timeout)}
}

func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if CurrentUser(r) == nil {
		h.redirect(w, r, "/login")
		return
	}
	h.render(w, r, templates.PageHome, h.pageData(r, "Home - Premium Estate", templates.PageHome))
}

// HandleDashboard expects RequireLogin in front of it.
func (h *HomeHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.PageDashboard, models.DashboardPageData{
		PageData: h.pageData(r, "Dashboard - Premium Estate", templates.PageDashboard),
		User:     CurrentUser(r),
	})
}
