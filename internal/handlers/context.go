package handlers

import (
	"context"
	"net/http"

	"github.com/zobayer1/estate-portal/internal/models"
)

type contextKey struct{}

var currentUserKey = contextKey{}

func withCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the identity bound to the request, or nil for anonymous requests.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}
