package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/zobayer1/estate-portal/internal/models"
)

// IdentityStore persists and looks up user accounts.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CheckUsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, input models.NewUser) (*models.User, error)
	MarkLoggedIn(ctx context.Context, id int64) error
}

// CredentialChecker verifies a password for a known user.
type CredentialChecker interface {
	CheckPassword(ctx context.Context, user *models.User, password string) error
}

// SessionStore binds requests to a user id and queues flash messages. Changes are
// written to the response by Save.
type SessionStore interface {
	Bind(r *http.Request, userID int64) error
	Clear(r *http.Request) error
	UserID(r *http.Request) (int64, bool)
	AddFlash(r *http.Request, level models.FlashLevel, message string) error
	Flashes(r *http.Request) ([]models.Flash, error)
	Save(w http.ResponseWriter, r *http.Request) error
}

type Renderer interface {
	Render(w io.Writer, page string, data any) error
}
