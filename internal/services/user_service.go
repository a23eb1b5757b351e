package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/zobayer1/estate-portal/internal/models"
)

const userColumns = "id, email, username, first_name, last_name, password_hash, status, created_at, last_login"

type UserService struct {
	DB         *sql.DB
	bcryptCost int
}

func NewUserService(db *sql.DB, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{DB: db, bcryptCost: bcryptCost}
}

func (s *UserService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email)
}

func (s *UserService) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username)
}

func (s *UserService) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		log.Errorf("Failed to check existence: %v", err)
		return false, fmt.Errorf("check existence: %w", err)
	}
	return exists, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (s *UserService) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.Status, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debugf("No user found for %v", arg)
			return nil, ErrUserNotFound
		}
		log.Errorf("Failed to query user: %v", err)
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// CheckPassword verifies password against the stored hash. Inactive accounts never
// authenticate.
func (s *UserService) CheckPassword(_ context.Context, user *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		log.Errorf("Failed to compare password hash: %v", err)
		return fmt.Errorf("compare password hash: %w", err)
	}
	if !user.IsActive() {
		return ErrInactiveUser
	}
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, input models.NewUser) (*models.User, error) {
	tx, txErr := s.DB.BeginTx(ctx, nil)
	if txErr != nil {
		log.Errorf("Failed to begin transaction: %v", txErr)
		return nil, fmt.Errorf("begin transaction: %w", txErr)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("Failed to rollback transaction: %v", rbErr)
		}
	}()

	hashedPassword, hpErr := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if hpErr != nil {
		log.Errorf("Failed to hash password: %v", hpErr)
		return nil, fmt.Errorf("hash password: %w", hpErr)
	}

	createdAt := time.Now().UTC()
	result, resErr := tx.ExecContext(ctx,
		"INSERT INTO users (email, username, first_name, last_name, password_hash, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		input.Email, input.Username, input.FirstName, input.LastName, string(hashedPassword), models.StatusActive, createdAt,
	)
	if resErr != nil {
		if taken := uniqueViolation(resErr); taken != nil {
			return nil, taken
		}
		log.Errorf("Failed to insert user: %v", resErr)
		return nil, fmt.Errorf("insert user: %w", resErr)
	}

	id, idErr := result.LastInsertId()
	if idErr != nil {
		log.Errorf("Failed to retrieve last inserted id: %v", idErr)
		return nil, fmt.Errorf("last insert id: %w", idErr)
	}

	if cmErr := tx.Commit(); cmErr != nil {
		log.Errorf("Failed to commit transaction: %v", cmErr)
		return nil, fmt.Errorf("commit transaction: %w", cmErr)
	}

	log.Infof("Created new user with id: %d", id)

	return &models.User{
		ID:           id,
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hashedPassword),
		Status:       models.StatusActive,
		CreatedAt:    createdAt,
	}, nil
}

func (s *UserService) MarkLoggedIn(ctx context.Context, id int64) error {
	if _, err := s.DB.ExecContext(ctx, "UPDATE users SET last_login = ? WHERE id = ?", time.Now().UTC(), id); err != nil {
		log.Errorf("Failed to record last login: %v", err)
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func uniqueViolation(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return nil
	}
	switch {
	case strings.Contains(sqliteErr.Error(), "users.email"):
		return ErrEmailTaken
	case strings.Contains(sqliteErr.Error(), "users.username"):
		return ErrUsernameTaken
	default:
		return nil
	}
}
