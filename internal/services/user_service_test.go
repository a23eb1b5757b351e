package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zobayer1/estate-portal/internal/models"
	"github.com/zobayer1/estate-portal/pkg/db"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))
	return NewUserService(conn, bcrypt.MinCost)
}

func janeInput() models.NewUser {
	return models.NewUser{
		Email:     "jane@example.com",
		Username:  "jane_d",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "Tr0ub4dor&3",
	}
}

func TestUserService_CreateAndFind(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, janeInput())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.NotEqual(t, "Tr0ub4dor&3", created.PasswordHash)

	byEmail, err := s.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "jane_d", byEmail.Username)
	assert.Equal(t, "Jane", byEmail.FirstName)
	assert.False(t, byEmail.LastLogin.Valid)

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", byID.Email)
}

func TestUserService_FindMissing(t *testing.T) {
	s := newTestService(t)

	_, err := s.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Exists(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.CreateUser(ctx, janeInput())
	require.NoError(t, err)

	exists, err := s.CheckEmailExists(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.CheckEmailExists(ctx, "john@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = s.CheckUsernameExists(ctx, "jane_d")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserService_CreateDuplicate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.CreateUser(ctx, janeInput())
	require.NoError(t, err)

	dupEmail := janeInput()
	dupEmail.Username = "someone_else"
	_, err = s.CreateUser(ctx, dupEmail)
	assert.ErrorIs(t, err, ErrEmailTaken)

	dupUsername := janeInput()
	dupUsername.Email = "other@example.com"
	_, err = s.CreateUser(ctx, dupUsername)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var count int
	require.NoError(t, s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserService_CheckPassword(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	user, err := s.CreateUser(ctx, janeInput())
	require.NoError(t, err)

	assert.NoError(t, s.CheckPassword(ctx, user, "Tr0ub4dor&3"))
	assert.ErrorIs(t, s.CheckPassword(ctx, user, "wrong-password"), ErrInvalidCredentials)

	_, err = s.DB.Exec("UPDATE users SET status = ? WHERE id = ?", models.StatusInactive, user.ID)
	require.NoError(t, err)
	inactive, err := s.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, s.CheckPassword(ctx, inactive, "Tr0ub4dor&3"), ErrInactiveUser)
}

func TestUserService_CheckPasswordCorruptHash(t *testing.T) {
	s := newTestService(t)
	err := s.CheckPassword(context.Background(), &models.User{PasswordHash: "not-a-hash", Status: models.StatusActive}, "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_MarkLoggedIn(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	user, err := s.CreateUser(ctx, janeInput())
	require.NoError(t, err)

	require.NoError(t, s.MarkLoggedIn(ctx, user.ID))

	reloaded, err := s.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.LastLogin.Valid)
}

func TestNewUserService_CostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewUserService(nil, 0).bcryptCost)
	assert.Equal(t, bcrypt.DefaultCost, NewUserService(nil, 99).bcryptCost)
	assert.Equal(t, 12, NewUserService(nil, 12).bcryptCost)
}

// --- store failures via sqlmock ---

func newSQLMockService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewUserService(conn, bcrypt.MinCost), mock
}

var errBoom = errors.New("boom")

func TestUserService_ExistsQueryError(t *testing.T) {
	s, mock := newSQLMockService(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)")).
		WithArgs("jane@example.com").
		WillReturnError(errBoom)

	_, err := s.CheckEmailExists(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindQueryError(t *testing.T) {
	s, mock := newSQLMockService(t)
	mock.ExpectQuery("SELECT .* FROM users WHERE email = ?").
		WithArgs("jane@example.com").
		WillReturnError(errBoom)

	_, err := s.FindByEmail(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_CreateBeginError(t *testing.T) {
	s, mock := newSQLMockService(t)
	mock.ExpectBegin().WillReturnError(errBoom)

	_, err := s.CreateUser(context.Background(), janeInput())
	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_CreateInsertErrorRollsBack(t *testing.T) {
	s, mock := newSQLMockService(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(errBoom)
	mock.ExpectRollback()

	_, err := s.CreateUser(context.Background(), janeInput())
	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_CreateCommitError(t *testing.T) {
	s, mock := newSQLMockService(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit().WillReturnError(errBoom)

	_, err := s.CreateUser(context.Background(), janeInput())
	assert.ErrorIs(t, err, errBoom)
}

func TestUserService_MarkLoggedInError(t *testing.T) {
	s, mock := newSQLMockService(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_login")).
		WithArgs(sqlmock.AnyArg(), int64(3)).
		WillReturnError(sql.ErrConnDone)

	assert.ErrorIs(t, s.MarkLoggedIn(context.Background(), 3), sql.ErrConnDone)
}
