package models

import (
	"database/sql"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string `json:"-"`
	Status       string
	CreatedAt    time.Time
	LastLogin    sql.NullTime
}

// DisplayName is the name used to greet the user: the first name when set, the username otherwise.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// NewUser carries the fields collected at registration. Password is plain text and is
// hashed by the store before it is persisted.
type NewUser struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}
