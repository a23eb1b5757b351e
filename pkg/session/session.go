// Package session binds requests to a user id through a signed and encrypted cookie and
// carries one-time flash messages between requests.
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"

	"github.com/zobayer1/estate-portal/internal/models"
)

const (
	keyUserID    = "user_id"
	keySessionID = "session_id"
	keyAuthTime  = "auth_time"
)

var ErrNoSession = errors.New("session not loaded")

type Options struct {
	Domain string
	MaxAge int
	Secure bool
}

// NewCookieStore derives the signing and encryption keys from secret. An empty secret
// yields random keys, so cookies do not survive a restart.
func NewCookieStore(secret string, opts Options) *sessions.CookieStore {
	var hashKey, blockKey []byte
	if secret == "" {
		log.Warn("No session secret configured; using ephemeral keys")
		hashKey = securecookie.GenerateRandomKey(64)
		blockKey = securecookie.GenerateRandomKey(32)
	} else {
		hash := sha256.Sum256([]byte(secret))
		block := sha256.Sum256([]byte("encryption:" + secret))
		hashKey, blockKey = hash[:], block[:]
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(opts.MaxAge)
	return store
}

type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

// get returns the request's session. A cookie that fails to decode (rotated secret,
// tampering) still yields a fresh session, which replaces the cookie on save.
func (m *Manager) get(r *http.Request) (*sessions.Session, error) {
	sess, err := m.store.Get(r, m.name)
	if sess == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if err != nil {
		log.WithError(err).Debug("Discarding undecodable session cookie")
	}
	return sess, nil
}

// Bind attaches userID to the session under a freshly generated session id.
func (m *Manager) Bind(r *http.Request, userID int64) error {
	sess, err := m.get(r)
	if err != nil {
		return err
	}
	clear(sess.Values)
	sess.Values[keyUserID] = userID
	sess.Values[keySessionID] = uuid.NewString()
	sess.Values[keyAuthTime] = time.Now().Unix()
	log.WithFields(log.Fields{
		"user_id":    userID,
		"session_id": sess.Values[keySessionID],
	}).Debug("Session bound")
	return nil
}

// Clear drops every value held by the session, pending flashes included.
func (m *Manager) Clear(r *http.Request) error {
	sess, err := m.get(r)
	if err != nil {
		return err
	}
	clear(sess.Values)
	return nil
}

func (m *Manager) UserID(r *http.Request) (int64, bool) {
	sess, err := m.get(r)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[keyUserID].(int64)
	return id, ok && id > 0
}

func (m *Manager) sessionID(r *http.Request) string {
	sess, err := m.get(r)
	if err != nil {
		return ""
	}
	id, _ := sess.Values[keySessionID].(string)
	return id
}

func (m *Manager) AddFlash(r *http.Request, level models.FlashLevel, message string) error {
	sess, err := m.get(r)
	if err != nil {
		return err
	}
	sess.AddFlash(models.Flash{Level: level, Message: message})
	return nil
}

// Flashes pops the queued flash messages. The session must be saved afterwards for the
// removal to stick.
func (m *Manager) Flashes(r *http.Request) ([]models.Flash, error) {
	sess, err := m.get(r)
	if err != nil {
		return nil, err
	}
	var flashes []models.Flash
	for _, raw := range sess.Flashes() {
		if flash, ok := raw.(models.Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes, nil
}

func (m *Manager) Save(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.get(r)
	if err != nil {
		return err
	}
	return sess.Save(r, w)
}
