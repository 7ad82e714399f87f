package session

import (
	"context"
	"log"
	"sync"
	"time"

	"TeleAdmin/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrNoSession is returned when no administrator session is active.
var ErrNoSession = errors.New("no active session")

// ErrNotAdmin is returned when the authenticated account lacks the ADMIN role.
var ErrNotAdmin = errors.New("account is not an administrator")

// Session is the single administrator session the console holds: the
// upstream bearer token plus the identity it was issued for.
type Session struct {
	ID            string `json:"id"`
	AdminID       string `json:"adminId"`
	Role          string `json:"role"`
	UpstreamToken string `json:"upstreamToken"`
}

// Mirror persists the session record across console restarts. Implemented
// by cache.Store.
type Mirror interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, out interface{}) error
	Delete(ctx context.Context, key string) error
}

// Manager owns the console session lifecycle. At most one session is active
// at a time; a 401 from the upstream tears it down exactly once no matter
// how many in-flight requests observe the rejection.
type Manager struct {
	key   []byte
	store Mirror

	mu       sync.Mutex
	active   *Session
	onLogout []func()
}

// NewManager creates a session manager. key must be 32 bytes (PASETO v2
// local); store mirrors the session so a console restart keeps the login.
func NewManager(key []byte, store Mirror) (*Manager, error) {
	if len(key) != 32 {
		return nil, errors.Errorf("symmetric key must be 32 bytes, got %d", len(key))
	}
	return &Manager{key: key, store: store}, nil
}

// OnLogout registers a hook that runs once per session teardown. Used for
// the navigation-to-login event.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

// Begin starts a session for an authenticated administrator and returns the
// console token the browser stores. Non-admin roles are rejected before any
// state is written.
func (m *Manager) Begin(ctx context.Context, adminID, role, upstreamToken string) (string, error) {
	if role != models.RoleAdmin {
		return "", ErrNotAdmin
	}

	sess := &Session{
		ID:            uuid.New().String(),
		AdminID:       adminID,
		Role:          role,
		UpstreamToken: upstreamToken,
	}

	token, err := encryptToken(m.key, Claims{
		SessionID: sess.ID,
		AdminID:   adminID,
		Role:      role,
		Expiry:    time.Now().Add(ConsoleTokenExpiry),
	})
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	previous := m.active
	m.active = sess
	m.mu.Unlock()

	if m.store != nil {
		// A replaced session's mirror must go too, or its stale token
		// could rehydrate it later.
		if previous != nil {
			if err := m.store.Delete(ctx, sessionKey(previous.ID)); err != nil {
				log.Printf("Failed to remove replaced session from store: %v", err)
			}
		}
		if err := m.store.SetJSON(ctx, sessionKey(sess.ID), sess, ConsoleTokenExpiry); err != nil {
			log.Printf("Failed to mirror session to store: %v", err)
		}
	}
	return token, nil
}

// Validate checks a console token against the active session. On an
// in-memory miss the mirrored record is loaded back, so a console restart
// keeps the login as long as the token is still valid.
func (m *Manager) Validate(ctx context.Context, token string) (*Claims, error) {
	claims, err := decryptToken(m.key, token)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil && m.active.ID == claims.SessionID {
		return claims, nil
	}
	if m.store != nil {
		var sess Session
		if err := m.store.GetJSON(ctx, sessionKey(claims.SessionID), &sess); err == nil {
			m.active = &sess
			return claims, nil
		}
	}
	return nil, ErrNoSession
}

// UpstreamToken returns the bearer token for outbound API calls, or the
// empty string when no session is active.
func (m *Manager) UpstreamToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ""
	}
	return m.active.UpstreamToken
}

// Active reports whether an administrator session exists.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Logout tears the session down on explicit user action.
func (m *Manager) Logout(ctx context.Context) {
	m.teardown(ctx)
}

// ForceLogout tears the session down after an upstream 401. Concurrent
// rejections collapse into a single teardown and a single logout event.
func (m *Manager) ForceLogout(ctx context.Context) {
	m.teardown(ctx)
}

func (m *Manager) teardown(ctx context.Context) {
	m.mu.Lock()
	sess := m.active
	m.active = nil
	hooks := m.onLogout
	m.mu.Unlock()

	if sess == nil {
		return // already torn down
	}
	if m.store != nil {
		if err := m.store.Delete(ctx, sessionKey(sess.ID)); err != nil {
			log.Printf("Failed to remove session from store: %v", err)
		}
	}
	for _, fn := range hooks {
		fn()
	}
}

func sessionKey(id string) string {
	return "console_session:" + id
}
