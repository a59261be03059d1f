// Package auth implements the admin panel's session handling. The demo has
// a single hardcoded account; this is deliberately not a user database.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"fundlens/cache"
)

// ErrInvalidCredentials is returned on a failed login attempt.
var ErrInvalidCredentials = errors.New("Invalid username or password.")

const sessionKeyPrefix = "session:"

// SessionManager validates the admin credentials and tracks issued session
// tokens. Tokens live in Redis with a TTL when available, falling back to
// an in-memory map so the admin panel works without Redis.
type SessionManager struct {
	username string
	password string
	ttl      time.Duration
	redis    *cache.RedisClient

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry, fallback store
}

// NewSessionManager creates a new session manager
func NewSessionManager(username, password string, ttl time.Duration, redis *cache.RedisClient) *SessionManager {
	return &SessionManager{
		username: username,
		password: password,
		ttl:      ttl,
		redis:    redis,
		sessions: make(map[string]time.Time),
	}
}

// Login checks the credentials and issues a session token.
func (sm *SessionManager) Login(ctx context.Context, username, password string) (string, error) {
	if username != sm.username || password != sm.password {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	expiry := time.Now().Add(sm.ttl)

	if sm.redis != nil {
		if err := sm.redis.Set(ctx, sessionKeyPrefix+token, expiry, sm.ttl); err == nil {
			return token, nil
		}
		// Redis write failed, fall through to the in-memory store.
	}

	sm.mu.Lock()
	sm.sessions[token] = expiry
	sm.mu.Unlock()
	return token, nil
}

// Validate reports whether the token belongs to a live session.
func (sm *SessionManager) Validate(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	if sm.redis != nil {
		var expiry time.Time
		if err := sm.redis.Get(ctx, sessionKeyPrefix+token, &expiry); err == nil {
			return time.Now().Before(expiry)
		}
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	expiry, ok := sm.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(sm.sessions, token)
		return false
	}
	return true
}

// Logout discards a session token.
func (sm *SessionManager) Logout(ctx context.Context, token string) {
	if sm.redis != nil {
		_ = sm.redis.Delete(ctx, sessionKeyPrefix+token)
	}
	sm.mu.Lock()
	delete(sm.sessions, token)
	sm.mu.Unlock()
}
