package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/logging"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// expired sessions are kept this long so the next read can report them as
// expired rather than unknown
const expiredGrace = time.Hour

// SessionUser is the principal carried by a session.
type SessionUser struct {
	ID             string                    `json:"id"`
	Email          string                    `json:"email"`
	FirstName      string                    `json:"firstName"`
	LastName       string                    `json:"lastName"`
	Role           constants.Role            `json:"role"`
	MembershipTier *constants.MembershipTier `json:"membershipTier,omitempty"`
}

// Session is one authenticated principal with its bearer token.
type Session struct {
	ID         string      `json:"session_id"`
	User       SessionUser `json:"user"`
	Token      string      `json:"token"`
	RememberMe bool        `json:"remember_me"`
	CreatedAt  time.Time   `json:"created_at"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

// IsAuthenticated holds only while the token is present, unexpired and bound to a user.
func (s *Session) IsAuthenticated(now time.Time) bool {
	return s != nil && s.Token != "" && s.User.ID != "" && now.Before(s.ExpiresAt)
}

// Expired reports expiry ≤ now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore persists sessions by ID. Get purges expired entries and
// reports ErrSessionExpired once; later reads see ErrSessionNotFound.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	// DeleteForUser ends every session of the user and reports how many.
	DeleteForUser(ctx context.Context, userID string) (int, error)
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	cache *cache.Cache
	now   func() time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore(now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		now:   now,
	}
}

func (m *MemorySessionStore) Save(_ context.Context, session *Session) error {
	cp := *session
	m.cache.Set(sessionKey(session.ID), &cp, ttlFor(session, m.now()))
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*Session, error) {
	val, found := m.cache.Get(sessionKey(sessionID))
	if !found {
		return nil, ErrSessionNotFound
	}
	session := *val.(*Session)

	if session.Expired(m.now()) {
		m.cache.Delete(sessionKey(sessionID))
		logging.Debug("Session expired", "session_id", sessionID, "user_id", session.User.ID)
		return nil, ErrSessionExpired
	}
	return &session, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.cache.Delete(sessionKey(sessionID))
	return nil
}

func (m *MemorySessionStore) DeleteForUser(_ context.Context, userID string) (int, error) {
	n := 0
	for key, item := range m.cache.Items() {
		if session, ok := item.Object.(*Session); ok && session.User.ID == userID {
			m.cache.Delete(key)
			n++
		}
	}
	return n, nil
}

// RedisSessionStore manages user sessions in Redis. Each user also has a set
// of their session ids so all of them can be ended at once.
type RedisSessionStore struct {
	redis *redis.Client
	now   func() time.Time
}

var _ SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client *redis.Client, now func() time.Time) *RedisSessionStore {
	if now == nil {
		now = time.Now
	}
	return &RedisSessionStore{redis: client, now: now}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := ttlFor(session, s.now())
	indexKey := userSessionsKey(session.User.ID)
	// the index must outlive its longest session
	current, err := s.redis.TTL(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read session index: %w", err)
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, ttl)
	pipe.SAdd(ctx, indexKey, session.ID)
	if current < ttl {
		pipe.Expire(ctx, indexKey, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.Delete(ctx, sessionID); err != nil {
			logging.Warn("Failed to purge expired session", "session_id", sessionID, "error", err.Error())
		}
		return nil, ErrSessionExpired
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) DeleteForUser(ctx context.Context, userID string) (int, error) {
	indexKey := userSessionsKey(userID)
	ids, err := s.redis.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read session index: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, indexKey)

	deleted, err := s.redis.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	// the index key itself is not a session
	n := int(deleted)
	if len(ids) > 0 {
		n--
	}
	return n, nil
}

func sessionKey(id string) string {
	return string(constants.CachePrefixSession) + id
}

func userSessionsKey(userID string) string {
	return string(constants.CachePrefixUserSessions) + userID
}

func ttlFor(session *Session, now time.Time) time.Duration {
	ttl := session.ExpiresAt.Sub(now) + expiredGrace
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}
