package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = time.Hour
)

// Identity is the authenticated principal attached to a request by
// either authenticator.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Store manages server-side sessions in Redis. A session holds the
// identity as JSON under an opaque random ID handed out as a cookie,
// and expires silently after its TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create stores a new session for ident and returns its ID.
func (s *Store) Create(ctx context.Context, ident Identity) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(ident)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the identity bound to the session, or false if the
// session does not exist or has expired.
func (s *Store) Get(ctx context.Context, id string) (Identity, bool) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		return Identity{}, false
	}
	var ident Identity
	if err := json.Unmarshal(b, &ident); err != nil {
		return Identity{}, false
	}
	return ident, true
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
