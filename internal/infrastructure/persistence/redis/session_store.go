// Package redis implements an optional Redis-backed session store. It lets
// several bot replicas share selection state; the default deployment keeps
// sessions in process memory instead.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kayrademirkan/mebtg/internal/domain/session"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration

	// SessionTTL is how long an idle session survives. Zero keeps sessions
	// until Redis evicts them.
	SessionTTL time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		SessionTTL:   24 * time.Hour,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// keyPrefix namespaces session keys.
const keyPrefix = "mebtg:session:"

// lockShards bounds the per-user mutex table. Serialization is per process;
// a single bot instance owns its polling stream, so process-local locking
// satisfies the per-user exclusivity requirement.
const lockShards = 64

// ══════════════════════════════════════════════════════════════════════════════
// SESSION STORE
// ══════════════════════════════════════════════════════════════════════════════

// SessionStore persists sessions as JSON values with a TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	locks  [lockShards]sync.Mutex
}

// NewSessionStore connects to Redis and verifies the connection.
func NewSessionStore(ctx context.Context, cfg Config) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	return &SessionStore{
		client: client,
		ttl:    cfg.SessionTTL,
	}, nil
}

// Close releases the underlying connection pool.
func (s *SessionStore) Close() error {
	return s.client.Close()
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func (s *SessionStore) lockFor(userID int64) *sync.Mutex {
	idx := userID % lockShards
	if idx < 0 {
		idx += lockShards
	}
	return &s.locks[idx]
}

// Get returns a copy of the user's session.
func (s *SessionStore) Get(ctx context.Context, userID int64) (session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, shared.ErrSessionNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("redis: get session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt record behaves like a missing one; the user restarts.
		return session.Session{}, shared.ErrSessionNotFound
	}
	return sess, nil
}

// Update runs fn under the user's lock shard, then writes the result back
// with the configured TTL.
func (s *SessionStore) Update(ctx context.Context, userID int64, fn session.UpdateFunc) error {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	var current *session.Session
	sess, err := s.Get(ctx, userID)
	switch {
	case err == nil:
		current = &sess
	case shared.IsNotFound(err):
		current = nil
	default:
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("redis: marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set session: %w", err)
	}
	return nil
}
