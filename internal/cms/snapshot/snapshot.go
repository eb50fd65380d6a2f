// Package snapshot keeps the last navigation, footer and category list the
// CMS returned so a later outage serves them instead of static defaults.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/blockpage/internal/platform/logger"
)

const (
	KeyNavigation = "globals:navigation"
	KeyFooter     = "globals:footer"
	KeyCategories = "categories"
)

// Store saves JSON snapshots by key. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, v any) error
	Close() error
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

type redisStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects and pings. Callers fall back to NewMemory when Addr is
// empty or the ping fails.
func NewRedis(ctx context.Context, log *logger.Logger, opts Options) (Store, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, errors.New("missing redis addr")
	}
	if log == nil {
		log = logger.Nop()
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
		MaxRetries:  1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{
		log:    log.With("service", "SnapshotStore"),
		rdb:    rdb,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("snapshot decode %s: %w", key, err)
	}
	return true, nil
}

func (s *redisStore) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot put %s: %w", key, err)
	}
	s.log.Debug("Snapshot saved", "key", key, "bytes", len(raw))
	return nil
}

func (s *redisStore) Close() error { return s.rdb.Close() }

type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory is a process-local store used when Redis is not configured.
func NewMemory() Store {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("snapshot decode %s: %w", key, err)
	}
	return true, nil
}

func (m *memoryStore) Put(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Close() error { return nil }
