package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is the persisted token pair for one portal session.
type Credentials struct {
	Access  string
	Refresh string
}

type CredentialStore interface {
	Save(ctx context.Context, sid string, creds Credentials) error
	Load(ctx context.Context, sid string) (Credentials, error)
	Delete(ctx context.Context, sid string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(redisAddr string, ttl time.Duration) (*RedisStore, error) {
	const op = "session.NewRedisStore"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func accessKey(sid string) string {
	return fmt.Sprintf("session:%s:access", sid)
}

func refreshKey(sid string) string {
	return fmt.Sprintf("session:%s:refresh", sid)
}

func (s *RedisStore) Save(ctx context.Context, sid string, creds Credentials) error {
	const op = "session.RedisStore.Save"

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accessKey(sid), creds.Access, s.ttl)
	pipe.Set(ctx, refreshKey(sid), creds.Refresh, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *RedisStore) Load(ctx context.Context, sid string) (Credentials, error) {
	const op = "session.RedisStore.Load"

	access, err := s.client.Get(ctx, accessKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return Credentials{}, ErrNoCredentials
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := s.client.Get(ctx, refreshKey(sid)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Credentials{}, fmt.Errorf("%s: %w", op, err)
	}

	return Credentials{Access: access, Refresh: refresh}, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	const op = "session.RedisStore.Delete"

	if _, err := s.client.Del(ctx, accessKey(sid), refreshKey(sid)).Result(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore keeps credentials in process memory. Used by tests and as a
// stand-in when Redis is not configured.
type MemoryStore struct {
	mu    sync.RWMutex
	creds map[string]Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[string]Credentials)}
}

func (s *MemoryStore) Save(_ context.Context, sid string, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[sid] = creds
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sid string) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, ok := s.creds[sid]
	if !ok {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, sid)
	return nil
}
