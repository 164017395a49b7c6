package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	keyToken    = "session:token"
	keyIdentity = "session:identity"
)

// RedisStore keeps the session in redis for shared front-of-house installs
// where several thin terminals point at one gateway.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates and validates a go-redis backed store.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewRedisStoreWith wraps an existing client (shared with the print queue).
func NewRedisStoreWith(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, token string, identity []byte) error {
	// MSet keeps the two keys consistent as one round-trip.
	return s.rdb.MSet(ctx, keyToken, token, keyIdentity, identity).Err()
}

func (s *RedisStore) Load(ctx context.Context) (string, []byte, error) {
	vals, err := s.rdb.MGet(ctx, keyToken, keyIdentity).Result()
	if err != nil {
		return "", nil, err
	}
	tok, okT := vals[0].(string)
	ident, okI := vals[1].(string)
	if !okT || !okI || tok == "" || ident == "" {
		return "", nil, ErrNoSession
	}
	return tok, []byte(ident), nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, keyToken, keyIdentity).Err()
}

// Client exposes the underlying connection for components sharing it.
func (s *RedisStore) Client() *redis.Client { return s.rdb }
