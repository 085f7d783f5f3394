package cas

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces CAS keys in a shared Redis database.
const DefaultRedisPrefix = "rdfc:cas:"

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// Prefix is prepended to every key. Defaults to DefaultRedisPrefix.
	Prefix string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// Redis is a CAS backed by Redis string keys.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultRedisPrefix
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Redis{client: client, prefix: opts.Prefix}, nil
}

func (r *Redis) key(id cid.Cid) string {
	return r.prefix + id.String()
}

// Put stores data with SETNX, so a concurrent writer of the same bytes wins
// harmlessly and different bytes under one key are reported.
func (r *Redis) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	id, err := CIDFor(data)
	if err != nil {
		return cid.Undef, err
	}
	created, err := r.client.SetNX(ctx, r.key(id), data, 0).Result()
	if err != nil {
		return cid.Undef, fmt.Errorf("failed to store %s: %w", id, err)
	}
	if created {
		return id, nil
	}
	existing, err := r.Get(ctx, id)
	if err != nil {
		return cid.Undef, ErrImmutable
	}
	if !bytes.Equal(existing, data) {
		return cid.Undef, ErrImmutable
	}
	return id, nil
}

// Get returns the object stored under id, checking it still hashes to id.
func (r *Redis) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", id, err)
	}
	if err := verify(id, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Redis) Has(ctx context.Context, id cid.Cid) (bool, error) {
	if !id.Defined() {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", id, err)
	}
	return n > 0, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
