// Package kvstore is the key/value medium shopper stores persist snapshots to.
//
// Backends are partitioned only by key; callers own their namespaces and the
// store never needs cross-key atomicity.
package kvstore

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store loads and saves opaque serialized state by key.
type Store interface {
	// Load returns the stored bytes and true, or nil and false when the key
	// has never been saved.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options carries the collaborators a backend may need.
type Options struct {
	Pool      *pgxpool.Pool
	RedisAddr string
	Logger    *log.Logger
}

// Open builds the named backend. The returned closer releases backend
// resources (the pgx pool is owned by the caller and left open).
func Open(backend string, opts Options) (Store, io.Closer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		logger.Printf("kvstore: using in-memory backend; shopper state is lost on restart")
		return NewMemory(), io.NopCloser(nil), nil
	case BackendRedis:
		client := NewRedisClient(opts.RedisAddr)
		logger.Printf("kvstore: using redis backend addr=%s", opts.RedisAddr)
		return NewRedis(client), client, nil
	case BackendPostgres, "":
		if opts.Pool == nil {
			return nil, nil, fmt.Errorf("kvstore: postgres backend requires a pool")
		}
		logger.Printf("kvstore: using postgres backend")
		return NewPostgres(opts.Pool), io.NopCloser(nil), nil
	default:
		return nil, nil, fmt.Errorf("kvstore: unknown backend %q", backend)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ping reports whether the backend is reachable. Backends without a remote
// side are always reachable.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
