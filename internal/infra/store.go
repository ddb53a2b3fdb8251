package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/config"
)

// ErrDocumentNotFound is returned by Read when nothing was ever written under
// the key.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists whole JSON documents by key. Writes replace the
// previous document; there is no partial update.
type DocumentStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, doc []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Store drivers accepted by STORE_DRIVER.
const (
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// NewDocumentStore opens the driver selected in cfg.
func NewDocumentStore(cfg *config.Config) (DocumentStore, error) {
	switch cfg.StoreDriver {
	case DriverBolt, "":
		return NewBoltStore(cfg.BoltPath)
	case DriverRedis:
		rdb, err := NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return NewRedisStore(rdb), nil
	case DriverPostgres:
		db, err := NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return NewPostgresStore(db), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
