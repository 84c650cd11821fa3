package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/runsheet/internal/config"
)

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (ProjectStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverMemory, "":
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.DataDir)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.URL, PoolOptions{
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			MaxConnLifetime: cfg.MaxConnLifetime,
			MaxConnIdleTime: cfg.MaxConnIdleTime,
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
