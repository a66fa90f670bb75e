// Package backend selects and wires the persistence backend from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/shyamvijaybalaji/WealthFlow/internal/config"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store/memory"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store/postgres"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store/sqlite"
)

// New builds the configured store. The returned cleanup releases the
// backend's resources and is safe to call exactly once.
func New(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.DataBackend {
	case "memory":
		s := memory.New()
		slog.Info("Using in-memory store")
		return s, func() { s.Close() }, nil

	case "sqlite":
		s, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, func() { s.Close() }, nil

	case "postgres":
		s, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, func() { s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
