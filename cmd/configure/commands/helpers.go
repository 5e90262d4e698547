package commands

import (
	"fmt"
	"os"

	"github.com/taskflow-app/taskflow/internal/config"
	"github.com/taskflow-app/taskflow/internal/store"
)

// openStore loads the configuration and connects to the configured
// persistence backend.
func openStore() (store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		st = store.NewMemoryStore()
	case config.BackendRedis:
		st, err = store.NewRedisStore(cfg.RedisURL)
	case config.BackendPostgres:
		st, err = store.NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s store: %w", cfg.StoreBackend, err)
	}
	return st, cfg, nil
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}
}
