package history

import (
	"fmt"
	"log/slog"

	"mercator-hq/facesconfig/pkg/config"
)

// Open returns the store selected by cfg.Backend.
func Open(cfg *config.HistoryConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return NewSQLiteStore(&cfg.SQLite, logger)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
