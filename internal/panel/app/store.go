package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/internal/panel/store/drivers/postgres"
	"github.com/aussiebroadwan/panel/internal/panel/store/drivers/sqlite"
)

// OpenStore connects the configured driver. Migrations are not applied.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		st, err := postgres.NewStore(ctx, cfg.DatabaseURL, postgres.Options{MaxConns: int32(cfg.DatabaseMaxConns)})
		if err != nil {
			return nil, err
		}
		return st, nil
	case DriverSQLite, "":
		st, err := sqlite.NewStore(sqliteDSN(cfg.DatabaseFile))
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

func sqliteDSN(file string) string {
	if file == ":memory:" || strings.HasPrefix(file, "file:") {
		return file
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", file)
}
