package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/assetflow/asset-service/internal/config"
	"github.com/assetflow/asset-service/internal/repository"
	"github.com/assetflow/asset-service/internal/repository/memory"
)

// OpenStore returns the record store for cfg together with its connection.
// Without a DSN the store lives in process memory; otherwise migrations are
// applied (when enabled) before the pgx-backed store is handed out.
func OpenStore(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (repository.Store, *Postgres, error) {
	pg, err := NewPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if !pg.Enabled() {
		return memory.NewStore(), pg, nil
	}

	if cfg.RunMigrations {
		if err := RunMigrations(ctx, pg.Pool, cfg.MigrationsDir, logger); err != nil {
			pg.Close()
			return nil, nil, err
		}
	}
	return repository.NewPostgresStore(pg.Pool), pg, nil
}
