package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vp-madrs/internal/config"
)

// NewPool abre el pool de pgx contra la base de perfiles usando DATABASE_URL.
// El trafico es liviano (generacion puntual y lotes ocasionales), asi que el
// pool se mantiene chico.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping confirma que la base de perfiles responde.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}
