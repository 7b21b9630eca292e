package app

import (
	"context"
	"log"

	"workly/internal/config"
	"workly/internal/database"
	dbpostgres "workly/internal/database/postgres"
	"workly/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
}

// NewContainer holds the long-lived infrastructure. The database connect
// retries until the store answers or ctx is cancelled.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	db, err := dbpostgres.ConnectWithRetry(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
