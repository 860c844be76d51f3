package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
	"github.com/Suly-ms/ThisIsNotFine/internal/database"
	dbpostgres "github.com/Suly-ms/ThisIsNotFine/internal/database/postgres"
	"github.com/Suly-ms/ThisIsNotFine/internal/infrastructure/redisstore"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *redis.Client
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := redisstore.Connect(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{Config: cfg, DB: db, Redis: rdb}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
