package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/rs/zerolog"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
	"github.com/Suly-ms/ThisIsNotFine/internal/database/migration"
	"github.com/Suly-ms/ThisIsNotFine/internal/database/seeder"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/routes"
	"github.com/Suly-ms/ThisIsNotFine/internal/infrastructure/storage"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container, logger zerolog.Logger) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(logger)
	f.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(accessMw.Middleware())

	// Uploaded CVs are served back under the same public prefix Save returns.
	f.Use(storage.PublicCVPrefix, static.New(c.Config.Upload.Dir))

	routes.Register(f, c.Config, c.DB, c.Redis, logger)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config, logger zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := (migration.Runner{Dir: "migrations", Logger: logger}).Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	seeds := seeder.Runner{Seeders: []seeder.Seeder{
		seeder.SchoolsSeeder{},
		seeder.AdminSeeder{Cfg: cfg.Seed},
	}}
	if err := seeds.Run(ctx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("run seeders: %w", err)
	}

	app := New(c, logger)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
