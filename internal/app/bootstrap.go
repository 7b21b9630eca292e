package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"workly/internal/config"
	"workly/internal/database/schema"
	"workly/internal/delivery/http/middleware"
	"workly/internal/delivery/http/routes"
	"workly/internal/infrastructure/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap connects the container, applies the schema and assembles the
// fiber app. The returned cleanup closes the pool and cache.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.Ensure(ctx, container.DB); err != nil {
		_ = container.Close()
		return nil, nil, err
	}

	resumes, err := storage.NewResumeStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)
	if err != nil {
		_ = container.Close()
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: int(cfg.Upload.MaxSizeBytes) + 1<<20,
	})

	errMw := middleware.NewErrorMiddleware(cfg.IsDevelopment(), logger)
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())
	f.Use(cors.New(cors.Config{AllowOrigins: cfg.App.AllowOrigins}))

	routes.NewRegistry(cfg, container.DB, container.Cache, resumes, logger).Register(f)

	return &App{Fiber: f}, container.Close, nil
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
