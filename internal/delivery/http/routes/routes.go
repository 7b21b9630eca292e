package routes

import (
	"log"

	"workly/internal/config"
	"workly/internal/database"
	"workly/internal/delivery/http/handler"
	"workly/internal/delivery/http/middleware"
	"workly/internal/infrastructure/cache"
	"workly/internal/infrastructure/persistence/postgres"
	"workly/internal/infrastructure/storage"
	"workly/internal/pkg/jwt"
	ucapp "workly/internal/usecase/application"
	ucauth "workly/internal/usecase/auth"
	ucjob "workly/internal/usecase/job"
	ucuser "workly/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

// Registry wires repositories, services and handlers once at startup and
// registers every route group.
type Registry struct {
	cfg    config.Config
	authMw *middleware.AuthMiddleware

	health       *handler.HealthHandler
	auth         *handler.AuthHandler
	jobs         *handler.JobsHandler
	applications *handler.ApplicationsHandler
	profile      *handler.ProfileHandler
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, resumes *storage.ResumeStore, logger *log.Logger) *Registry {
	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	appRepo := postgres.NewApplicationRepository(db)

	authUC := ucauth.NewService(userRepo, jwtSvc, logger)
	userUC := ucuser.NewService(userRepo)
	jobUC := ucjob.NewService(jobRepo, redis, logger)
	appUC := ucapp.NewService(appRepo, jobRepo, resumes, logger)

	return &Registry{
		cfg:          cfg,
		authMw:       authMw,
		health:       handler.NewHealthHandler(db),
		auth:         handler.NewAuthHandler(authUC, userUC),
		jobs:         handler.NewJobsHandler(jobUC, appUC),
		applications: handler.NewApplicationsHandler(appUC),
		profile:      handler.NewProfileHandler(userUC, appUC),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.auth.RegisterRoutes(app.Group("/auth"), r.authMw)
	r.jobs.RegisterRoutes(app.Group("/jobs"), r.authMw)
	r.applications.RegisterRoutes(app.Group("/applications"), r.authMw)
	r.profile.RegisterRoutes(app.Group("/profile"), r.authMw)

	// Stored resumes are served back verbatim under /uploads.
	app.Use("/uploads", static.New(r.cfg.Upload.Dir))
}
