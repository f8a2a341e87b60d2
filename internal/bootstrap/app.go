package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/activities"
	googleauth "coach-backend/internal/auth"
	"coach-backend/internal/reports"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/server"
	"coach-backend/internal/shared/storage/db"
	"coach-backend/internal/shared/storage/object"
	localstore "coach-backend/internal/shared/storage/object/local"
	s3store "coach-backend/internal/shared/storage/object/s3"
	"coach-backend/internal/users"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersService      *users.Service
	ReportsService    *reports.Service
	ActivitiesService *activities.Service

	UsersHandler      *users.Handler
	ReportsHandler    *reports.Handler
	ActivitiesHandler *activities.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	var usersRepo users.Repo
	var reportsRepo reports.Repo
	var exportsRepo reports.ExportRepo
	var activitiesRepo activities.Repo
	if sqlDB != nil {
		usersRepo = &users.PGRepo{DB: sqlDB}
		pg := &reports.PGRepo{DB: sqlDB}
		reportsRepo = pg
		exportsRepo = pg
		activitiesRepo = &activities.PGRepo{DB: sqlDB}
	} else {
		usersRepo = users.NewMemoryRepo()
		mem := reports.NewMemoryRepo()
		reportsRepo = mem
		exportsRepo = mem
		activitiesRepo = activities.NewMemoryRepo()
	}

	var dispatcher *reports.Dispatcher
	if cfg.WebhookURL != "" {
		dispatcher = reports.NewDispatcher(cfg.WebhookURL)
	}

	app.UsersService = users.NewService(usersRepo)
	app.ReportsService = reports.NewService(reportsRepo, exportsRepo, store, dispatcher)
	app.ActivitiesService = activities.NewService(activitiesRepo)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.ReportsHandler = reports.NewHandler(app.ReportsService)
	app.ActivitiesHandler = activities.NewHandler(app.ActivitiesService)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
	)

	app.Router = server.NewRouter(server.Deps{
		Env:             cfg.Env,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		GoogleAuth:      app.GoogleAuth,
		Users:           app.UsersHandler,
		Reports:         app.ReportsHandler,
		Activities:      app.ActivitiesHandler,
	})
	return app, nil
}

// buildDB connects and migrates when DATABASE_URL is set. In dev a broken
// database falls back to memory repos; production fails hard.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		log.Printf("DATABASE_URL not set, using in-memory repositories")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil, nil
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if cfg.Env == "production" {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil, nil
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	}
	return localstore.New(cfg.LocalStoreDir), nil
}
