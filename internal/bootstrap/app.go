package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"placement-backend/internal/history"
	"placement-backend/internal/resume"
	"placement-backend/internal/services/health"
	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/server"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/storage/db"
	"placement-backend/internal/shared/storage/kv"
	"placement-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Redis          *redis.Client
	Store          kv.Store
	Issuer         *auth.Issuer
	HistoryService *history.Service
	ResumeService  *resume.Service
	HistoryHandler *history.Handler
	ResumeHandler  *resume.Handler
	Health         *health.Service
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env, 0)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Issuer: issuer}
	if err := app.buildStore(ctx); err != nil {
		return nil, err
	}
	app.buildServices()

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Verifier:       app.Issuer,
		Health:         app.Health,
		HistoryHandler: app.HistoryHandler,
		ResumeHandler:  app.ResumeHandler,
		Limiter:        middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// buildStore selects the kv backend. Outside production a backend that cannot
// be reached falls back to memory.
func (a *App) buildStore(ctx context.Context) error {
	var err error
	switch a.Config.KVBackend {
	case config.KVBackendPostgres:
		err = a.connectPostgres(ctx)
	case config.KVBackendRedis:
		err = a.connectRedis(ctx)
	}
	if err != nil {
		if !isDevLike(a.Config.Env) {
			return err
		}
		telemetry.Warn("bootstrap.store_fallback", map[string]any{"backend": a.Config.KVBackend, "err": err})
		a.Config.KVBackend = config.KVBackendMemory
	}
	if a.Store == nil {
		a.Config.KVBackend = config.KVBackendMemory
		a.Store = kv.NewMemoryStore()
	}
	telemetry.Info("bootstrap.store_ready", map[string]any{"backend": a.Config.KVBackend})
	return nil
}

func (a *App) connectPostgres(ctx context.Context) error {
	sqlDB, err := db.Connect(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("run migrations: %w", err)
	}
	a.DB = sqlDB
	a.Store = &kv.PGStore{DB: sqlDB}
	return nil
}

func (a *App) connectRedis(ctx context.Context) error {
	client, err := kv.NewRedisClient(ctx, kv.RedisOptions{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	if err != nil {
		return err
	}
	a.Redis = client
	a.Store = kv.NewRedisStore(client, a.Config.RedisPrefix)
	return nil
}

func (a *App) buildServices() {
	a.HistoryService = history.NewService(&history.KVRepo{Store: a.Store}, a.Config.PersistDebounce)
	a.ResumeService = resume.NewService(a.Store)
	a.HistoryHandler = history.NewHandler(a.HistoryService, a.Config.MaxUploadBytes)
	a.ResumeHandler = resume.NewHandler(a.ResumeService)
	a.Health = health.NewService(a.Store, a.Config.KVBackend)
}

// Close flushes pending history writes and releases storage connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.HistoryService != nil {
		if err := a.HistoryService.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush history: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ShutdownTimeout bounds graceful shutdown, including the final history flush.
const ShutdownTimeout = 10 * time.Second

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
