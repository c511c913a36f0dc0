package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/labstack/echo/v4"

	"taskmanager/docs"
	"taskmanager/internal/auth"
	"taskmanager/internal/cache"
	"taskmanager/internal/config"
	"taskmanager/internal/db"
	"taskmanager/internal/handler"
	"taskmanager/internal/repository"
	"taskmanager/internal/router"
	"taskmanager/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title Task Manager API
// @version 1.0
// @description Task manager API with cookie-based JWT sessions and per-user tasks.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name accessToken
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	gormDB, err := db.New(cfg, logger)
	if err != nil {
		logger.Error("database init", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable, profile cache degraded", slog.Any("error", err))
		}
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret)
	if err != nil {
		logger.Error("jwt init", slog.Any("error", err))
		os.Exit(1)
	}
	hasher := auth.NewPasswordHasher()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, hasher)
	userService := service.NewUserService(userRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, router.Dependencies{
		Config:      cfg,
		Logger:      logger,
		JWTService:  jwtService,
		Ready:       func(ctx context.Context) error { return db.Ping(ctx, gormDB) },
		AuthHandler: handler.NewAuthHandler(authService, handler.CookieConfig{Secure: cfg.IsProduction()}),
		UserHandler: handler.NewUserHandler(userService),
		TaskHandler: handler.NewTaskHandler(taskService),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}

	addr := ":" + cfg.ServerPort
	go func() {
		logger.Info("server listening", slog.String("addr", addr), slog.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"task-manager": func(ctx context.Context) error {
				logger.Info("graceful shutdown initiated")
				// stop accepting requests before the pool goes away
				err := e.Shutdown(ctx)
				if cerr := cacheClient.Close(); cerr != nil {
					err = errors.Join(err, cerr)
				}
				if cerr := db.Close(gormDB); cerr != nil {
					err = errors.Join(err, cerr)
				}
				return err
			},
		},
	)

	exitCode := <-wait
	logger.Info("server exited", slog.Int("code", exitCode))
	os.Exit(exitCode)
}

func newLogger(format string) *slog.Logger {
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
