package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"seminar/docs"
	"seminar/internal/auth"
	"seminar/internal/cache"
	"seminar/internal/config"
	"seminar/internal/db"
	"seminar/internal/handler"
	"seminar/internal/logger"
	"seminar/internal/repository"
	"seminar/internal/router"
	"seminar/internal/service"
)

// @title Seminar API
// @version 1.0
// @description Seminar management API: instructors run seminars, participants enroll and drop.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", "", "path to config file (yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	lg := logger.Configure(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Format == "pretty",
	})

	gormDB, err := db.NewMySQL(cfg.MySQL.DSN, db.Options{
		MaxOpenConns:    cfg.MySQL.MaxOpenConns,
		MaxIdleConns:    cfg.MySQL.MaxIdleConns,
		ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		Logger:          lg,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("database init")
	}
	if cfg.MySQL.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			lg.Fatal().Err(err).Msg("auto-migrate")
		}
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	store := repository.NewStore(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(store.Users(), jwtService, tokenStore)
	userService := service.NewUserService(store.Users(), cacheClient, cfg.Cache.UserTTL)
	seminarService := service.NewSeminarService(store, cacheClient,
		service.WithSeminarCacheTTL(cfg.Cache.SeminarTTL),
		service.WithSeminarLogger(lg.With().Str("component", "seminar").Logger()),
	)

	if cfg.Swagger.Host != "" {
		docs.SwaggerInfo.Host = cfg.Swagger.Host
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Server.Mode == "debug"

	router.Register(e, cfg, authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, userService),
		User:    handler.NewUserHandler(userService),
		Seminar: handler.NewSeminarHandler(seminarService),
		Health:  handler.NewHealthHandler(store, cacheClient),
	}, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Server.Port
		lg.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("server shutdown")
	}
}
