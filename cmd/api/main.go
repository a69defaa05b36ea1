package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/grants-api/internal/application/auth"
	"github.com/jhoicas/grants-api/internal/application/usecase"
	"github.com/jhoicas/grants-api/internal/infrastructure/memory"
	"github.com/jhoicas/grants-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/grants-api/internal/interfaces/http"
	"github.com/jhoicas/grants-api/pkg/config"
	"github.com/jhoicas/grants-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Bool("auth", cfg.Auth.Enabled).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		txRunner usecase.TxRunner
		pinger   httpRouter.Pinger
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		txRunner, pinger = store, store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			version, err := postgres.Migrate(pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Uint("schema_version", version).Msg("esquema al día")
		}
		txRunner, pinger = postgres.NewTxRunner(pool), postgres.NewPinger(pool)
	}

	categoryUC := usecase.NewCategoryUseCase(txRunner, usecase.SystemClock)
	grantUC := usecase.NewGrantUseCase(txRunner, usecase.SystemClock)

	var authUC *auth.AuthUseCase
	if cfg.Auth.Enabled {
		authUC = auth.NewAuthUseCase(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	}

	limiter := httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	if limiter != nil {
		limiter.StartCleanup(ctx, time.Minute)
	}

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		Name:           cfg.App.Name,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.HTTP.RequestTimeout) * time.Second,
		SwaggerFile:    cfg.HTTP.SwaggerFile,
	}, httpRouter.ServerDeps{
		Logger:  log,
		Metrics: httpRouter.NewMetrics("grants_api"),
		Store:   pinger,
		Router: httpRouter.RouterDeps{
			CategoryUC:  categoryUC,
			GrantUC:     grantUC,
			AuthUC:      authUC,
			AuthEnabled: cfg.Auth.Enabled,
			JWTSecret:   cfg.JWT.Secret,
			Limiter:     limiter,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
