package http

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/grants-api/pkg/logger"
)

// ServerConfig parámetros de la aplicación Fiber.
type ServerConfig struct {
	Name           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	SwaggerFile    string // vacío o inexistente = sin /docs
}

// ServerDeps dependencias de la aplicación Fiber.
type ServerDeps struct {
	Logger  *logger.Logger
	Metrics *Metrics // nil = sin /metrics
	Store   Pinger
	Router  RouterDeps
}

// NewServer arma la aplicación completa: middlewares, health, métricas, docs y rutas de la API.
func NewServer(cfg ServerConfig, deps ServerDeps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	app.Use(requestid.New())
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	app.Use(RequestContext(log, cfg.RequestTimeout))
	app.Use(recover.New())
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  strings.Join(cfg.AllowedOrigins, ","),
			AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
			ExposeHeaders: "Location, X-Request-ID",
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Grants API",
			}))
		} else {
			log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", NewHealthHandler(cfg.Name, deps.Store).Health)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	Router(app, deps.Router)
	return app
}
