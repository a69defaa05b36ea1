package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grants-api/internal/application/auth"
	"github.com/jhoicas/grants-api/internal/application/usecase"
	"github.com/jhoicas/grants-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	GrantUC     *usecase.GrantUseCase
	AuthUC      *auth.AuthUseCase // nil = sin endpoint de login
	AuthEnabled bool              // true = mutaciones de categorías solo para admin
	JWTSecret   string
	Limiter     *RateLimiter // nil = sin límite
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.Limiter != nil {
		api.Use(deps.Limiter.Handler())
	}

	// Auth (público)
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}

	// Las mutaciones de categorías exigen rol admin cuando la auth está activa.
	var adminOnly []fiber.Handler
	if deps.AuthEnabled {
		adminOnly = []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin)}
	}

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", append(adminOnly, categoryHandler.Create)...)
	categories.Put("/:id", append(adminOnly, categoryHandler.Update)...)
	categories.Delete("/:id", append(adminOnly, categoryHandler.Delete)...)

	grants := api.Group("/grants")
	grantHandler := NewGrantHandler(deps.GrantUC)
	grants.Get("/", grantHandler.List)
	grants.Get("/:id", grantHandler.GetByID)
	grants.Post("/", grantHandler.Create)
	grants.Put("/:id", grantHandler.Update)
	grants.Delete("/:id", grantHandler.Delete)
}
