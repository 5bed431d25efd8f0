package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pagebound/bookstore-api/internal/api/handler"
	"github.com/pagebound/bookstore-api/internal/api/middleware"
	"github.com/pagebound/bookstore-api/internal/core/ports"
	"github.com/pagebound/bookstore-api/internal/core/service"
	"github.com/pagebound/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/pagebound/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pagebound/bookstore-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The event sink is constructed by the caller because its worker lifecycle
// belongs to main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, events ports.OrderEventSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("bookstore"))

	// --- Dependencies ---
	bookRepo := mongodb.NewBookRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.TokenTTL, log)
	bookService := service.NewBookService(bookRepo, log)
	userService := service.NewUserService(userRepo, log)
	orderService := service.NewOrderService(orderRepo, bookRepo, userRepo, events, log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	userHandler := handler.NewUserHandler(userService)
	orderHandler := handler.NewOrderHandler(orderService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- API routes: every request gets exactly one principal resolution ---
	v1 := e.Group("/v1", middleware.Principal(authService))

	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.Get)
	v1.POST("/books", bookHandler.Create, middleware.RequireAdmin())
	v1.PUT("/books/:id", bookHandler.Update, middleware.RequireAdmin())
	v1.DELETE("/books/:id", bookHandler.Delete, middleware.RequireAdmin())

	v1.GET("/users", userHandler.List, middleware.RequireAdmin())
	v1.GET("/users/:id", userHandler.Get, middleware.RequireAuthenticated())
	v1.PUT("/users/:id", userHandler.Update, middleware.RequireAuthenticated())
	v1.DELETE("/users/:id", userHandler.Delete, middleware.RequireAdmin())
	v1.GET("/customers/:id/orders", orderHandler.ListByCustomer, middleware.RequireAuthenticated())

	v1.POST("/orders", orderHandler.Create, middleware.RequireAuthenticated())
	v1.GET("/orders", orderHandler.List, middleware.RequireAdmin())
	v1.GET("/orders/:id", orderHandler.Get, middleware.RequireAuthenticated())
	v1.PUT("/orders/:id", orderHandler.ReplaceBooks, middleware.RequireAdmin())
	v1.PATCH("/orders/:id/status", orderHandler.UpdateStatus, middleware.RequireAdmin())
	v1.DELETE("/orders/:id", orderHandler.Delete, middleware.RequireAdmin())

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
