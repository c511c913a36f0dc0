package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/handler"
)

// Dependencies is everything Register needs to mount the API.
type Dependencies struct {
	Config     *config.Config
	Logger     *slog.Logger
	JWTService *auth.JWTService
	// Ready reports whether the service can take traffic; nil means always ready.
	Ready func(ctx context.Context) error

	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	TaskHandler *handler.TaskHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, deps Dependencies) {
	cfg := deps.Config

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, cfg.IsDevelopment())
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.Recover())
	e.Use(securityHeaders(cfg))
	e.Use(cors(cfg))
	e.Use(middleware.BodyLimit("1M"))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.MessageResponse{Message: "Welcome to Task Manager API"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/readyz", readiness(deps.Ready))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	gate := AuthGate(deps.JWTService)
	limit := authRateLimit(cfg)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", deps.AuthHandler.Register, limit...)
	authGroup.POST("/login", deps.AuthHandler.Login, limit...)
	authGroup.POST("/refresh", deps.AuthHandler.Refresh)
	authGroup.POST("/logout", deps.AuthHandler.Logout)
	authGroup.GET("/profile", deps.UserHandler.Profile, gate...)
	authGroup.GET("/me", deps.UserHandler.Me, gate...)

	tasks := api.Group("/tasks", gate...)
	tasks.GET("", deps.TaskHandler.ListTasks)
	tasks.POST("", deps.TaskHandler.CreateTask)
	tasks.GET("/status/:status", deps.TaskHandler.ListTasksByStatus)
	tasks.GET("/priority/:priority", deps.TaskHandler.ListTasksByPriority)
	tasks.GET("/:id", deps.TaskHandler.GetTask)
	tasks.PUT("/:id", deps.TaskHandler.UpdateTask)
	tasks.DELETE("/:id", deps.TaskHandler.DeleteTask)
}

func readiness(ready func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ready != nil {
			if err := ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
			}
		}
		return c.String(http.StatusOK, "ready")
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
