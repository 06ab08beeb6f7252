package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/handler"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	userHandler *handler.UserHandler,
	preferenceHandler *handler.PreferenceHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Prometheus("governance-console"))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// User views
	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/export", userHandler.ExportUsers)
	api.GET("/users/:id", userHandler.GetUser)

	// User actions
	api.POST("/users", userHandler.CreateUser)
	api.PATCH("/users/:id/status", userHandler.ToggleUserStatus)
	api.DELETE("/users/:id", userHandler.DeleteUser)

	// Preference actions
	api.PUT("/users/:id/preferences/default", preferenceHandler.CreateDefaultPreferences)

	// Post actions
	api.POST("/users/:id/posts", postHandler.CreatePost)
	api.DELETE("/users/:id/posts/:postId", postHandler.DeletePost)

	// Form posts navigate instead of returning JSON.
	e.POST("/users/new", userHandler.CreateUserForm)
	e.POST("/users/:id/delete", userHandler.DeleteUserForm)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
