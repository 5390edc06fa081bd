package users

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all user routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	users := e.Group("/users")

	// Registration is open; everything else requires a session.
	users.POST("", h.register)

	users.GET("", h.list, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	users.GET("/:id", h.retrieve, authMiddleware.Authenticate)
	users.POST("/:id/change-password", h.changePassword, authMiddleware.Authenticate)

	return userService
}
