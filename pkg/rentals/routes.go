package rentals

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all rental routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	rentalService := NewService(db)

	h := &handler{
		rentalService: rentalService,
	}

	rentals := e.Group("/rentals", authMiddleware.Authenticate)

	rentals.POST("", h.rent)
	rentals.POST("/return", h.returnBook)
	rentals.GET("/history", h.history)

	rentals.GET("/open", h.listOpen, authMiddleware.RequireAdmin)
	rentals.GET("/history/:id", h.userHistory, authMiddleware.RequireAdmin)

	return rentalService
}
