package books

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all book routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	books := e.Group("/books", authMiddleware.Authenticate)

	books.GET("", h.list)
	books.GET("/:id", h.retrieve)
	books.GET("/isbn/:isbn", h.retrieveByISBN)

	// Catalog writes are restricted to admins.
	books.POST("", h.create, authMiddleware.RequireAdmin)
	books.PATCH("/:id", h.update, authMiddleware.RequireAdmin)
	books.POST("/:id/copies", h.addCopies, authMiddleware.RequireAdmin)
	books.DELETE("/:id/copies", h.removeCopies, authMiddleware.RequireAdmin)
	books.DELETE("/:id", h.delete, authMiddleware.RequireAdmin)

	return bookService
}
