package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/shelfwise/shelfwise/pkg/binder"
	"github.com/shelfwise/shelfwise/pkg/books"
	"github.com/shelfwise/shelfwise/pkg/config"
	"github.com/shelfwise/shelfwise/pkg/errcodes"
	"github.com/shelfwise/shelfwise/pkg/rentals"
	"github.com/shelfwise/shelfwise/pkg/seed"
	"github.com/shelfwise/shelfwise/pkg/testutils"
	"github.com/shelfwise/shelfwise/pkg/users"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	users.RegisterRoutes(e, db, authMiddleware)
	books.RegisterRoutes(e, db, authMiddleware)
	rentals.RegisterRoutes(e, db, authMiddleware)

	registerSeedRoute(e, db, cfg, authMiddleware)

	if cfg.Environment == "test" {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// registerSeedRoute lets an admin re-run the configured seed file without
// shelling into the host. Imports are idempotent so repeat calls are safe.
func registerSeedRoute(e *echo.Echo, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware) {
	if cfg.SeedFilePath == "" {
		return
	}

	seedService := seed.NewService(db)

	e.POST("/seed", func(c echo.Context) error {
		file, err := seed.Load(cfg.SeedFilePath)
		if err != nil {
			return err
		}

		res, err := seedService.Apply(c.Request().Context(), file)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, res)
	}, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
