package testutils

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/shelfwise/shelfwise/pkg/models"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createUserRequest is the request body for creating a test user.
type createUserRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	IsAdmin  bool    `json:"is_admin"`
	TotalFee float64 `json:"total_fee"`
}

// createUserResponse is the response body for creating a test user.
type createUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// createUser creates a test user, optionally as an admin or with a
// pre-loaded fee balance.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     req.Username,
		PasswordHash: hashedPassword,
		IsAdmin:      req.IsAdmin,
		TotalFee:     req.TotalFee,
	}

	_, err = h.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	return c.JSON(http.StatusCreated, createUserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// deleteAllDataResponse is the response body for clearing the database.
type deleteAllDataResponse struct {
	UsersDeleted int `json:"users_deleted"`
	BooksDeleted int `json:"books_deleted"`
}

// deleteAllData empties the ledger, catalog, and user tables.
// DELETE /test/all.
func (h *handler) deleteAllData(c echo.Context) error {
	ctx := c.Request().Context()

	// Ledger rows reference users and books, so they go first.
	_, err := h.db.NewDelete().
		Model((*models.Transaction)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete transactions")
	}

	booksResult, err := h.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete books")
	}

	usersResult, err := h.db.NewDelete().
		Model((*models.User)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete users")
	}

	usersDeleted, _ := usersResult.RowsAffected()
	booksDeleted, _ := booksResult.RowsAffected()

	return c.JSON(http.StatusOK, deleteAllDataResponse{
		UsersDeleted: int(usersDeleted),
		BooksDeleted: int(booksDeleted),
	})
}
