package rentals

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/shelfwise/shelfwise/pkg/errcodes"
	"github.com/shelfwise/shelfwise/pkg/models"
)

type handler struct {
	rentalService *Service
}

func (h *handler) rent(c echo.Context) error {
	ctx := c.Request().Context()

	params := RentPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user := auth.CurrentUser(c)
	rental, err := h.rentalService.Rent(ctx, user.ID, RentOptions{
		BookID:     params.BookID,
		ISBN:       params.ISBN,
		ReturnDate: params.ReturnDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, rental)
}

func (h *handler) returnBook(c echo.Context) error {
	ctx := c.Request().Context()

	params := ReturnPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user := auth.CurrentUser(c)
	closing, err := h.rentalService.Return(ctx, user.ID, params.BookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, closing)
}

func (h *handler) history(c echo.Context) error {
	ctx := c.Request().Context()

	user := auth.CurrentUser(c)
	txns, err := h.rentalService.History(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transactionsResponse(txns))
}

func (h *handler) userHistory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	txns, err := h.rentalService.History(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transactionsResponse(txns))
}

func (h *handler) listOpen(c echo.Context) error {
	ctx := c.Request().Context()

	txns, err := h.rentalService.ListOpen(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transactionsResponse(txns))
}

func transactionsResponse(txns []*models.Transaction) interface{} {
	return struct {
		Transactions []*models.Transaction `json:"transactions"`
	}{txns}
}
