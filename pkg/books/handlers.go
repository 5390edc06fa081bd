package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfwise/shelfwise/pkg/errcodes"
	"github.com/shelfwise/shelfwise/pkg/models"
)

type handler struct {
	bookService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.Create(ctx, CreateBookOptions{
		Title:           params.Title,
		Author:          params.Author,
		Publisher:       params.Publisher,
		Genre:           params.Genre,
		Edition:         params.Edition,
		PublicationDate: params.PublicationDate,
		Description:     params.Description,
		Price:           params.Price,
		ISBN:            params.ISBN,
		Quantity:        params.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, book)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

func (h *handler) retrieveByISBN(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.RetrieveByISBN(ctx, c.Param("isbn"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.bookService.List(ctx, ListOptions{
		ISBN:            params.ISBN,
		Title:           params.Title,
		Author:          params.Author,
		Publisher:       params.Publisher,
		Genre:           params.Genre,
		Edition:         params.Edition,
		PublicationDate: params.PublicationDate,
		Price:           params.Price,
		Limit:           params.Limit,
		Offset:          params.Offset,
	})
	if err != nil {
		return err
	}

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{books, total}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	columns := []string{}
	if params.Title != nil {
		book.Title = *params.Title
		columns = append(columns, "title")
	}
	if params.Author != nil {
		book.Author = *params.Author
		columns = append(columns, "author")
	}
	if params.Publisher != nil {
		book.Publisher = *params.Publisher
		columns = append(columns, "publisher")
	}
	if params.Genre != nil {
		book.Genre = *params.Genre
		columns = append(columns, "genre")
	}
	if params.Edition != nil {
		book.Edition = *params.Edition
		columns = append(columns, "edition")
	}
	if params.PublicationDate != nil {
		book.PublicationDate = *params.PublicationDate
		columns = append(columns, "publication_date")
	}
	if params.Description != nil {
		book.Description = *params.Description
		columns = append(columns, "description")
	}
	if params.Price != nil {
		book.Price = *params.Price
		columns = append(columns, "price")
	}

	err = h.bookService.Update(ctx, book, UpdateOptions{Columns: columns})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

func (h *handler) addCopies(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := CopiesPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.AddCopies(ctx, id, params.Count)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

func (h *handler) removeCopies(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := CopiesPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RemoveCopies(ctx, id, params.Count)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.Delete(ctx, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
