package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shelfwise/shelfwise/pkg/errcodes"
	"github.com/shelfwise/shelfwise/pkg/models"
	"github.com/shelfwise/shelfwise/pkg/validation"
	"github.com/uptrace/bun"
)

// Service handles catalog operations. Quantity changes from rentals go
// through the rentals workflow; this service only moves copies for
// administrative acquisitions and removals.
type Service struct {
	db *bun.DB
}

// NewService creates a new books service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// CreateBookOptions contains the full set of catalog fields for a new book.
type CreateBookOptions struct {
	Title           string
	Author          string
	Publisher       string
	Genre           string
	Edition         int
	PublicationDate string
	Description     string
	Price           float64
	ISBN            string
	Quantity        int
}

func (opts *CreateBookOptions) validate() error {
	var verr error
	if opts.Title, verr = validation.TitledString("title", opts.Title, validation.MaxStringLen); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.Author, verr = validation.AuthorName(opts.Author); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.Publisher, verr = validation.TitledString("publisher", opts.Publisher, validation.MaxStringLen); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.Genre, verr = validation.TitledString("genre", opts.Genre, validation.MaxStringLen); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.Edition, verr = validation.Edition(opts.Edition); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.PublicationDate, verr = validation.Date("publication_date", opts.PublicationDate); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.Description != "" {
		if opts.Description, verr = validation.TitledString("description", opts.Description, validation.MaxDescriptionLen); verr != nil {
			return errcodes.ValidationError(verr.Error())
		}
	}
	if opts.Price, verr = validation.Price("price", opts.Price); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.ISBN, verr = validation.ISBN(opts.ISBN); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	if opts.Quantity, verr = validation.Quantity(opts.Quantity); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}
	return nil
}

// Create adds a new title to the catalog.
func (s *Service) Create(ctx context.Context, opts CreateBookOptions) (*models.Book, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	exists, err := s.db.NewSelect().
		Model((*models.Book)(nil)).
		Where("isbn = ?", opts.ISBN).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("A book with this ISBN already exists")
	}

	now := time.Now()
	book := &models.Book{
		CreatedAt:       now,
		UpdatedAt:       now,
		Title:           opts.Title,
		Author:          opts.Author,
		Publisher:       opts.Publisher,
		Genre:           opts.Genre,
		Edition:         opts.Edition,
		PublicationDate: opts.PublicationDate,
		Description:     opts.Description,
		Price:           opts.Price,
		ISBN:            opts.ISBN,
		Quantity:        opts.Quantity,
	}

	_, err = s.db.NewInsert().Model(book).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// Retrieve gets a book by ID.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.Book, error) {
	book := &models.Book{}
	err := s.db.NewSelect().
		Model(book).
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Book")
	}
	return book, nil
}

// RetrieveByISBN gets a book by its unique ISBN.
func (s *Service) RetrieveByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book := &models.Book{}
	err := s.db.NewSelect().
		Model(book).
		Where("b.isbn = ?", isbn).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Book")
	}
	return book, nil
}

// ListOptions contains the catalog search filters. All filters are optional
// and combine with AND.
type ListOptions struct {
	ISBN            *string
	Title           *string
	Author          *string
	Publisher       *string
	Genre           *string
	Edition         *int
	PublicationDate *string
	Price           *float64

	Limit  int
	Offset int
}

// List returns catalog entries matching the filters in insertion order.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}

	query := s.db.NewSelect().
		Model(&books).
		Order("b.id ASC")

	if opts.ISBN != nil {
		query = query.Where("b.isbn = ?", *opts.ISBN)
	}
	if opts.Title != nil {
		query = query.Where("b.title = ? COLLATE NOCASE", *opts.Title)
	}
	if opts.Author != nil {
		query = query.Where("b.author = ? COLLATE NOCASE", *opts.Author)
	}
	if opts.Publisher != nil {
		query = query.Where("b.publisher = ? COLLATE NOCASE", *opts.Publisher)
	}
	if opts.Genre != nil {
		query = query.Where("b.genre = ? COLLATE NOCASE", *opts.Genre)
	}
	if opts.Edition != nil {
		query = query.Where("b.edition = ?", *opts.Edition)
	}
	if opts.PublicationDate != nil {
		query = query.Where("b.publication_date = ?", *opts.PublicationDate)
	}
	if opts.Price != nil {
		query = query.Where("b.price = ?", *opts.Price)
	}

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

// UpdateOptions contains options for updating a book.
type UpdateOptions struct {
	Columns []string
}

// Update persists changes to the given columns of a book. The merged record
// is re-validated so edits obey the same rules as creation.
func (s *Service) Update(ctx context.Context, book *models.Book, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	merged := CreateBookOptions{
		Title:           book.Title,
		Author:          book.Author,
		Publisher:       book.Publisher,
		Genre:           book.Genre,
		Edition:         book.Edition,
		PublicationDate: book.PublicationDate,
		Description:     book.Description,
		Price:           book.Price,
		ISBN:            book.ISBN,
		Quantity:        book.Quantity,
	}
	if err := merged.validate(); err != nil {
		return err
	}

	// Persist the normalized values, not the raw input.
	book.Title = merged.Title
	book.Author = merged.Author
	book.Publisher = merged.Publisher
	book.Genre = merged.Genre
	book.PublicationDate = merged.PublicationDate
	book.Description = merged.Description
	book.ISBN = merged.ISBN

	book.UpdatedAt = time.Now()
	opts.Columns = append(opts.Columns, "updated_at")
	_, err := s.db.NewUpdate().
		Model(book).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// AddCopies puts count new copies of the book on the shelf.
func (s *Service) AddCopies(ctx context.Context, id, count int) (*models.Book, error) {
	if count < 1 {
		return nil, errcodes.ValidationError("count must be at least 1")
	}

	var book *models.Book
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		book, err = retrieveForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		book.Quantity += count
		book.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().
			Model(book).
			Column("quantity", "updated_at").
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveCopies takes count copies off the shelf. It refuses to take the
// on-hand quantity negative; copies out on loan are not on hand.
func (s *Service) RemoveCopies(ctx context.Context, id, count int) (*models.Book, error) {
	if count < 1 {
		return nil, errcodes.ValidationError("count must be at least 1")
	}

	var book *models.Book
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		book, err = retrieveForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if count > book.Quantity {
			return errcodes.CannotRemove("Not enough copies on hand to remove.")
		}

		book.Quantity -= count
		book.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().
			Model(book).
			Column("quantity", "updated_at").
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a title from the catalog entirely. Only allowed once no
// copies remain on hand and no open rental references the book; the ledger
// history stays behind.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := retrieveForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if book.Quantity > 0 {
			return errcodes.CannotRemove("Copies are still on hand; remove them first.")
		}

		open, err := tx.NewSelect().
			Model((*models.Transaction)(nil)).
			Where("book_id = ?", id).
			Where("status = ?", true).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if open {
			return errcodes.CannotRemove("An open rental still references this book.")
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

func retrieveForUpdate(ctx context.Context, tx bun.Tx, id int) (*models.Book, error) {
	book := &models.Book{}
	err := tx.NewSelect().
		Model(book).
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Book")
	}
	return book, nil
}
