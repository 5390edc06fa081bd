package seed

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/shelfwise/shelfwise/pkg/books"
	"github.com/shelfwise/shelfwise/pkg/models"
	"github.com/shelfwise/shelfwise/pkg/users"
	"github.com/shelfwise/shelfwise/pkg/validation"
	"github.com/uptrace/bun"
)

// File is the on-disk seed document.
type File struct {
	Admins       []AdminSeed       `json:"admins"`
	Books        []BookSeed        `json:"books"`
	Transactions []TransactionSeed `json:"transactions"`
}

type AdminSeed struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type BookSeed struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Publisher       string  `json:"publisher"`
	Genre           string  `json:"genre"`
	Edition         int     `json:"edition"`
	PublicationDate string  `json:"publication_date"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	ISBN            string  `json:"isbn"`
	Quantity        int     `json:"quantity"`
}

type TransactionSeed struct {
	Username     string  `json:"username"`
	ISBN         string  `json:"isbn"`
	Type         string  `json:"type"`
	CheckoutDate string  `json:"checkout_date"`
	ReturnDate   string  `json:"return_date"`
	Fee          float64 `json:"fee"`
	Status       bool    `json:"status"`
}

// Result summarizes one import run.
type Result struct {
	AdminsCreated       int `json:"admins_created"`
	BooksCreated        int `json:"books_created"`
	TransactionsCreated int `json:"transactions_created"`
	Skipped             int `json:"skipped"`
}

// Service imports seed documents. Imports are idempotent: admins and books
// already present (by username/ISBN) are skipped, as are ledger rows that
// match an existing entry.
type Service struct {
	db          *bun.DB
	userService *users.Service
	bookService *books.Service
}

// NewService creates a new seed service.
func NewService(db *bun.DB) *Service {
	return &Service{
		db:          db,
		userService: users.NewService(db),
		bookService: books.NewService(db),
	}
}

// Load reads and decodes a seed document from disk.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	file := &File{}
	if err := json.Unmarshal(raw, file); err != nil {
		return nil, errors.Wrap(err, "malformed seed file")
	}
	return file, nil
}

// Apply imports the document. Safe to run repeatedly against the same
// database.
func (s *Service) Apply(ctx context.Context, file *File) (*Result, error) {
	res := &Result{}

	for _, admin := range file.Admins {
		created, err := s.applyAdmin(ctx, admin)
		if err != nil {
			return nil, errors.Wrapf(err, "seeding admin %q", admin.Username)
		}
		if created {
			res.AdminsCreated++
		} else {
			res.Skipped++
		}
	}

	for _, book := range file.Books {
		created, err := s.applyBook(ctx, book)
		if err != nil {
			return nil, errors.Wrapf(err, "seeding book %q", book.ISBN)
		}
		if created {
			res.BooksCreated++
		} else {
			res.Skipped++
		}
	}

	for _, txn := range file.Transactions {
		created, err := s.applyTransaction(ctx, txn)
		if err != nil {
			return nil, errors.Wrapf(err, "seeding transaction for %q/%q", txn.Username, txn.ISBN)
		}
		if created {
			res.TransactionsCreated++
		} else {
			res.Skipped++
		}
	}

	return res, nil
}

func (s *Service) applyAdmin(ctx context.Context, admin AdminSeed) (bool, error) {
	_, err := s.userService.RetrieveByUsername(ctx, admin.Username)
	if err == nil {
		return false, nil
	}

	_, err = s.userService.Register(ctx, users.RegisterOptions{
		Username: admin.Username,
		Password: admin.Password,
		IsAdmin:  true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) applyBook(ctx context.Context, book BookSeed) (bool, error) {
	_, err := s.bookService.RetrieveByISBN(ctx, book.ISBN)
	if err == nil {
		return false, nil
	}

	_, err = s.bookService.Create(ctx, books.CreateBookOptions(book))
	if err != nil {
		return false, err
	}
	return true, nil
}

// applyTransaction records a historical ledger row. An open row also moves a
// copy off the shelf and charges the fee so the live state matches the
// ledger; both happen only when the row is actually inserted.
func (s *Service) applyTransaction(ctx context.Context, txn TransactionSeed) (bool, error) {
	if !models.ValidTransactionType(txn.Type) {
		return false, errors.Errorf("unknown transaction type %q", txn.Type)
	}
	if _, err := validation.Date("checkout_date", txn.CheckoutDate); err != nil {
		return false, err
	}
	if _, err := validation.Date("return_date", txn.ReturnDate); err != nil {
		return false, err
	}
	if _, err := validation.Fee("fee", txn.Fee); err != nil {
		return false, err
	}

	user, err := s.userService.RetrieveByUsername(ctx, txn.Username)
	if err != nil {
		return false, err
	}
	book, err := s.bookService.RetrieveByISBN(ctx, txn.ISBN)
	if err != nil {
		return false, err
	}

	created := false
	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Transaction)(nil)).
			Where("user_id = ?", user.ID).
			Where("book_id = ?", book.ID).
			Where("type = ?", txn.Type).
			Where("checkout_date = ?", txn.CheckoutDate).
			Where("return_date = ?", txn.ReturnDate).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return nil
		}

		now := time.Now()
		row := &models.Transaction{
			CreatedAt:    now,
			UpdatedAt:    now,
			Reference:    uuid.NewString(),
			UserID:       user.ID,
			BookID:       book.ID,
			Type:         txn.Type,
			CheckoutDate: txn.CheckoutDate,
			ReturnDate:   txn.ReturnDate,
			Fee:          txn.Fee,
			Status:       txn.Status,
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}
		created = true

		if !txn.Status {
			return nil
		}

		if book.Quantity == 0 {
			return errors.Errorf("no copies of %q left to back the open rental", txn.ISBN)
		}
		book.Rent()
		book.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(book).
			Column("quantity", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		user.ChargeFee(txn.Fee)
		user.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(user).
			Column("total_fee", "updated_at").
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return false, err
	}

	return created, nil
}
