package rentals

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shelfwise/shelfwise/pkg/errcodes"
	"github.com/shelfwise/shelfwise/pkg/models"
	"github.com/shelfwise/shelfwise/pkg/validation"
	"github.com/uptrace/bun"
)

// MaxRentalDays is the furthest out a return date may be agreed.
const MaxRentalDays = 30

// Service runs the lending workflow. It is the only code that mutates book
// quantity, user balance, and ledger status together; every mutation happens
// inside a single database transaction.
type Service struct {
	db *bun.DB

	// now is swapped out in tests to pin "today".
	now func() time.Time
}

// NewService creates a new rentals service.
func NewService(db *bun.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

// RentOptions identifies the book to lend and the agreed return date. The
// book may be addressed by ID or by ISBN; ID wins when both are set.
type RentOptions struct {
	BookID     int
	ISBN       string
	ReturnDate string
}

// Rent opens a rental for the user: one copy comes off the shelf, the fee for
// the agreed period is charged to the user's balance, and an open ledger row
// is appended.
func (s *Service) Rent(ctx context.Context, userID int, opts RentOptions) (*models.Transaction, error) {
	today := validation.Midnight(s.now())

	var rental *models.Transaction
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := s.resolveBook(ctx, tx, opts.BookID, opts.ISBN)
		if err != nil {
			return err
		}

		if book.Quantity == 0 {
			return errcodes.OutOfStock()
		}

		user := &models.User{}
		err = tx.NewSelect().Model(user).Where("u.id = ?", userID).Scan(ctx)
		if err != nil {
			return errcodes.NotFound("User")
		}

		if !user.CanRent() {
			return errcodes.FeeLimitExceeded()
		}

		open, err := tx.NewSelect().
			Model((*models.Transaction)(nil)).
			Where("user_id = ?", user.ID).
			Where("book_id = ?", book.ID).
			Where("type = ?", models.TransactionTypeRental).
			Where("status = ?", true).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if open {
			return errcodes.DuplicateActiveRental()
		}

		returnDate, err := validation.ParseDate("return_date", opts.ReturnDate)
		if err != nil {
			return errcodes.InvalidDate(err.Error())
		}
		if !returnDate.After(today) {
			return errcodes.InvalidDate("return_date must be after today")
		}
		if validation.DaysBetween(today, returnDate) > MaxRentalDays {
			return errcodes.InvalidDate("return_date must be within 30 days")
		}

		fee := book.RentalFee(today, returnDate)
		now := s.now()

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

		user.ChargeFee(fee)
		user.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(user).
			Column("total_fee", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		rental = &models.Transaction{
			CreatedAt:    now,
			UpdatedAt:    now,
			Reference:    uuid.NewString(),
			UserID:       user.ID,
			BookID:       book.ID,
			Type:         models.TransactionTypeRental,
			CheckoutDate: validation.FormatDate(today),
			ReturnDate:   validation.FormatDate(returnDate),
			Fee:          fee,
			Status:       true,
		}
		_, err = tx.NewInsert().Model(rental).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return rental, nil
}

// Return closes the user's open rental of the book. The copy goes back on the
// shelf and the fee charged at rent time is settled. A return after the agreed
// date is classified Late Return and leaves a flat surcharge on the user's
// balance. The original ledger row flips closed and a closing row is appended
// under the same reference.
func (s *Service) Return(ctx context.Context, userID, bookID int) (*models.Transaction, error) {
	today := validation.Midnight(s.now())

	var closing *models.Transaction
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := s.resolveBook(ctx, tx, bookID, "")
		if err != nil {
			return err
		}

		rental := &models.Transaction{}
		err = tx.NewSelect().
			Model(rental).
			Where("t.user_id = ?", userID).
			Where("t.book_id = ?", book.ID).
			Where("t.type = ?", models.TransactionTypeRental).
			Where("t.status = ?", true).
			Scan(ctx)
		if err != nil {
			return errcodes.NoActiveRental()
		}

		user := &models.User{}
		err = tx.NewSelect().Model(user).Where("u.id = ?", userID).Scan(ctx)
		if err != nil {
			return errcodes.NotFound("User")
		}

		agreed, err := validation.ParseDate("return_date", rental.ReturnDate)
		if err != nil {
			return errors.WithStack(err)
		}

		now := s.now()

		// The charged fee always settles; a late return leaves the
		// surcharge owed on the balance.
		kind := models.TransactionTypeReturn
		closingFee := rental.Fee
		user.SettleFee(rental.Fee)
		switch {
		case today.Before(agreed):
			kind = models.TransactionTypeEarlyReturn
		case today.After(agreed):
			kind = models.TransactionTypeLateReturn
			closingFee += models.LateReturnSurcharge
			user.ChargeFee(models.LateReturnSurcharge)
		}

		book.ReturnCopy()
		book.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(book).
			Column("quantity", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		user.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(user).
			Column("total_fee", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		rental.Status = false
		rental.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(rental).
			Column("status", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		closing = &models.Transaction{
			CreatedAt:    now,
			UpdatedAt:    now,
			Reference:    rental.Reference,
			UserID:       userID,
			BookID:       book.ID,
			Type:         kind,
			CheckoutDate: rental.CheckoutDate,
			ReturnDate:   validation.FormatDate(today),
			Fee:          closingFee,
			Status:       false,
		}
		_, err = tx.NewInsert().Model(closing).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return closing, nil
}

// History returns the user's full ledger, oldest first.
func (s *Service) History(ctx context.Context, userID int) ([]*models.Transaction, error) {
	txns := []*models.Transaction{}
	err := s.db.NewSelect().
		Model(&txns).
		Relation("Book").
		Where("t.user_id = ?", userID).
		Order("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return txns, nil
}

// ListOpen returns every rental currently out, oldest first.
func (s *Service) ListOpen(ctx context.Context) ([]*models.Transaction, error) {
	txns := []*models.Transaction{}
	err := s.db.NewSelect().
		Model(&txns).
		Relation("User").
		Relation("Book").
		Where("t.status = ?", true).
		Order("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return txns, nil
}

func (s *Service) resolveBook(ctx context.Context, tx bun.Tx, id int, isbn string) (*models.Book, error) {
	book := &models.Book{}
	query := tx.NewSelect().Model(book)
	switch {
	case id > 0:
		query = query.Where("b.id = ?", id)
	case isbn != "":
		query = query.Where("b.isbn = ?", isbn)
	default:
		return nil, errcodes.NotFound("Book")
	}
	if err := query.Scan(ctx); err != nil {
		return nil, errcodes.NotFound("Book")
	}
	return book, nil
}
