package books

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shelfwise/shelfwise/pkg/migrations"
	"github.com/shelfwise/shelfwise/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func validCreateOptions() CreateBookOptions {
	return CreateBookOptions{
		Title:           "The Go Programming Language",
		Author:          "Alan Donovan",
		Publisher:       "Addison Wesley",
		Genre:           "Programming",
		Edition:         1,
		PublicationDate: "26-10-2015",
		Price:           39.99,
		ISBN:            "978-0-13-419044-0",
		Quantity:        3,
	}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book, err := svc.Create(ctx, validCreateOptions())
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "The Go Programming Language", book.Title)
	assert.Equal(t, 3, book.Quantity)

	stored, err := svc.Retrieve(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.False(t, stored.UpdatedAt.IsZero())

	t.Run("duplicate isbn rejected", func(t *testing.T) {
		opts := validCreateOptions()
		opts.Title = "Another Title"
		_, err := svc.Create(ctx, opts)
		assert.Error(t, err)
	})

	t.Run("malformed isbn rejected", func(t *testing.T) {
		opts := validCreateOptions()
		opts.ISBN = "978-013-419044-0"
		_, err := svc.Create(ctx, opts)
		assert.Error(t, err)
	})

	t.Run("single name author rejected", func(t *testing.T) {
		opts := validCreateOptions()
		opts.ISBN = "978-0-13-419044-1"
		opts.Author = "Plato"
		_, err := svc.Create(ctx, opts)
		assert.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		opts := validCreateOptions()
		opts.ISBN = "978-0-13-419044-2"
		opts.Price = -1
		_, err := svc.Create(ctx, opts)
		assert.Error(t, err)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		opts := validCreateOptions()
		opts.ISBN = "978-0-13-419044-3"
		opts.PublicationDate = "2015-10-26"
		_, err := svc.Create(ctx, opts)
		assert.Error(t, err)
	})
}

func TestServiceRetrieve(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateOptions())
	require.NoError(t, err)

	book, err := svc.Retrieve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ISBN, book.ISBN)

	_, err = svc.Retrieve(ctx, 9999)
	assert.Error(t, err)

	byISBN, err := svc.RetrieveByISBN(ctx, created.ISBN)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byISBN.ID)

	_, err = svc.RetrieveByISBN(ctx, "978-9-99-999999-9")
	assert.Error(t, err)
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first := validCreateOptions()
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validCreateOptions()
	second.Title = "Learning Go"
	second.Author = "Jon Bodner"
	second.ISBN = "978-1-49-207721-3"
	second.Genre = "Programming"
	second.Price = 49.99
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	t.Run("no filters returns everything", func(t *testing.T) {
		books, total, err := svc.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, books, 2)
	})

	t.Run("filter by author case-insensitively", func(t *testing.T) {
		author := "jon bodner"
		books, total, err := svc.List(ctx, ListOptions{Author: &author})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, books, 1)
		assert.Equal(t, "Learning Go", books[0].Title)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		genre := "Programming"
		price := 49.99
		books, _, err := svc.List(ctx, ListOptions{Genre: &genre, Price: &price})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Learning Go", books[0].Title)
	})

	t.Run("no matches is empty not error", func(t *testing.T) {
		genre := "Cooking"
		books, total, err := svc.List(ctx, ListOptions{Genre: &genre})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, books)
	})

	t.Run("pagination", func(t *testing.T) {
		books, total, err := svc.List(ctx, ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, books, 1)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book, err := svc.Create(ctx, validCreateOptions())
	require.NoError(t, err)

	book.Genre = "Reference"
	book.Price = 44.99
	err = svc.Update(ctx, book, UpdateOptions{Columns: []string{"genre", "price"}})
	require.NoError(t, err)

	stored, err := svc.Retrieve(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reference", stored.Genre)
	assert.Equal(t, 44.99, stored.Price)
	assert.False(t, stored.UpdatedAt.IsZero())

	t.Run("whitespace is normalized before persisting", func(t *testing.T) {
		padded, err := svc.Retrieve(ctx, book.ID)
		require.NoError(t, err)

		padded.Genre = "  Science Fiction  "
		err = svc.Update(ctx, padded, UpdateOptions{Columns: []string{"genre"}})
		require.NoError(t, err)

		trimmed, err := svc.Retrieve(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Science Fiction", trimmed.Genre)
	})

	t.Run("edits are validated like creation", func(t *testing.T) {
		stored.Author = "Plato"
		err := svc.Update(ctx, stored, UpdateOptions{Columns: []string{"author"}})
		assert.Error(t, err)
	})
}

func TestServiceCopies(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateOptions())
	require.NoError(t, err)

	book, err := svc.AddCopies(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, book.Quantity)

	book, err = svc.RemoveCopies(ctx, created.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Quantity)

	t.Run("cannot remove more than on hand", func(t *testing.T) {
		_, err := svc.RemoveCopies(ctx, created.ID, 2)
		assert.Error(t, err)

		book, err := svc.Retrieve(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, book.Quantity)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := svc.AddCopies(ctx, 9999, 1)
		assert.Error(t, err)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateOptions())
	require.NoError(t, err)

	t.Run("blocked while copies on hand", func(t *testing.T) {
		err := svc.Delete(ctx, created.ID)
		assert.Error(t, err)
	})

	_, err = svc.RemoveCopies(ctx, created.ID, 3)
	require.NoError(t, err)

	t.Run("blocked while an open rental exists", func(t *testing.T) {
		user := &models.User{Username: "reader", PasswordHash: "x"}
		_, err := db.NewInsert().Model(user).Exec(ctx)
		require.NoError(t, err)

		rental := &models.Transaction{
			Reference:    "11111111-1111-1111-1111-111111111111",
			UserID:       user.ID,
			BookID:       created.ID,
			Type:         models.TransactionTypeRental,
			CheckoutDate: "01-09-2026",
			ReturnDate:   "10-09-2026",
			Fee:          4.5,
			Status:       true,
		}
		_, err = db.NewInsert().Model(rental).Exec(ctx)
		require.NoError(t, err)

		err = svc.Delete(ctx, created.ID)
		assert.Error(t, err)

		rental.Status = false
		_, err = db.NewUpdate().Model(rental).Column("status").WherePK().Exec(ctx)
		require.NoError(t, err)
	})

	t.Run("allowed once quantity is zero and no open rentals", func(t *testing.T) {
		err := svc.Delete(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.Retrieve(ctx, created.ID)
		assert.Error(t, err)
	})
}
