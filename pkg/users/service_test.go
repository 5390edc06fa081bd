package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shelfwise/shelfwise/pkg/migrations"
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

func TestServiceRegister(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterOptions{
		Username: "reader_1",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader_1", user.Username)
	assert.False(t, user.IsAdmin)
	assert.Zero(t, user.TotalFee)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterOptions{
			Username: "reader_1",
			Password: "password456",
		})
		assert.Error(t, err)
	})

	t.Run("duplicate username rejected case-insensitively", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterOptions{
			Username: "READER_1",
			Password: "password456",
		})
		assert.Error(t, err)
	})

	t.Run("malformed username rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterOptions{
			Username: "has space",
			Password: "password456",
		})
		assert.Error(t, err)
	})
}

func TestServiceRetrieve(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterOptions{Username: "reader", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.Retrieve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)

	_, err = svc.Retrieve(ctx, 9999)
	assert.Error(t, err)

	byName, err := svc.RetrieveByUsername(ctx, "Reader")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"alpha", "bravo", "charlie"} {
		_, err := svc.Register(ctx, RegisterOptions{Username: name, Password: "password123"})
		require.NoError(t, err)
	}

	users, total, err := svc.List(ctx, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, users, 2)
}

func TestServiceChangePassword(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterOptions{Username: "reader", Password: "password123"})
	require.NoError(t, err)

	t.Run("wrong current password rejected", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "nope", "newpassword123")
		assert.Error(t, err)
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "password123", "newpassword123")
		require.NoError(t, err)

		updated, err := svc.Retrieve(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)
	})
}
