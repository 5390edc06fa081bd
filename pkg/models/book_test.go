package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookRentalFee(t *testing.T) {
	t.Parallel()

	book := &Book{Price: 10.00}

	t.Run("ten day rental", func(t *testing.T) {
		fee := book.RentalFee(date(2024, time.March, 1), date(2024, time.March, 11))
		assert.InDelta(t, 5.00, fee, 1e-9)
	})

	t.Run("same day is free", func(t *testing.T) {
		fee := book.RentalFee(date(2024, time.March, 1), date(2024, time.March, 1))
		assert.Zero(t, fee)
	})

	t.Run("scales with price", func(t *testing.T) {
		pricey := &Book{Price: 40.00}
		fee := pricey.RentalFee(date(2024, time.March, 1), date(2024, time.March, 6))
		assert.InDelta(t, 10.00, fee, 1e-9)
	})
}

func TestBookQuantityMutation(t *testing.T) {
	t.Parallel()

	book := &Book{Quantity: 2}
	book.Rent()
	assert.Equal(t, 1, book.Quantity)
	book.Rent()
	assert.Equal(t, 0, book.Quantity)
	book.ReturnCopy()
	assert.Equal(t, 1, book.Quantity)
}

func TestUserFeeMutation(t *testing.T) {
	t.Parallel()

	user := &User{TotalFee: 0}
	user.ChargeFee(5.00)
	assert.InDelta(t, 5.00, user.TotalFee, 1e-9)
	user.SettleFee(5.00)
	assert.InDelta(t, 0.00, user.TotalFee, 1e-9)
}

func TestUserCanRent(t *testing.T) {
	t.Parallel()

	assert.True(t, (&User{TotalFee: 99.99}).CanRent())
	assert.False(t, (&User{TotalFee: 100.00}).CanRent())
	assert.False(t, (&User{TotalFee: 150.00}).CanRent())
}

func TestValidTransactionType(t *testing.T) {
	t.Parallel()

	for _, typ := range []string{TransactionTypeRental, TransactionTypeReturn, TransactionTypeEarlyReturn, TransactionTypeLateReturn} {
		assert.True(t, ValidTransactionType(typ), typ)
	}
	assert.False(t, ValidTransactionType("Borrow"))
	assert.False(t, ValidTransactionType(""))
}
