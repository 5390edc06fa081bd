package models

import (
	"time"

	"github.com/shelfwise/shelfwise/pkg/validation"
	"github.com/uptrace/bun"
)

// RentalFeeRate is the per-day fraction of the book's price charged for a
// rental.
const RentalFeeRate = 0.05

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              int       `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Title           string    `bun:",nullzero" json:"title"`
	Author          string    `bun:",nullzero" json:"author"`
	Publisher       string    `bun:",nullzero" json:"publisher"`
	Genre           string    `bun:",nullzero" json:"genre"`
	Edition         int       `json:"edition"`
	PublicationDate string    `bun:",nullzero" json:"publication_date"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	ISBN            string    `bun:",nullzero" json:"isbn"`
	Quantity        int       `json:"quantity"`
}

// Rent takes one copy off the shelf. The lending workflow guarantees
// Quantity > 0 before calling.
func (b *Book) Rent() {
	b.Quantity--
}

// ReturnCopy puts one copy back on the shelf.
func (b *Book) ReturnCopy() {
	b.Quantity++
}

// RentalFee computes the fee for holding this book from checkout until
// returned: whole days held times price times RentalFeeRate. Zero when the
// dates coincide. Callers guarantee returned is not before checkout.
func (b *Book) RentalFee(checkout, returned time.Time) float64 {
	days := validation.DaysBetween(checkout, returned)
	return float64(days) * b.Price * RentalFeeRate
}
