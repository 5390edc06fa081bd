package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ledger entry types. A rental opens with TransactionTypeRental; the closing
// entry records how the return fell against the agreed date.
const (
	TransactionTypeRental      = "Rental"
	TransactionTypeReturn      = "Return"
	TransactionTypeEarlyReturn = "Early Return"
	TransactionTypeLateReturn  = "Late Return"
)

// LateReturnSurcharge is the flat fee added when a book comes back after the
// agreed return date.
const LateReturnSurcharge = 50.00

// ValidTransactionType reports whether t is one of the ledger entry types.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeRental, TransactionTypeReturn, TransactionTypeEarlyReturn, TransactionTypeLateReturn:
		return true
	}
	return false
}

// Transaction is one rental or return event. Rows are append-only: closing a
// rental flips the original row's Status to false and appends a new closing
// row, so the ledger keeps the full history.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Reference    string    `bun:",nullzero" json:"reference"`
	UserID       int       `json:"user_id"`
	BookID       int       `json:"book_id"`
	Type         string    `bun:",nullzero" json:"type"`
	CheckoutDate string    `bun:",nullzero" json:"checkout_date"`
	ReturnDate   string    `bun:",nullzero" json:"return_date"`
	Fee          float64   `json:"fee"`
	Status       bool      `json:"status"` // true = open rental

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Book *Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}
