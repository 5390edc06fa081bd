package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FeeLimit is the outstanding-fee balance at which a user may no longer open
// new rentals. A balance of exactly the limit is blocked.
const FeeLimit = 100.00

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `bun:",nullzero" json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash
	IsAdmin      bool      `json:"is_admin"`
	TotalFee     float64   `json:"total_fee"`
}

// ChargeFee adds a rental's settlement fee to the user's outstanding balance.
func (u *User) ChargeFee(fee float64) {
	u.TotalFee += fee
}

// SettleFee removes a settled fee from the outstanding balance. The lending
// workflow only settles fees it previously charged, so the balance stays
// non-negative under workflow-only mutation; no re-check happens here.
func (u *User) SettleFee(fee float64) {
	u.TotalFee -= fee
}

// CanRent reports whether the outstanding balance is under the fee limit.
func (u *User) CanRent() bool {
	return u.TotalFee < FeeLimit
}
