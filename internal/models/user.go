package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int64           `json:"id" db:"id"`
	Username      string          `json:"username" db:"username"`
	Email         string          `json:"email" db:"email"`
	ReferralToken string          `json:"referral_token" db:"referral_token"`
	SponsorID     *int64          `json:"sponsor_id,omitempty" db:"sponsor_id"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	PlanID        *int64          `json:"plan_id,omitempty" db:"plan_id"`
	Balance       decimal.Decimal `json:"balance" db:"current_balance"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Registration is the outcome of registerUser.
type Registration struct {
	UserID        int64  `json:"user_id"`
	ReferralToken string `json:"referral_token"`
}

// Activation is the fact produced by the activation gate and consumed by
// the commission ledger.
type Activation struct {
	UserID    int64    `json:"user_id"`
	PlanID    int64    `json:"plan_id"`
	IsActive  bool     `json:"is_active"`
	Duplicate bool     `json:"duplicate"`
	Credits   []Credit `json:"credits"`
}
