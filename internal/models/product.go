package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLevel is the hard cap on sponsor chain depth.
const MaxLevel = 8

type EventKind string

const (
	EventEnrollment EventKind = "enrollment"
	EventRecurring  EventKind = "recurring"
)

func (k EventKind) Valid() bool {
	return k == EventEnrollment || k == EventRecurring
}

// CommissionTable maps level 1..MaxLevel (index 0..MaxLevel-1) to a payout.
type CommissionTable [MaxLevel]decimal.Decimal

// At returns the payout for level, or zero outside 1..MaxLevel.
func (t CommissionTable) At(level int) decimal.Decimal {
	if level < 1 || level > MaxLevel {
		return decimal.Zero
	}
	return t[level-1]
}

type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	EnrollmentFee decimal.Decimal `json:"enrollment_fee" db:"enrollment_fee"`
	RecurringFee  decimal.Decimal `json:"recurring_fee" db:"recurring_fee"`
	Commissions   Commissions     `json:"commissions"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type Commissions struct {
	Enrollment CommissionTable `json:"enrollment"`
	Recurring  CommissionTable `json:"recurring"`
}

func (p *Product) Table(kind EventKind) CommissionTable {
	if kind == EventRecurring {
		return p.Commissions.Recurring
	}
	return p.Commissions.Enrollment
}

// ProductInput carries the plan definition as submitted, before the level
// tables are checked to have exactly MaxLevel entries.
type ProductInput struct {
	Name          string            `json:"name" validate:"required,max=128"`
	EnrollmentFee decimal.Decimal   `json:"enrollment_fee"`
	RecurringFee  decimal.Decimal   `json:"recurring_fee"`
	Enrollment    []decimal.Decimal `json:"enrollment_commissions"`
	Recurring     []decimal.Decimal `json:"recurring_commissions"`
}
