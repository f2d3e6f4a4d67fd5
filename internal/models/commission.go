package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit is one payout to one ancestor computed by a distribution.
type Credit struct {
	UserID int64           `json:"user_id"`
	Level  int             `json:"level"`
	Amount decimal.Decimal `json:"amount"`
}

// Distribution is everything written atomically for one payment event.
type Distribution struct {
	Key          string
	OriginUserID int64
	Kind         EventKind
	ProductID    int64
	// Activate flips the origin to active on ProductID in the same transaction.
	Activate bool
	Credits  []Credit
}

// CommissionEntry is an immutable ledger line.
type CommissionEntry struct {
	ID           int64           `json:"id" db:"id"`
	UserID       int64           `json:"-" db:"user_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Kind         EventKind       `json:"kind" db:"kind"`
	SourceUserID int64           `json:"source_user_id" db:"source_user_id"`
	SourceName   string          `json:"source_username,omitempty" db:"source_username"`
	Level        int             `json:"level" db:"level"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type DistributionResult struct {
	Key          string    `json:"key"`
	OriginUserID int64     `json:"origin_user_id"`
	Kind         EventKind `json:"kind"`
	ProductID    int64     `json:"product_id"`
	Duplicate    bool      `json:"duplicate"`
	Credits      []Credit  `json:"credits"`
}
