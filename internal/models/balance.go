package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Balance struct {
	Current   decimal.Decimal `json:"current" db:"current_balance"`
	Reserved  decimal.Decimal `json:"reserved" db:"reserved_balance"`
	Withdrawn decimal.Decimal `json:"withdrawn" db:"withdrawn_balance"`
}

// Available is what a new withdrawal request may still claim.
func (b Balance) Available() decimal.Decimal {
	return b.Current.Sub(b.Reserved)
}

type Finance struct {
	Balance     Balance           `json:"balance"`
	Commissions []CommissionEntry `json:"commissions"`
}

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

type WithdrawalRequest struct {
	ID              int64            `json:"id" db:"id"`
	UserID          int64            `json:"user_id" db:"user_id"`
	Amount          decimal.Decimal  `json:"amount" db:"amount"`
	Status          WithdrawalStatus `json:"status" db:"status"`
	RequestedAt     time.Time        `json:"requested_at" db:"requested_at"`
	ProcessedAt     *time.Time       `json:"processed_at,omitempty" db:"processed_at"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

type FinancialReport struct {
	TotalUserBalance         decimal.Decimal `json:"total_user_balance"`
	TotalPendingWithdrawals  decimal.Decimal `json:"total_pending_withdrawals"`
	TotalApprovedWithdrawals decimal.Decimal `json:"total_approved_withdrawals"`
}
