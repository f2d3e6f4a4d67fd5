package apperrors

import (
	"errors"
	"fmt"
)

// Categories. Every concrete error below wraps exactly one of them, so callers
// may match either the concrete error or its category with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvariant         = errors.New("invariant violated")
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrProductNotFound    = fmt.Errorf("product %w", ErrNotFound)
	ErrWithdrawalNotFound = fmt.Errorf("withdrawal request %w", ErrNotFound)

	ErrInvalidRequest          = fmt.Errorf("invalid request: %w", ErrValidation)
	ErrInvalidSponsor          = fmt.Errorf("unknown sponsor referral token: %w", ErrValidation)
	ErrInvalidAmount           = fmt.Errorf("amount must be positive: %w", ErrValidation)
	ErrAmountPrecision         = fmt.Errorf("amount must have at most 2 decimal places: %w", ErrValidation)
	ErrBelowMinimumWithdrawal  = fmt.Errorf("amount is below minimum withdrawal: %w", ErrValidation)
	ErrInvalidCommissionTable  = fmt.Errorf("commission table must define 8 non-negative levels: %w", ErrValidation)
	ErrInvalidEventKind        = fmt.Errorf("unknown commission event kind: %w", ErrValidation)
	ErrPlanMismatch            = fmt.Errorf("user has no active subscription to this plan: %w", ErrValidation)
	ErrMissingIdempotencyKey   = fmt.Errorf("idempotency key is required: %w", ErrValidation)
	ErrInvalidWebhookSignature = fmt.Errorf("invalid webhook signature: %w", ErrValidation)

	ErrDuplicateIdentity     = fmt.Errorf("username or email already taken: %w", ErrConflict)
	ErrProductAlreadyExists  = fmt.Errorf("product name already taken: %w", ErrConflict)
	ErrAlreadyProcessed      = fmt.Errorf("withdrawal request already processed: %w", ErrConflict)
	ErrUserAlreadyActive     = fmt.Errorf("user already active: %w", ErrConflict)
	ErrDuplicateDistribution = fmt.Errorf("distribution already applied for this key: %w", ErrConflict)
	ErrRequestInProgress     = fmt.Errorf("request with this key is already in progress: %w", ErrConflict)

	ErrInsufficientBalance = fmt.Errorf("balance too low: %w", ErrInsufficientFunds)

	ErrChainTooDeep = fmt.Errorf("sponsor chain deeper than allowed: %w", ErrInvariant)
)
