package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WithdrawalRepository interface {
	// CreateRequest reserves the amount against the user's available balance
	// and stores a pending request.
	CreateRequest(ctx context.Context, req *models.WithdrawalRequest) error
	Approve(ctx context.Context, id int64, processedAt time.Time) (*models.WithdrawalRequest, error)
	Reject(ctx context.Context, id int64, reason string, processedAt time.Time) (*models.WithdrawalRequest, error)
	GetRequest(ctx context.Context, id int64) (*models.WithdrawalRequest, error)
	ListRequests(ctx context.Context, status models.WithdrawalStatus) ([]models.WithdrawalRequest, error)
	GetFinancialReport(ctx context.Context) (models.FinancialReport, error)
}

type withdrawalRepo struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) WithdrawalRepository {
	return &withdrawalRepo{db: db}
}

const withdrawalColumns = `id, user_id, amount, status, requested_at, processed_at, rejection_reason`

func (r *withdrawalRepo) CreateRequest(ctx context.Context, req *models.WithdrawalRequest) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current, reserved decimal.Decimal
		err := tx.QueryRowContext(ctx, `
			SELECT current_balance, reserved_balance FROM users WHERE id = $1 FOR UPDATE
		`, req.UserID).Scan(&current, &reserved)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if current.Sub(reserved).LessThan(req.Amount) {
			return apperrors.ErrInsufficientBalance
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users SET reserved_balance = reserved_balance + $1 WHERE id = $2
		`, req.Amount, req.UserID)
		if err != nil {
			return err
		}

		req.Status = models.WithdrawalPending
		return tx.QueryRowContext(ctx, `
			INSERT INTO withdrawal_requests (user_id, amount, status, requested_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, req.UserID, req.Amount, req.Status, req.RequestedAt).Scan(&req.ID)
	})
}

func (r *withdrawalRepo) Approve(ctx context.Context, id int64, processedAt time.Time) (*models.WithdrawalRequest, error) {
	var req *models.WithdrawalRequest
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		req, err = lockPending(ctx, tx, id)
		if err != nil {
			return err
		}

		var current decimal.Decimal
		err = tx.QueryRowContext(ctx, `
			SELECT current_balance FROM users WHERE id = $1 FOR UPDATE
		`, req.UserID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if current.LessThan(req.Amount) {
			return apperrors.ErrInsufficientBalance
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET current_balance = current_balance - $1,
			    reserved_balance = GREATEST(reserved_balance - $1, 0),
			    withdrawn_balance = withdrawn_balance + $1
			WHERE id = $2
		`, req.Amount, req.UserID)
		if err != nil {
			return err
		}

		return finish(ctx, tx, req, models.WithdrawalApproved, nil, processedAt)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *withdrawalRepo) Reject(ctx context.Context, id int64, reason string, processedAt time.Time) (*models.WithdrawalRequest, error) {
	var req *models.WithdrawalRequest
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		req, err = lockPending(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users SET reserved_balance = GREATEST(reserved_balance - $1, 0) WHERE id = $2
		`, req.Amount, req.UserID)
		if err != nil {
			return err
		}

		return finish(ctx, tx, req, models.WithdrawalRejected, &reason, processedAt)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *withdrawalRepo) GetRequest(ctx context.Context, id int64) (*models.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	return scanWithdrawal(r.db.QueryRowContext(ctx, query, id))
}

// ListRequests returns requests newest first; an empty status lists all of them.
func (r *withdrawalRepo) ListRequests(ctx context.Context, status models.WithdrawalStatus) ([]models.WithdrawalRequest, error) {
	query := `
		SELECT ` + withdrawalColumns + ` FROM withdrawal_requests
		WHERE $1 = '' OR status = $1
		ORDER BY requested_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		logger.Log.Error("failed to query withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer closeRows(rows)

	var requests []models.WithdrawalRequest
	for rows.Next() {
		var w models.WithdrawalRequest
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RequestedAt, &w.ProcessedAt, &w.RejectionReason); err != nil {
			logger.Log.Error("failed to scan withdrawal request", zap.Error(err))
			return nil, err
		}
		requests = append(requests, w)
	}
	return requests, rows.Err()
}

func (r *withdrawalRepo) GetFinancialReport(ctx context.Context) (models.FinancialReport, error) {
	var report models.FinancialReport
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(SUM(current_balance), 0) FROM users),
			(SELECT COALESCE(SUM(amount), 0) FROM withdrawal_requests WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0) FROM withdrawal_requests WHERE status = 'approved')
	`).Scan(&report.TotalUserBalance, &report.TotalPendingWithdrawals, &report.TotalApprovedWithdrawals)
	if err != nil {
		return models.FinancialReport{}, err
	}
	return report, nil
}

func lockPending(ctx context.Context, tx *sql.Tx, id int64) (*models.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1 FOR UPDATE`
	req, err := scanWithdrawal(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if req.Status != models.WithdrawalPending {
		return nil, apperrors.ErrAlreadyProcessed
	}
	return req, nil
}

func finish(ctx context.Context, tx *sql.Tx, req *models.WithdrawalRequest, status models.WithdrawalStatus, reason *string, processedAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE withdrawal_requests
		SET status = $1, processed_at = $2, rejection_reason = $3
		WHERE id = $4
	`, status, processedAt, reason, req.ID)
	if err != nil {
		return err
	}
	req.Status = status
	req.ProcessedAt = &processedAt
	req.RejectionReason = reason
	return nil
}

func scanWithdrawal(row *sql.Row) (*models.WithdrawalRequest, error) {
	var w models.WithdrawalRequest
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RequestedAt, &w.ProcessedAt, &w.RejectionReason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
