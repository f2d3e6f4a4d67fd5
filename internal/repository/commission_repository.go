package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
)

type CommissionRepository interface {
	// GetDistribution returns the recorded outcome for key, or nil if the key is unused.
	GetDistribution(ctx context.Context, key string) (*models.DistributionResult, error)
	// ApplyDistribution records the key, optionally activates the origin and
	// credits every ancestor that is still active, all in one transaction.
	// It returns the credits actually written.
	ApplyDistribution(ctx context.Context, d models.Distribution) ([]models.Credit, error)
	GetCommissions(ctx context.Context, userID int64) ([]models.CommissionEntry, error)
}

type commissionRepo struct {
	db *sql.DB
}

func NewCommissionRepository(db *sql.DB) CommissionRepository {
	return &commissionRepo{db: db}
}

func (r *commissionRepo) GetDistribution(ctx context.Context, key string) (*models.DistributionResult, error) {
	result := models.DistributionResult{Key: key}
	err := r.db.QueryRowContext(ctx, `
		SELECT origin_user_id, kind, product_id FROM distributions WHERE idempotency_key = $1
	`, key).Scan(&result.OriginUserID, &result.Kind, &result.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, level, amount FROM commissions WHERE idempotency_key = $1 ORDER BY level
	`, key)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	for rows.Next() {
		var c models.Credit
		if err := rows.Scan(&c.UserID, &c.Level, &c.Amount); err != nil {
			return nil, err
		}
		result.Credits = append(result.Credits, c)
	}
	return &result, rows.Err()
}

func (r *commissionRepo) ApplyDistribution(ctx context.Context, d models.Distribution) ([]models.Credit, error) {
	// Ascending user id is the global lock order for balance rows.
	credits := make([]models.Credit, len(d.Credits))
	copy(credits, d.Credits)
	sort.Slice(credits, func(i, j int) bool { return credits[i].UserID < credits[j].UserID })

	var applied []models.Credit
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		applied = applied[:0]

		res, err := tx.ExecContext(ctx, `
			INSERT INTO distributions (idempotency_key, origin_user_id, kind, product_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (idempotency_key) DO NOTHING
		`, d.Key, d.OriginUserID, d.Kind, d.ProductID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return apperrors.ErrDuplicateDistribution
		}

		if d.Activate {
			if err := activateUser(ctx, tx, d.OriginUserID, d.ProductID); err != nil {
				return err
			}
		}

		for _, c := range credits {
			if c.Level < 1 || c.Level > models.MaxLevel {
				return apperrors.ErrChainTooDeep
			}
			if !c.Amount.IsPositive() {
				continue
			}

			res, err := tx.ExecContext(ctx, `
				UPDATE users SET current_balance = current_balance + $1
				WHERE id = $2 AND is_active
			`, c.Amount, c.UserID)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				continue
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO commissions (user_id, amount, kind, source_user_id, level, idempotency_key)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, c.UserID, c.Amount, d.Kind, d.OriginUserID, c.Level, d.Key)
			if err != nil {
				return err
			}
			applied = append(applied, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(applied, func(i, j int) bool { return applied[i].Level < applied[j].Level })
	return applied, nil
}

func (r *commissionRepo) GetCommissions(ctx context.Context, userID int64) ([]models.CommissionEntry, error) {
	query := `
		SELECT c.id, c.user_id, c.amount, c.kind, c.source_user_id, u.username, c.level, c.created_at
		FROM commissions c JOIN users u ON u.id = c.source_user_id
		WHERE c.user_id = $1
		ORDER BY c.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var entries []models.CommissionEntry
	for rows.Next() {
		var e models.CommissionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Kind, &e.SourceUserID, &e.SourceName, &e.Level, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
