package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
)

type UserRepository interface {
	// CreateUser inserts the user and its network links in one transaction.
	// upline[i] receives the new user at level i+1.
	CreateUser(ctx context.Context, user *models.User, upline []int64) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByReferralToken(ctx context.Context, token string) (*models.User, error)
	Activate(ctx context.Context, userID, planID int64) error
	GetBalance(ctx context.Context, userID int64) (models.Balance, error)
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, referral_token, sponsor_id, is_active, plan_id, current_balance, created_at`

func (r *userRepo) CreateUser(ctx context.Context, user *models.User, upline []int64) error {
	if len(upline) > models.MaxLevel {
		return apperrors.ErrChainTooDeep
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO users (username, email, referral_token, sponsor_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, user.Username, user.Email, user.ReferralToken, user.SponsorID).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			return err
		}

		for i, ancestorID := range upline {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO network_links (ancestor_id, member_id, level)
				VALUES ($1, $2, $3)
			`, ancestorID, user.ID, i+1)
			if err != nil {
				return fmt.Errorf("link ancestor %d at level %d: %w", ancestorID, i+1, err)
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateIdentity
	}
	return err
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepo) GetUserByReferralToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE referral_token = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *userRepo) Activate(ctx context.Context, userID, planID int64) error {
	return activateUser(ctx, r.db, userID, planID)
}

func (r *userRepo) GetBalance(ctx context.Context, userID int64) (models.Balance, error) {
	var balance models.Balance
	query := `
		SELECT current_balance, reserved_balance, withdrawn_balance FROM users WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance.Current, &balance.Reserved, &balance.Withdrawn)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Balance{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return models.Balance{}, err
	}
	return balance, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// activateUser is the only statement that sets is_active; it never clears it.
func activateUser(ctx context.Context, db execer, userID, planID int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE users SET is_active = TRUE, plan_id = $1
		WHERE id = $2 AND NOT is_active
	`, planID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrUserAlreadyActive
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.ReferralToken,
		&user.SponsorID, &user.IsActive, &user.PlanID, &user.Balance, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
