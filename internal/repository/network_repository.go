package repository

import (
	"context"
	"database/sql"

	"github.com/a2sh3r/mlmnet/internal/models"
)

type NetworkRepository interface {
	// GetUpline returns up to depth ancestors of userID, its direct sponsor first.
	GetUpline(ctx context.Context, userID int64, depth int) ([]models.Ancestor, error)
	GetDownline(ctx context.Context, userID int64) ([]models.DownlineEntry, error)
}

type networkRepo struct {
	db *sql.DB
}

func NewNetworkRepository(db *sql.DB) NetworkRepository {
	return &networkRepo{db: db}
}

func (r *networkRepo) GetUpline(ctx context.Context, userID int64, depth int) ([]models.Ancestor, error) {
	if depth <= 0 {
		return nil, nil
	}

	query := `
		WITH RECURSIVE chain (id, sponsor_id, is_active, level) AS (
			SELECT s.id, s.sponsor_id, s.is_active, 1
			FROM users u JOIN users s ON s.id = u.sponsor_id
			WHERE u.id = $1
			UNION ALL
			SELECT s.id, s.sponsor_id, s.is_active, c.level + 1
			FROM chain c JOIN users s ON s.id = c.sponsor_id
			WHERE c.level < $2
		)
		SELECT id, level, is_active FROM chain ORDER BY level
	`
	rows, err := r.db.QueryContext(ctx, query, userID, depth)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var upline []models.Ancestor
	for rows.Next() {
		var a models.Ancestor
		if err := rows.Scan(&a.UserID, &a.Level, &a.IsActive); err != nil {
			return nil, err
		}
		upline = append(upline, a)
	}
	return upline, rows.Err()
}

func (r *networkRepo) GetDownline(ctx context.Context, userID int64) ([]models.DownlineEntry, error) {
	query := `
		SELECT n.level, u.id, u.username, u.email, u.is_active
		FROM network_links n JOIN users u ON u.id = n.member_id
		WHERE n.ancestor_id = $1
		ORDER BY n.level, n.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var entries []models.DownlineEntry
	for rows.Next() {
		var e models.DownlineEntry
		if err := rows.Scan(&e.Level, &e.Member.UserID, &e.Member.Username, &e.Member.Email, &e.Member.IsActive); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
