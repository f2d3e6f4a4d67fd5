package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO products (name, enrollment_fee, recurring_fee)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, product.Name, product.EnrollmentFee, product.RecurringFee).Scan(&product.ID, &product.CreatedAt)
		if err != nil {
			return err
		}

		tables := []struct {
			kind  models.EventKind
			table models.CommissionTable
		}{
			{models.EventEnrollment, product.Commissions.Enrollment},
			{models.EventRecurring, product.Commissions.Recurring},
		}
		for _, t := range tables {
			for i, amount := range t.table {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO product_commissions (product_id, kind, level, amount)
					VALUES ($1, $2, $3, $4)
				`, product.ID, t.kind, i+1, amount)
				if err != nil {
					return fmt.Errorf("insert %s level %d: %w", t.kind, i+1, err)
				}
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return apperrors.ErrProductAlreadyExists
	}
	return err
}

func (r *productRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, enrollment_fee, recurring_fee, created_at FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.EnrollmentFee, &p.RecurringFee, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	byID := map[int64]*models.Product{p.ID: &p}
	if err := r.loadCommissions(ctx, `WHERE product_id = $1`, []any{p.ID}, byID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, enrollment_fee, recurring_fee, created_at FROM products ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.EnrollmentFee, &p.RecurringFee, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	if err := r.loadCommissions(ctx, "", nil, byID); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) loadCommissions(ctx context.Context, where string, args []any, byID map[int64]*models.Product) error {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, kind, level, amount FROM product_commissions `+where, args...)
	if err != nil {
		return err
	}
	defer closeRows(rows)

	for rows.Next() {
		var (
			productID int64
			kind      models.EventKind
			level     int
			amount    decimal.Decimal
		)
		if err := rows.Scan(&productID, &kind, &level, &amount); err != nil {
			return err
		}
		p, ok := byID[productID]
		if !ok || level < 1 || level > models.MaxLevel {
			continue
		}
		switch kind {
		case models.EventEnrollment:
			p.Commissions.Enrollment[level-1] = amount
		case models.EventRecurring:
			p.Commissions.Recurring[level-1] = amount
		}
	}
	return rows.Err()
}
