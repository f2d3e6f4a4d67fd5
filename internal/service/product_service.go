package service

import (
	"context"
	"strings"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/a2sh3r/mlmnet/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type productService struct {
	repo     repository.ProductRepository
	validate *validator.Validate
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo, validate: validator.New()}
}

func (s *productService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.ErrInvalidRequest
	}
	if input.EnrollmentFee.IsNegative() || input.RecurringFee.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}

	enrollment, err := BuildCommissionTable(input.Enrollment)
	if err != nil {
		return nil, err
	}
	recurring, err := BuildCommissionTable(input.Recurring)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          input.Name,
		EnrollmentFee: input.EnrollmentFee,
		RecurringFee:  input.RecurringFee,
		Commissions: models.Commissions{
			Enrollment: enrollment,
			Recurring:  recurring,
		},
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	logger.Log.Info("product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// BuildCommissionTable requires exactly MaxLevel non-negative amounts.
func BuildCommissionTable(levels []decimal.Decimal) (models.CommissionTable, error) {
	var t models.CommissionTable
	if len(levels) != models.MaxLevel {
		return t, apperrors.ErrInvalidCommissionTable
	}
	for i, amount := range levels {
		if amount.IsNegative() {
			return t, apperrors.ErrInvalidCommissionTable
		}
		t[i] = amount.Round(2)
	}
	return t, nil
}
