package service

import (
	"context"
	"strings"
	"time"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/a2sh3r/mlmnet/internal/metrics"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/a2sh3r/mlmnet/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*models.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id int64) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id int64, reason string) (*models.WithdrawalRequest, error)
	GetWithdrawal(ctx context.Context, id int64) (*models.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, status models.WithdrawalStatus) ([]models.WithdrawalRequest, error)
	FinancialReport(ctx context.Context) (models.FinancialReport, error)
}

type withdrawalService struct {
	repo          repository.WithdrawalRepository
	users         repository.UserRepository
	minWithdrawal decimal.Decimal
	now           func() time.Time
}

func NewWithdrawalService(repo repository.WithdrawalRepository, users repository.UserRepository, minWithdrawal decimal.Decimal) WithdrawalService {
	return &withdrawalService{
		repo:          repo,
		users:         users,
		minWithdrawal: minWithdrawal,
		now:           time.Now,
	}
}

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*models.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, apperrors.ErrAmountPrecision
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, apperrors.ErrBelowMinimumWithdrawal
	}

	balance, err := s.users.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.Available().LessThan(amount) {
		return nil, apperrors.ErrInsufficientBalance
	}

	req := &models.WithdrawalRequest{
		UserID:      userID,
		Amount:      amount,
		Status:      models.WithdrawalPending,
		RequestedAt: s.now(),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	metrics.RecordWithdrawal(models.WithdrawalPending)
	logger.Log.Info("withdrawal requested",
		zap.Int64("request_id", req.ID),
		zap.Int64("user_id", userID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return req, nil
}

func (s *withdrawalService) ApproveWithdrawal(ctx context.Context, id int64) (*models.WithdrawalRequest, error) {
	req, err := s.repo.Approve(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawal(models.WithdrawalApproved)
	logger.Log.Info("withdrawal approved",
		zap.Int64("request_id", id),
		zap.Int64("user_id", req.UserID),
		zap.String("amount", req.Amount.StringFixed(2)),
	)
	return req, nil
}

func (s *withdrawalService) RejectWithdrawal(ctx context.Context, id int64, reason string) (*models.WithdrawalRequest, error) {
	req, err := s.repo.Reject(ctx, id, strings.TrimSpace(reason), s.now())
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawal(models.WithdrawalRejected)
	logger.Log.Info("withdrawal rejected", zap.Int64("request_id", id), zap.Int64("user_id", req.UserID))
	return req, nil
}

func (s *withdrawalService) GetWithdrawal(ctx context.Context, id int64) (*models.WithdrawalRequest, error) {
	return s.repo.GetRequest(ctx, id)
}

func (s *withdrawalService) ListWithdrawals(ctx context.Context, status models.WithdrawalStatus) ([]models.WithdrawalRequest, error) {
	switch status {
	case "", models.WithdrawalPending, models.WithdrawalApproved, models.WithdrawalRejected:
	default:
		return nil, apperrors.ErrInvalidRequest
	}
	return s.repo.ListRequests(ctx, status)
}

func (s *withdrawalService) FinancialReport(ctx context.Context) (models.FinancialReport, error) {
	return s.repo.GetFinancialReport(ctx)
}
