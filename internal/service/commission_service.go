package service

import (
	"context"
	"errors"
	"time"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/idempotency"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/a2sh3r/mlmnet/internal/metrics"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/a2sh3r/mlmnet/internal/repository"
	"go.uber.org/zap"
)

type CommissionService interface {
	// Activate is the activation gate on its own, without any distribution.
	Activate(ctx context.Context, userID, planID int64) (*models.Activation, error)
	// Distribute credits the origin's upline for one payment event at most once per key.
	Distribute(ctx context.Context, key string, originUserID int64, kind models.EventKind, product *models.Product) (*models.DistributionResult, error)
	OnEnrollmentPaid(ctx context.Context, userID, planID int64, key string) (*models.Activation, error)
	OnRecurringPaid(ctx context.Context, userID, planID int64, key string) (*models.DistributionResult, error)
	GetFinance(ctx context.Context, userID int64) (*models.Finance, error)
}

type commissionService struct {
	users       repository.UserRepository
	products    repository.ProductRepository
	network     repository.NetworkRepository
	commissions repository.CommissionRepository
	guard       idempotency.Guard
	lockTTL     time.Duration
}

func NewCommissionService(
	users repository.UserRepository,
	products repository.ProductRepository,
	network repository.NetworkRepository,
	commissions repository.CommissionRepository,
	guard idempotency.Guard,
	lockTTL time.Duration,
) CommissionService {
	return &commissionService{
		users:       users,
		products:    products,
		network:     network,
		commissions: commissions,
		guard:       guard,
		lockTTL:     lockTTL,
	}
}

func (s *commissionService) Activate(ctx context.Context, userID, planID int64) (*models.Activation, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return nil, apperrors.ErrUserAlreadyActive
	}
	product, err := s.products.GetProduct(ctx, planID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Activate(ctx, userID, product.ID); err != nil {
		return nil, err
	}

	logger.Log.Info("user activated", zap.Int64("user_id", userID), zap.Int64("plan_id", product.ID))
	return &models.Activation{UserID: userID, PlanID: product.ID, IsActive: true}, nil
}

func (s *commissionService) Distribute(ctx context.Context, key string, originUserID int64, kind models.EventKind, product *models.Product) (*models.DistributionResult, error) {
	if key == "" {
		return nil, apperrors.ErrMissingIdempotencyKey
	}
	if !kind.Valid() {
		return nil, apperrors.ErrInvalidEventKind
	}
	if product == nil {
		return nil, apperrors.ErrProductNotFound
	}

	var result *models.DistributionResult
	err := s.guarded(ctx, key, func(ctx context.Context) error {
		origin, err := s.users.GetUserByID(ctx, originUserID)
		if err != nil {
			return err
		}
		result, err = s.distributeFor(ctx, key, origin, kind, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *commissionService) OnEnrollmentPaid(ctx context.Context, userID, planID int64, key string) (*models.Activation, error) {
	if key == "" {
		return nil, apperrors.ErrMissingIdempotencyKey
	}

	var activation *models.Activation
	err := s.guarded(ctx, key, func(ctx context.Context) error {
		prior, err := s.priorResult(ctx, key, userID, models.EventEnrollment)
		if err != nil {
			return err
		}
		if prior != nil {
			activation = replayedActivation(prior)
			return nil
		}

		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		product, err := s.products.GetProduct(ctx, planID)
		if err != nil {
			return err
		}
		if user.IsActive {
			return apperrors.ErrUserAlreadyActive
		}

		// The origin is active from this transaction on, so the origin gate passes.
		credits, err := s.planCredits(ctx, userID, models.EventEnrollment, product)
		if err != nil {
			return err
		}

		applied, err := s.commissions.ApplyDistribution(ctx, models.Distribution{
			Key:          key,
			OriginUserID: userID,
			Kind:         models.EventEnrollment,
			ProductID:    product.ID,
			Activate:     true,
			Credits:      credits,
		})
		if errors.Is(err, apperrors.ErrDuplicateDistribution) {
			prior, perr := s.priorResult(ctx, key, userID, models.EventEnrollment)
			if perr != nil || prior == nil {
				return err
			}
			activation = replayedActivation(prior)
			return nil
		}
		if err != nil {
			return err
		}

		metrics.RecordDistribution(models.EventEnrollment, "applied", applied)
		logger.Log.Info("enrollment paid",
			zap.Int64("user_id", userID),
			zap.Int64("plan_id", product.ID),
			zap.String("key", key),
			zap.Int("credits", len(applied)),
		)
		activation = &models.Activation{UserID: userID, PlanID: product.ID, IsActive: true, Credits: applied}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activation, nil
}

func (s *commissionService) OnRecurringPaid(ctx context.Context, userID, planID int64, key string) (*models.DistributionResult, error) {
	if key == "" {
		return nil, apperrors.ErrMissingIdempotencyKey
	}

	var result *models.DistributionResult
	err := s.guarded(ctx, key, func(ctx context.Context) error {
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		product, err := s.products.GetProduct(ctx, planID)
		if err != nil {
			return err
		}
		if !user.IsActive || user.PlanID == nil || *user.PlanID != product.ID {
			return apperrors.ErrPlanMismatch
		}

		result, err = s.distributeFor(ctx, key, user, models.EventRecurring, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *commissionService) GetFinance(ctx context.Context, userID int64) (*models.Finance, error) {
	balance, err := s.users.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.commissions.GetCommissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.CommissionEntry{}
	}
	return &models.Finance{Balance: balance, Commissions: entries}, nil
}

func (s *commissionService) distributeFor(ctx context.Context, key string, origin *models.User, kind models.EventKind, product *models.Product) (*models.DistributionResult, error) {
	prior, err := s.priorResult(ctx, key, origin.ID, kind)
	if err != nil || prior != nil {
		return prior, err
	}

	result := &models.DistributionResult{Key: key, OriginUserID: origin.ID, Kind: kind}

	// A payment from an inactive member enriches nobody and leaves the key unused.
	if !origin.IsActive {
		metrics.RecordDistribution(kind, "skipped", nil)
		logger.Log.Info("distribution skipped, origin inactive", zap.Int64("user_id", origin.ID), zap.String("key", key))
		return result, nil
	}

	credits, err := s.planCredits(ctx, origin.ID, kind, product)
	if err != nil {
		return nil, err
	}

	applied, err := s.commissions.ApplyDistribution(ctx, models.Distribution{
		Key:          key,
		OriginUserID: origin.ID,
		Kind:         kind,
		ProductID:    product.ID,
		Credits:      credits,
	})
	if errors.Is(err, apperrors.ErrDuplicateDistribution) {
		prior, perr := s.priorResult(ctx, key, origin.ID, kind)
		if perr != nil || prior == nil {
			return nil, err
		}
		return prior, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordDistribution(kind, "applied", applied)
	logger.Log.Info("commissions distributed",
		zap.Int64("user_id", origin.ID),
		zap.String("kind", string(kind)),
		zap.String("key", key),
		zap.Int("credits", len(applied)),
	)
	result.Credits = applied
	return result, nil
}

func (s *commissionService) planCredits(ctx context.Context, originID int64, kind models.EventKind, product *models.Product) ([]models.Credit, error) {
	upline, err := s.network.GetUpline(ctx, originID, models.MaxLevel)
	if err != nil {
		return nil, err
	}
	credits, err := computeCredits(upline, product.Table(kind))
	if err != nil {
		logger.Log.Error("sponsor chain invariant broken", zap.Int64("user_id", originID), zap.Error(err))
		return nil, err
	}
	return credits, nil
}

// priorResult returns the stored outcome when key was already applied to the
// same origin and kind. A key reused for a different event is a conflict.
func (s *commissionService) priorResult(ctx context.Context, key string, originID int64, kind models.EventKind) (*models.DistributionResult, error) {
	prior, err := s.commissions.GetDistribution(ctx, key)
	if err != nil || prior == nil {
		return nil, err
	}
	if prior.OriginUserID != originID || prior.Kind != kind {
		return nil, apperrors.ErrDuplicateDistribution
	}

	prior.Duplicate = true
	metrics.RecordDistribution(kind, "duplicate", nil)
	logger.Log.Info("distribution already applied", zap.Int64("user_id", originID), zap.String("key", key))
	return prior, nil
}

// replayedActivation reports the plan recorded with the original payment.
func replayedActivation(prior *models.DistributionResult) *models.Activation {
	return &models.Activation{
		UserID:    prior.OriginUserID,
		PlanID:    prior.ProductID,
		IsActive:  true,
		Duplicate: true,
		Credits:   prior.Credits,
	}
}

func (s *commissionService) guarded(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return idempotency.Do(ctx, s.guard, idempotency.GenerateKey("distribution", key), s.lockTTL, fn)
}
