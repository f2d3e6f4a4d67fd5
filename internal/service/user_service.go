package service

import (
	"context"
	"errors"
	"strings"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/a2sh3r/mlmnet/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, username, email, sponsorToken string) (*models.Registration, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type NetworkService interface {
	Snapshot(ctx context.Context, userID int64) (*models.NetworkSnapshot, error)
}

type userService struct {
	repo     repository.UserRepository
	network  repository.NetworkRepository
	validate *validator.Validate
	newToken func() string
}

func NewUserService(repo repository.UserRepository, network repository.NetworkRepository) UserService {
	return &userService{
		repo:     repo,
		network:  network,
		validate: validator.New(),
		newToken: uuid.NewString,
	}
}

type registration struct {
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email,max=255"`
}

func (s *userService) Register(ctx context.Context, username, email, sponsorToken string) (*models.Registration, error) {
	reg := registration{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
	}
	if err := s.validate.Struct(reg); err != nil {
		return nil, apperrors.ErrInvalidRequest
	}

	user := &models.User{
		Username:      reg.Username,
		Email:         reg.Email,
		ReferralToken: s.newToken(),
	}

	var upline []int64
	if token := strings.TrimSpace(sponsorToken); token != "" {
		sponsor, err := s.repo.GetUserByReferralToken(ctx, token)
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidSponsor
		}
		if err != nil {
			return nil, err
		}

		sponsorUpline, err := s.network.GetUpline(ctx, sponsor.ID, models.MaxLevel-1)
		if err != nil {
			return nil, err
		}
		upline, err = attachUpline(sponsor.ID, sponsorUpline)
		if err != nil {
			return nil, err
		}
		user.SponsorID = &sponsor.ID
	}

	if err := s.repo.CreateUser(ctx, user, upline); err != nil {
		return nil, err
	}

	logger.Log.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.Int("upline_depth", len(upline)),
	)
	return &models.Registration{UserID: user.ID, ReferralToken: user.ReferralToken}, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

type networkService struct {
	users   repository.UserRepository
	network repository.NetworkRepository
}

func NewNetworkService(users repository.UserRepository, network repository.NetworkRepository) NetworkService {
	return &networkService{users: users, network: network}
}

func (s *networkService) Snapshot(ctx context.Context, userID int64) (*models.NetworkSnapshot, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.network.GetDownline(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(userID, entries)
}
