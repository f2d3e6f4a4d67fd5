package repository

import (
	"context"
	"testing"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	root := createMember(t, db, "root", nil)

	tests := []struct {
		name    string
		user    *models.User
		upline  []int64
		wantErr error
	}{
		{
			name:   "create member under root",
			user:   &models.User{Username: "alice", Email: "alice@example.com", ReferralToken: "t-alice", SponsorID: &root.ID},
			upline: []int64{root.ID},
		},
		{
			name:    "username taken",
			user:    &models.User{Username: "root", Email: "other@example.com", ReferralToken: "t-other"},
			wantErr: apperrors.ErrDuplicateIdentity,
		},
		{
			name:    "email taken",
			user:    &models.User{Username: "other", Email: "root@example.com", ReferralToken: "t-other2"},
			wantErr: apperrors.ErrDuplicateIdentity,
		},
		{
			name:    "upline deeper than eight levels",
			user:    &models.User{Username: "deep", Email: "deep@example.com", ReferralToken: "t-deep"},
			upline:  make([]int64, models.MaxLevel+1),
			wantErr: apperrors.ErrChainTooDeep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.CreateUser(ctx, tt.user, tt.upline)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, tt.user.ID)

			got, err := r.GetUserByReferralToken(ctx, tt.user.ReferralToken)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, got.ID)
			assert.False(t, got.IsActive)
			assert.True(t, got.Balance.IsZero())
		})
	}
}

func TestUserRepo_Lookups(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	_, err := r.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = r.GetUserByReferralToken(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = r.GetBalance(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepo_Activate(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	plan := createPlan(t, db, "starter", 50, 20)
	user := createMember(t, db, "alice", nil)

	require.NoError(t, r.Activate(ctx, user.ID, plan.ID))

	got, err := r.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.PlanID)
	assert.Equal(t, plan.ID, *got.PlanID)

	err = r.Activate(ctx, user.ID, plan.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyActive)
}
