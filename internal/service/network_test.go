package service

import (
	"testing"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain returns an upline of n ancestors with ids 100, 101, ... all active.
func chain(n int) []models.Ancestor {
	upline := make([]models.Ancestor, n)
	for i := range upline {
		upline[i] = models.Ancestor{UserID: int64(100 + i), Level: i + 1, IsActive: true}
	}
	return upline
}

func table(amounts ...int64) models.CommissionTable {
	var t models.CommissionTable
	for i := range t {
		t[i] = decimal.Zero
	}
	for i, a := range amounts {
		t[i] = decimal.NewFromInt(a)
	}
	return t
}

func TestAttachUpline(t *testing.T) {
	for k := 0; k <= 10; k++ {
		sponsorUpline := chain(min(k, models.MaxLevel-1))
		upline, err := attachUpline(7, sponsorUpline)
		require.NoError(t, err)

		want := min(k+1, models.MaxLevel)
		require.Len(t, upline, want, "sponsor chain length %d", k+1)
		assert.Equal(t, int64(7), upline[0], "direct sponsor is level 1")
		for level := 2; level <= want; level++ {
			assert.Equal(t, sponsorUpline[level-2].UserID, upline[level-1])
		}
	}
}

func TestAttachUpline_TruncatesAtMaxLevel(t *testing.T) {
	upline, err := attachUpline(7, chain(models.MaxLevel))
	require.NoError(t, err)
	assert.Len(t, upline, models.MaxLevel)
	assert.Equal(t, int64(106), upline[models.MaxLevel-1])
}

func TestAttachUpline_BrokenChain(t *testing.T) {
	_, err := attachUpline(7, []models.Ancestor{{UserID: 1, Level: 2}})
	assert.ErrorIs(t, err, apperrors.ErrInvariant)
}

func TestComputeCredits(t *testing.T) {
	plan := table(50, 20)

	t.Run("all active", func(t *testing.T) {
		credits, err := computeCredits([]models.Ancestor{
			{UserID: 2, Level: 1, IsActive: true},
			{UserID: 1, Level: 2, IsActive: true},
		}, plan)
		require.NoError(t, err)
		require.Len(t, credits, 2)
		assert.Equal(t, int64(2), credits[0].UserID)
		assert.True(t, credits[0].Amount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, 1, credits[0].Level)
		assert.Equal(t, int64(1), credits[1].UserID)
		assert.True(t, credits[1].Amount.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, 2, credits[1].Level)
	})

	t.Run("inactive sponsor forfeits without rerouting", func(t *testing.T) {
		credits, err := computeCredits([]models.Ancestor{
			{UserID: 2, Level: 1, IsActive: false},
			{UserID: 1, Level: 2, IsActive: true},
		}, plan)
		require.NoError(t, err)
		require.Len(t, credits, 1)
		assert.Equal(t, int64(1), credits[0].UserID)
		assert.Equal(t, 2, credits[0].Level)
		assert.True(t, credits[0].Amount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("zero levels write nothing", func(t *testing.T) {
		credits, err := computeCredits(chain(8), table(0, 5, 0, 0, 0, 0, 0, 1))
		require.NoError(t, err)
		require.Len(t, credits, 2)
		assert.Equal(t, 2, credits[0].Level)
		assert.Equal(t, 8, credits[1].Level)
	})

	t.Run("every level of a full chain", func(t *testing.T) {
		credits, err := computeCredits(chain(8), table(8, 7, 6, 5, 4, 3, 2, 1))
		require.NoError(t, err)
		require.Len(t, credits, 8)
		total := decimal.Zero
		for _, c := range credits {
			total = total.Add(c.Amount)
		}
		assert.True(t, total.Equal(decimal.NewFromInt(36)))
	})

	t.Run("root origin", func(t *testing.T) {
		credits, err := computeCredits(nil, plan)
		require.NoError(t, err)
		assert.Empty(t, credits)
	})

	t.Run("chain deeper than max level", func(t *testing.T) {
		_, err := computeCredits(chain(9), plan)
		assert.ErrorIs(t, err, apperrors.ErrChainTooDeep)
	})
}

func TestBuildSnapshot(t *testing.T) {
	snapshot, err := buildSnapshot(1, []models.DownlineEntry{
		{Level: 1, Member: models.MemberSummary{UserID: 2, Username: "b"}},
		{Level: 1, Member: models.MemberSummary{UserID: 4, Username: "d"}},
		{Level: 2, Member: models.MemberSummary{UserID: 3, Username: "c", IsActive: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.UserID)
	assert.Equal(t, []int64{2, 4}, ids(snapshot.Levels[0]))
	assert.Equal(t, []int64{3}, ids(snapshot.Levels[1]))
	for level := 3; level <= models.MaxLevel; level++ {
		assert.NotNil(t, snapshot.Levels[level-1])
		assert.Empty(t, snapshot.Levels[level-1])
	}

	_, err = buildSnapshot(1, []models.DownlineEntry{{Level: 9}})
	assert.ErrorIs(t, err, apperrors.ErrChainTooDeep)
}

func ids(members []models.MemberSummary) []int64 {
	out := make([]int64, 0, len(members))
	for _, m := range members {
		out = append(out, m.UserID)
	}
	return out
}
