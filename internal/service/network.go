package service

import (
	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
)

// attachUpline returns the ancestors that gain a new member sponsored by
// sponsorID: the sponsor at level 1, then the sponsor's own upline shifted
// down one level, truncated at MaxLevel.
func attachUpline(sponsorID int64, sponsorUpline []models.Ancestor) ([]int64, error) {
	upline := []int64{sponsorID}
	for i, a := range sponsorUpline {
		if a.Level != i+1 {
			return nil, apperrors.ErrChainTooDeep
		}
		if len(upline) == models.MaxLevel {
			break
		}
		upline = append(upline, a.UserID)
	}
	return upline, nil
}

// computeCredits walks the origin's upline and pays each active ancestor the
// table amount for its level. Inactive ancestors forfeit their level; the
// payout is not passed on to anyone above them.
func computeCredits(upline []models.Ancestor, table models.CommissionTable) ([]models.Credit, error) {
	var credits []models.Credit
	for i, a := range upline {
		if a.Level != i+1 || a.Level > models.MaxLevel {
			return nil, apperrors.ErrChainTooDeep
		}
		if !a.IsActive {
			continue
		}
		amount := table.At(a.Level)
		if !amount.IsPositive() {
			continue
		}
		credits = append(credits, models.Credit{UserID: a.UserID, Level: a.Level, Amount: amount})
	}
	return credits, nil
}

func buildSnapshot(userID int64, entries []models.DownlineEntry) (*models.NetworkSnapshot, error) {
	snapshot := &models.NetworkSnapshot{UserID: userID}
	for i := range snapshot.Levels {
		snapshot.Levels[i] = []models.MemberSummary{}
	}
	for _, e := range entries {
		if e.Level < 1 || e.Level > models.MaxLevel {
			return nil, apperrors.ErrChainTooDeep
		}
		snapshot.Levels[e.Level-1] = append(snapshot.Levels[e.Level-1], e.Member)
	}
	return snapshot, nil
}
