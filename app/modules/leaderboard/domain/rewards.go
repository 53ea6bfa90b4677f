package leaderboarddomain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// RewardTier pays Amount to every rank in [From, To].
type RewardTier struct {
	From   int
	To     int
	Amount decimal.Decimal
}

// RewardSchedule maps a rank to its prize. Ranks outside every tier earn zero.
type RewardSchedule struct {
	tiers []RewardTier
}

// DefaultRewardSchedule returns 1→3000, 2→2000, 3→1000, 4→500, 5–6→250.
func DefaultRewardSchedule() RewardSchedule {
	s, _ := NewRewardSchedule([]RewardTier{
		{From: 1, To: 1, Amount: decimal.NewFromInt(3000)},
		{From: 2, To: 2, Amount: decimal.NewFromInt(2000)},
		{From: 3, To: 3, Amount: decimal.NewFromInt(1000)},
		{From: 4, To: 4, Amount: decimal.NewFromInt(500)},
		{From: 5, To: 6, Amount: decimal.NewFromInt(250)},
	})
	return s
}

// NewRewardSchedule validates tiers and sorts them by From.
func NewRewardSchedule(tiers []RewardTier) (RewardSchedule, error) {
	sorted := slices.Clone(tiers)
	slices.SortFunc(sorted, func(a, b RewardTier) int { return a.From - b.From })

	for i, t := range sorted {
		if t.From < 1 || t.To < t.From {
			return RewardSchedule{}, fmt.Errorf("invalid reward tier %d-%d", t.From, t.To)
		}
		if t.Amount.IsNegative() {
			return RewardSchedule{}, fmt.Errorf("negative reward for tier %d-%d", t.From, t.To)
		}
		if i > 0 && t.From <= sorted[i-1].To {
			return RewardSchedule{}, fmt.Errorf("reward tier %d-%d overlaps %d-%d", t.From, t.To, sorted[i-1].From, sorted[i-1].To)
		}
	}
	return RewardSchedule{tiers: sorted}, nil
}

// For returns the reward for a 1-based rank.
func (s RewardSchedule) For(rank int) decimal.Decimal {
	for _, t := range s.tiers {
		if rank >= t.From && rank <= t.To {
			return t.Amount
		}
	}
	return decimal.Zero
}
