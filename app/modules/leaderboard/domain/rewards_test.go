package leaderboarddomain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultRewardSchedule(t *testing.T) {
	s := DefaultRewardSchedule()
	want := map[int]int64{1: 3000, 2: 2000, 3: 1000, 4: 500, 5: 250, 6: 250, 7: 0, 20: 0, 0: 0, -1: 0}

	for rank, amount := range want {
		if got := s.For(rank); !got.Equal(decimal.NewFromInt(amount)) {
			t.Errorf("rank %d: got %s, want %d", rank, got, amount)
		}
	}
}

func TestNewRewardSchedule(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []RewardTier
		wantErr bool
	}{
		{
			name: "unsorted tiers are accepted",
			tiers: []RewardTier{
				{From: 3, To: 10, Amount: decimal.NewFromInt(5)},
				{From: 1, To: 2, Amount: decimal.NewFromInt(50)},
			},
		},
		{
			name:    "overlapping tiers",
			tiers:   []RewardTier{{From: 1, To: 3}, {From: 3, To: 4}},
			wantErr: true,
		},
		{
			name:    "inverted range",
			tiers:   []RewardTier{{From: 4, To: 2}},
			wantErr: true,
		},
		{
			name:    "rank zero",
			tiers:   []RewardTier{{From: 0, To: 2}},
			wantErr: true,
		},
		{
			name:    "negative amount",
			tiers:   []RewardTier{{From: 1, To: 1, Amount: decimal.NewFromInt(-1)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewRewardSchedule(tt.tiers)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRewardSchedule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !s.For(5).Equal(decimal.NewFromInt(5)) {
				t.Fatalf("expected rank 5 to earn 5, got %s", s.For(5))
			}
		})
	}
}
