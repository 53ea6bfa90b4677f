package leaderboarddomain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Tier identifies which fallback source produced a leaderboard.
type Tier string

const (
	TierLive        Tier = "live"
	TierSnapshot    Tier = "snapshot"
	TierPlaceholder Tier = "placeholder"
)

// WagerRecord is one masked player row read from an affiliate account page.
type WagerRecord struct {
	Username string
	Wager    decimal.Decimal
}

// LeaderboardEntry is one ranked row served to clients. Rank is nil only for the placeholder.
type LeaderboardEntry struct {
	Rank       *int
	Username   string
	TotalWager decimal.Decimal
	Reward     decimal.Decimal
	ImageURL   string
}

type entryJSON struct {
	Rank       *int    `json:"rank"`
	Username   string  `json:"username"`
	TotalWager float64 `json:"totalWager"`
	Reward     float64 `json:"reward"`
	ImageURL   string  `json:"imageUrl"`
}

// MarshalJSON renders amounts as JSON numbers.
func (e LeaderboardEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Rank:       e.Rank,
		Username:   e.Username,
		TotalWager: e.TotalWager.InexactFloat64(),
		Reward:     e.Reward.InexactFloat64(),
		ImageURL:   e.ImageURL,
	})
}

// UnmarshalJSON accepts the same shape MarshalJSON produces.
func (e *LeaderboardEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rank       *int            `json:"rank"`
		Username   string          `json:"username"`
		TotalWager decimal.Decimal `json:"totalWager"`
		Reward     decimal.Decimal `json:"reward"`
		ImageURL   string          `json:"imageUrl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = LeaderboardEntry{
		Rank:       raw.Rank,
		Username:   raw.Username,
		TotalWager: raw.TotalWager,
		Reward:     raw.Reward,
		ImageURL:   raw.ImageURL,
	}
	return nil
}

// AccountCredential identifies one affiliate account.
type AccountCredential struct {
	InvitationCode string
	AccessKey      string
}
