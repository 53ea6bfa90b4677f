package leaderboarddomain

import "github.com/shopspring/decimal"

// PlaceholderUsername is shown when no tier produced any rows.
const PlaceholderUsername = "Unknown"

// Placeholder returns the single synthetic entry served when every tier is empty.
func Placeholder(imageURL string) []LeaderboardEntry {
	return []LeaderboardEntry{{
		Rank:       nil,
		Username:   PlaceholderUsername,
		TotalWager: decimal.Zero,
		Reward:     decimal.Zero,
		ImageURL:   imageURL,
	}}
}

// SelectSource picks the first non-empty tier: ranked live records, then the snapshot as is,
// then the placeholder. Tiers are never blended.
func SelectSource(live []WagerRecord, snapshot []LeaderboardEntry, opts RankOptions) ([]LeaderboardEntry, Tier) {
	if len(live) > 0 {
		if ranked := MergeAndRank(live, opts); len(ranked) > 0 {
			return ranked, TierLive
		}
	}
	if len(snapshot) > 0 {
		out := make([]LeaderboardEntry, len(snapshot))
		copy(out, snapshot)
		return out, TierSnapshot
	}
	return Placeholder(opts.ImageURL), TierPlaceholder
}
