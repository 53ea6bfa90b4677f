package leaderboarddomain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// RankOptions configures MergeAndRank.
type RankOptions struct {
	Schedule   RewardSchedule
	ImageURL   string
	MaxEntries int
}

type mergedPlayer struct {
	username string
	total    decimal.Decimal
	order    int
}

// MergeAndRank groups records by normalized username, sums their wagers, and ranks the
// players by total descending. Ties keep first-seen order. Ranks are 1..K with no gaps.
func MergeAndRank(records []WagerRecord, opts RankOptions) []LeaderboardEntry {
	byName := make(map[string]*mergedPlayer, len(records))
	players := make([]*mergedPlayer, 0, len(records))

	for _, r := range records {
		key := NormalizeUsername(r.Username)
		p, ok := byName[key]
		if !ok {
			p = &mergedPlayer{username: r.Username, order: len(players)}
			byName[key] = p
			players = append(players, p)
		}
		p.total = p.total.Add(r.Wager)
	}

	slices.SortStableFunc(players, func(a, b *mergedPlayer) int {
		return b.total.Cmp(a.total)
	})

	if opts.MaxEntries > 0 && len(players) > opts.MaxEntries {
		players = players[:opts.MaxEntries]
	}

	entries := make([]LeaderboardEntry, len(players))
	for i, p := range players {
		rank := i + 1
		entries[i] = LeaderboardEntry{
			Rank:       &rank,
			Username:   p.username,
			TotalWager: p.total,
			Reward:     opts.Schedule.For(rank),
			ImageURL:   opts.ImageURL,
		}
	}
	return entries
}
