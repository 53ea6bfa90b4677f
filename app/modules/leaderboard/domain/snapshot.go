package leaderboarddomain

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:embed snapshot.json
var embeddedSnapshot []byte

// Snapshot is a precomputed historical leaderboard served when live data is empty.
type Snapshot struct {
	LastUpdated string
	Entries     []LeaderboardEntry
}

type snapshotFile struct {
	LastUpdated string `json:"lastUpdated"`
	Leaderboard []struct {
		Rank     *int            `json:"rank"`
		Username string          `json:"username"`
		Wagered  decimal.Decimal `json:"wagered"`
		Prize    decimal.Decimal `json:"prize"`
	} `json:"leaderboard"`
}

// EmbeddedSnapshot returns the snapshot compiled into the binary.
func EmbeddedSnapshot(imageURL string) (Snapshot, error) {
	return ParseSnapshot(embeddedSnapshot, imageURL)
}

// ParseSnapshot decodes a snapshot document and stamps imageURL on every entry.
func ParseSnapshot(data []byte, imageURL string) (Snapshot, error) {
	var f snapshotFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(f.Leaderboard))
	for _, row := range f.Leaderboard {
		username := row.Username
		if username == "" {
			username = PlaceholderUsername
		}
		entries = append(entries, LeaderboardEntry{
			Rank:       row.Rank,
			Username:   username,
			TotalWager: row.Wagered,
			Reward:     row.Prize,
			ImageURL:   imageURL,
		})
	}
	return Snapshot{LastUpdated: f.LastUpdated, Entries: entries}, nil
}
