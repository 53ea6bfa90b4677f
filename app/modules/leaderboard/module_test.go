package leaderboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardSchedule(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []config.RewardTierConfig
		wantErr bool
		check   map[int]string
	}{
		{
			name:  "default when unset",
			check: map[int]string{1: "3000", 2: "2000", 6: "250", 7: "0"},
		},
		{
			name:  "configured tiers",
			tiers: []config.RewardTierConfig{{From: 1, To: 1, Amount: "4000"}, {From: 2, To: 10, Amount: "12.5"}},
			check: map[int]string{1: "4000", 10: "12.5", 11: "0"},
		},
		{
			name:    "bad amount",
			tiers:   []config.RewardTierConfig{{From: 1, To: 1, Amount: "lots"}},
			wantErr: true,
		},
		{
			name:    "overlapping tiers",
			tiers:   []config.RewardTierConfig{{From: 1, To: 3, Amount: "1"}, {From: 3, To: 4, Amount: "1"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := RewardSchedule(config.LeaderboardConfig{RewardTiers: tt.tiers})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for rank, want := range tt.check {
				assert.True(t, schedule.For(rank).Equal(decimal.RequireFromString(want)), "rank %d: got %s want %s", rank, schedule.For(rank), want)
			}
		})
	}
}

func TestPeriodResolver(t *testing.T) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	r, err := PeriodResolver(config.LeaderboardConfig{Period: "fixed", PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)
	p, err := r.Resolve("current", time.Now())
	require.NoError(t, err)
	assert.Equal(t, start, p.Start)
	assert.Equal(t, end, p.End)

	_, err = PeriodResolver(config.LeaderboardConfig{Period: "fixed", PeriodStart: end, PeriodEnd: start})
	assert.Error(t, err)

	_, err = PeriodResolver(config.LeaderboardConfig{Period: "weekly"})
	assert.Error(t, err)
}

func TestLoadSnapshot(t *testing.T) {
	embedded, err := LoadSnapshot(config.LeaderboardConfig{ImageURL: "/img/a.png"})
	require.NoError(t, err)
	assert.Len(t, embedded.Entries, 20)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	doc := `{"lastUpdated":"2025-09-30","leaderboard":[{"rank":1,"username":"zz*****zz","wagered":10,"prize":3000}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	fromFile, err := LoadSnapshot(config.LeaderboardConfig{SnapshotFile: path, ImageURL: "/img/b.png"})
	require.NoError(t, err)
	require.Len(t, fromFile.Entries, 1)
	assert.Equal(t, "/img/b.png", fromFile.Entries[0].ImageURL)

	_, err = LoadSnapshot(config.LeaderboardConfig{SnapshotFile: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}

func TestNewLeaderboardModule_ServesSnapshotWithoutAccounts(t *testing.T) {
	cfg := &config.Config{}
	cfg.Leaderboard.MaxEntries = 20
	cfg.Leaderboard.CacheTTL = time.Minute
	cfg.Leaderboard.CycleTimeout = 5 * time.Second
	cfg.Leaderboard.RefreshInterval = time.Hour
	cfg.Leaderboard.ImageURL = "/img/logo.png"

	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }

	m, err := NewLeaderboardModule(context.Background(), cfg, observability.NewTestObservability(), nil, nil, r, passthrough)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"tier":"snapshot"`)
	assert.NoError(t, m.Close())
}
