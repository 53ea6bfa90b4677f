package leaderboardservice

import (
	"context"
	"errors"
	"testing"
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	leaderboardevents "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/events"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func wager(name string, amount int64) leaderboarddomain.WagerRecord {
	return leaderboarddomain.WagerRecord{Username: name, Wager: decimal.NewFromInt(amount)}
}

var testAccounts = []leaderboarddomain.AccountCredential{
	{InvitationCode: "2cv50ogdp", AccessKey: "k1"},
	{InvitationCode: "sh4ner", AccessKey: "k2"},
}

func testPeriod() leaderboarddomain.Period {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return leaderboarddomain.Period{Key: "current", Start: start, End: start.AddDate(0, 1, 0)}
}

func TestAggregator_Run(t *testing.T) {
	snap, err := leaderboarddomain.EmbeddedSnapshot("/img/logo.png")
	require.NoError(t, err)

	tests := []struct {
		name       string
		snapshot   []leaderboarddomain.LeaderboardEntry
		setupFakes func(c *FakeCollector, r *FakeSnapshotRepo, p *FakePublisher)
		wantTier   leaderboarddomain.Tier
		verify     func(t *testing.T, res Result, r *FakeSnapshotRepo, p *FakePublisher)
	}{
		{
			name:     "merges accounts into a live leaderboard",
			snapshot: snap.Entries,
			setupFakes: func(c *FakeCollector, r *FakeSnapshotRepo, p *FakePublisher) {
				c.CollectAccountFunc = func(_ context.Context, cred leaderboarddomain.AccountCredential, _, _ time.Time) []leaderboarddomain.WagerRecord {
					if cred.InvitationCode == "2cv50ogdp" {
						return []leaderboarddomain.WagerRecord{wager("a", 10), wager("b", 5)}
					}
					return []leaderboarddomain.WagerRecord{wager("a", 5)}
				}
			},
			wantTier: leaderboarddomain.TierLive,
			verify: func(t *testing.T, res Result, r *FakeSnapshotRepo, p *FakePublisher) {
				require.Len(t, res.Entries, 2)
				assert.Equal(t, "a", res.Entries[0].Username)
				assert.Equal(t, "15", res.Entries[0].TotalWager.String())
				assert.Equal(t, "3000", res.Entries[0].Reward.String())
				assert.Equal(t, 2, *res.Entries[1].Rank)
				assert.Equal(t, "2000", res.Entries[1].Reward.String())
				assert.Equal(t, []string{"SaveSnapshot"}, r.Trace())
				require.Len(t, p.payloads, 1)
				assert.Equal(t, leaderboarddomain.TierLive, p.payloads[0].Tier)
			},
		},
		{
			name:     "empty accounts fall back to the snapshot verbatim",
			snapshot: snap.Entries,
			wantTier: leaderboarddomain.TierSnapshot,
			verify: func(t *testing.T, res Result, _ *FakeSnapshotRepo, _ *FakePublisher) {
				require.Len(t, res.Entries, 20)
				assert.Equal(t, snap.Entries[19].Username, res.Entries[19].Username)
				assert.Equal(t, 20, *res.Entries[19].Rank)
			},
		},
		{
			name:     "no snapshot yields the placeholder",
			wantTier: leaderboarddomain.TierPlaceholder,
			verify: func(t *testing.T, res Result, _ *FakeSnapshotRepo, _ *FakePublisher) {
				require.Len(t, res.Entries, 1)
				assert.Nil(t, res.Entries[0].Rank)
			},
		},
		{
			name:     "persistence and publish failures do not block the result",
			snapshot: snap.Entries,
			setupFakes: func(c *FakeCollector, r *FakeSnapshotRepo, p *FakePublisher) {
				c.CollectAccountFunc = func(context.Context, leaderboarddomain.AccountCredential, time.Time, time.Time) []leaderboarddomain.WagerRecord {
					return []leaderboarddomain.WagerRecord{wager("solo", 1)}
				}
				r.SaveSnapshotFunc = func(context.Context, bun.IDB, *leaderboarddb.Snapshot) error {
					return errors.New("disk full")
				}
				p.PublishRefreshedFunc = func(context.Context, leaderboardevents.RefreshedPayload) error {
					return errors.New("nats down")
				}
			},
			wantTier: leaderboarddomain.TierLive,
			verify: func(t *testing.T, res Result, _ *FakeSnapshotRepo, _ *FakePublisher) {
				require.Len(t, res.Entries, 1)
				assert.Equal(t, "solo", res.Entries[0].Username)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := &FakeCollector{}
			repo := &FakeSnapshotRepo{}
			pub := &FakePublisher{}
			if tt.setupFakes != nil {
				tt.setupFakes(collector, repo, pub)
			}

			agg := NewAggregator(collector, repo, pub, discardLogger(), testTracer, nil, AggregatorConfig{
				Accounts: testAccounts,
				Rank: leaderboarddomain.RankOptions{
					Schedule:   leaderboarddomain.DefaultRewardSchedule(),
					ImageURL:   "/img/logo.png",
					MaxEntries: 20,
				},
				Snapshot: tt.snapshot,
			})

			res := agg.Run(context.Background(), testPeriod())

			assert.Equal(t, tt.wantTier, res.Tier)
			assert.Equal(t, 2, collector.Calls())
			assert.Equal(t, testPeriod(), res.Period)
			tt.verify(t, res, repo, pub)
		})
	}
}

func TestAggregator_PassesPeriodWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	collector := &FakeCollector{CollectAccountFunc: func(_ context.Context, _ leaderboarddomain.AccountCredential, start, end time.Time) []leaderboarddomain.WagerRecord {
		gotStart, gotEnd = start, end
		return nil
	}}
	agg := NewAggregator(collector, nil, nil, discardLogger(), testTracer, nil, AggregatorConfig{
		Accounts: testAccounts[:1],
	})

	p := testPeriod()
	agg.Run(context.Background(), p)

	assert.Equal(t, p.Start, gotStart)
	assert.Equal(t, p.End, gotEnd)
}
