package leaderboarddb

import (
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	"github.com/uptrace/bun"
)

// Snapshot is one persisted aggregation cycle result.
type Snapshot struct {
	bun.BaseModel `bun:"table:leaderboard_snapshots,alias:ls"`

	ID          int64                                `bun:"id,pk,autoincrement"`
	PeriodKey   string                               `bun:"period_key,notnull"`
	PeriodStart time.Time                            `bun:"period_start,notnull"`
	PeriodEnd   time.Time                            `bun:"period_end,notnull"`
	Tier        string                               `bun:"tier,notnull"`
	Entries     []leaderboarddomain.LeaderboardEntry `bun:"entries,type:jsonb,notnull"`
	FetchedAt   time.Time                            `bun:"fetched_at,notnull"`
	CreatedAt   time.Time                            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
