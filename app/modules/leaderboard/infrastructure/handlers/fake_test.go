package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/sh4ner/streamerpulse/app/modules/leaderboard/application"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/upstream"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	GetLeaderboardFunc func(ctx context.Context, periodKey string) (leaderboardservice.Result, error)
	LatestSnapshotFunc func(ctx context.Context, periodKey string) (*leaderboarddb.Snapshot, error)
	RenderChartFunc    func(ctx context.Context, periodKey string) ([]byte, error)
	ProxyPageFunc      func(ctx context.Context, req upstream.PageRequest) ([]byte, error)

	ClearCalls int
}

func (f *FakeService) GetLeaderboard(ctx context.Context, periodKey string) (leaderboardservice.Result, error) {
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, periodKey)
	}
	return leaderboardservice.Result{}, nil
}

func (f *FakeService) ClearCache(ctx context.Context) { f.ClearCalls++ }

func (f *FakeService) RefreshAll(ctx context.Context) {}

func (f *FakeService) CacheStates() map[string]leaderboardservice.State { return nil }

func (f *FakeService) LatestSnapshot(ctx context.Context, periodKey string) (*leaderboarddb.Snapshot, error) {
	if f.LatestSnapshotFunc != nil {
		return f.LatestSnapshotFunc(ctx, periodKey)
	}
	return nil, leaderboardservice.ErrNoSnapshot
}

func (f *FakeService) RenderChart(ctx context.Context, periodKey string) ([]byte, error) {
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, periodKey)
	}
	return []byte("\x89PNG"), nil
}

func (f *FakeService) ProxyPage(ctx context.Context, req upstream.PageRequest) ([]byte, error) {
	if f.ProxyPageFunc != nil {
		return f.ProxyPageFunc(ctx, req)
	}
	return []byte(`{"code":0,"data":[]}`), nil
}

var _ leaderboardservice.Service = (*FakeService)(nil)
