package leaderboardservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	leaderboardevents "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/events"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/upstream"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var testTracer = noop.NewTracerProvider().Tracer("test")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ------------------------
// Fake Collector
// ------------------------

type FakeCollector struct {
	mu    sync.Mutex
	calls []string

	CollectAccountFunc func(ctx context.Context, cred leaderboarddomain.AccountCredential, start, end time.Time) []leaderboarddomain.WagerRecord
}

func (f *FakeCollector) CollectAccount(ctx context.Context, cred leaderboarddomain.AccountCredential, start, end time.Time) []leaderboarddomain.WagerRecord {
	f.mu.Lock()
	f.calls = append(f.calls, cred.InvitationCode)
	f.mu.Unlock()
	if f.CollectAccountFunc != nil {
		return f.CollectAccountFunc(ctx, cred, start, end)
	}
	return nil
}

func (f *FakeCollector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// ------------------------
// Fake Snapshot Repo
// ------------------------

type FakeSnapshotRepo struct {
	mu    sync.Mutex
	trace []string

	SaveSnapshotFunc          func(ctx context.Context, db bun.IDB, snapshot *leaderboarddb.Snapshot) error
	GetLatestSnapshotFunc     func(ctx context.Context, db bun.IDB, periodKey string) (*leaderboarddb.Snapshot, error)
	DeleteSnapshotsBeforeFunc func(ctx context.Context, db bun.IDB, cutoff time.Time) (int64, error)
}

func (f *FakeSnapshotRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeSnapshotRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSnapshotRepo) SaveSnapshot(ctx context.Context, db bun.IDB, snapshot *leaderboarddb.Snapshot) error {
	f.record("SaveSnapshot")
	if f.SaveSnapshotFunc != nil {
		return f.SaveSnapshotFunc(ctx, db, snapshot)
	}
	return nil
}

func (f *FakeSnapshotRepo) GetLatestSnapshot(ctx context.Context, db bun.IDB, periodKey string) (*leaderboarddb.Snapshot, error) {
	f.record("GetLatestSnapshot")
	if f.GetLatestSnapshotFunc != nil {
		return f.GetLatestSnapshotFunc(ctx, db, periodKey)
	}
	return nil, leaderboarddb.ErrNotFound
}

func (f *FakeSnapshotRepo) DeleteSnapshotsBefore(ctx context.Context, db bun.IDB, cutoff time.Time) (int64, error) {
	f.record("DeleteSnapshotsBefore")
	if f.DeleteSnapshotsBeforeFunc != nil {
		return f.DeleteSnapshotsBeforeFunc(ctx, db, cutoff)
	}
	return 0, nil
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	payloads []leaderboardevents.RefreshedPayload

	PublishRefreshedFunc func(ctx context.Context, payload leaderboardevents.RefreshedPayload) error
}

func (f *FakePublisher) PublishRefreshed(ctx context.Context, payload leaderboardevents.RefreshedPayload) error {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	if f.PublishRefreshedFunc != nil {
		return f.PublishRefreshedFunc(ctx, payload)
	}
	return nil
}

// ------------------------
// Fake Doer
// ------------------------

type FakeDoer struct {
	requests []upstream.Request

	FetchFunc func(ctx context.Context, req upstream.Request) (*upstream.Response, error)
}

func (f *FakeDoer) Fetch(ctx context.Context, req upstream.Request) (*upstream.Response, error) {
	f.requests = append(f.requests, req)
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, req)
	}
	return &upstream.Response{StatusCode: 200, Body: []byte(`{"code":0,"data":[]}`)}, nil
}

// ------------------------
// Fake Clock
// ------------------------

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
