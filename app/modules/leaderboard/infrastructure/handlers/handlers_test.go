package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	leaderboardservice "github.com/sh4ner/streamerpulse/app/modules/leaderboard/application"
	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const testImage = "/img/logo.png"

func newTestHandlers(svc *FakeService) *LeaderboardHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewLeaderboardHandlers(svc, testImage, logger, tracer)
}

func rank(n int) *int { return &n }

func TestLeaderboardHandlers_HandleGetLeaderboard(t *testing.T) {
	fetchedAt := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		url        string
		setup      func(*FakeService)
		wantStatus int
		verify     func(t *testing.T, body map[string]any)
	}{
		{
			name: "live board",
			url:  "/api/leaderboard",
			setup: func(s *FakeService) {
				s.GetLeaderboardFunc = func(ctx context.Context, periodKey string) (leaderboardservice.Result, error) {
					return leaderboardservice.Result{
						Tier:      leaderboarddomain.TierLive,
						FetchedAt: fetchedAt,
						Entries: []leaderboarddomain.LeaderboardEntry{{
							Rank:       rank(1),
							Username:   "al*****ce",
							TotalWager: decimal.NewFromInt(15),
							Reward:     decimal.NewFromInt(3000),
							ImageURL:   testImage,
						}},
					}, nil
				}
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "2025-10-15T12:00:00Z", body["timestamp"])
				assert.Equal(t, "live", body["tier"])
				data := body["data"].([]any)
				require.Len(t, data, 1)
				entry := data[0].(map[string]any)
				assert.Equal(t, float64(1), entry["rank"])
				assert.Equal(t, float64(15), entry["totalWager"])
				assert.Equal(t, float64(3000), entry["reward"])
			},
		},
		{
			name: "period is forwarded",
			url:  "/api/leaderboard?period=previous",
			setup: func(s *FakeService) {
				s.GetLeaderboardFunc = func(ctx context.Context, periodKey string) (leaderboardservice.Result, error) {
					if periodKey != "previous" {
						return leaderboardservice.Result{}, fmt.Errorf("unexpected period %q", periodKey)
					}
					return leaderboardservice.Result{Tier: leaderboarddomain.TierSnapshot, FetchedAt: fetchedAt}, nil
				}
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "snapshot", body["tier"])
			},
		},
		{
			name: "unknown period",
			url:  "/api/leaderboard?period=yesterday",
			setup: func(s *FakeService) {
				s.GetLeaderboardFunc = func(ctx context.Context, periodKey string) (leaderboardservice.Result, error) {
					return leaderboardservice.Result{}, fmt.Errorf("resolve: %w", leaderboarddomain.ErrUnknownPeriod)
				}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "loader failure returns placeholder",
			url:  "/api/leaderboard",
			setup: func(s *FakeService) {
				s.GetLeaderboardFunc = func(ctx context.Context, periodKey string) (leaderboardservice.Result, error) {
					return leaderboardservice.Result{}, errors.New("boom")
				}
			},
			wantStatus: http.StatusInternalServerError,
			verify: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Failed to fetch leaderboard", body["message"])
				data := body["data"].([]any)
				require.Len(t, data, 1)
				entry := data[0].(map[string]any)
				assert.Equal(t, leaderboarddomain.PlaceholderUsername, entry["username"])
				assert.Nil(t, entry["rank"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := newTestHandlers(svc)

			rr := httptest.NewRecorder()
			h.HandleGetLeaderboard(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.verify != nil {
				var body map[string]any
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				tt.verify(t, body)
			}
		})
	}
}

func TestLeaderboardHandlers_HandleGetLeaderboard_ClientGone(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := NewLeaderboardHandlers(&FakeService{
		GetLeaderboardFunc: func(ctx context.Context, periodKey string) (leaderboardservice.Result, error) {
			<-ctx.Done()
			return leaderboardservice.Result{}, fmt.Errorf("load leaderboard: %w", ctx.Err())
		},
	}, testImage, logger, noop.NewTracerProvider().Tracer("test"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rr := httptest.NewRecorder()
	h.HandleGetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil).WithContext(ctx))

	assert.Equal(t, statusClientClosedRequest, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestLeaderboardHandlers_HandleClearCache(t *testing.T) {
	svc := &FakeService{}
	h := newTestHandlers(svc)

	rr := httptest.NewRecorder()
	h.HandleClearCache(rr, httptest.NewRequest(http.MethodPost, "/api/leaderboard/clear-cache", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Cache cleared"}`, rr.Body.String())
	assert.Equal(t, 1, svc.ClearCalls)
}

func TestLeaderboardHandlers_HandleSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   *leaderboarddb.Snapshot
		err        error
		wantStatus int
	}{
		{
			name: "found",
			snapshot: &leaderboarddb.Snapshot{
				PeriodKey: "current",
				Tier:      "live",
				Entries:   []leaderboarddomain.LeaderboardEntry{{Rank: rank(1), Username: "us*****me"}},
			},
			wantStatus: http.StatusOK,
		},
		{name: "none persisted", err: leaderboardservice.ErrNoSnapshot, wantStatus: http.StatusNotFound},
		{name: "unknown period", err: leaderboarddomain.ErrUnknownPeriod, wantStatus: http.StatusBadRequest},
		{name: "database error", err: errors.New("conn reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{
				LatestSnapshotFunc: func(ctx context.Context, periodKey string) (*leaderboarddb.Snapshot, error) {
					return tt.snapshot, tt.err
				},
			}
			h := newTestHandlers(svc)

			rr := httptest.NewRecorder()
			h.HandleSnapshot(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard/snapshot", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.snapshot != nil {
				var body SnapshotResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, "current", body.PeriodKey)
				require.Len(t, body.Entries, 1)
				assert.Equal(t, "us*****me", body.Entries[0].Username)
			}
		})
	}
}

func TestLeaderboardHandlers_HandleChart(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		h := newTestHandlers(&FakeService{})
		rr := httptest.NewRecorder()
		h.HandleChart(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard/chart.png", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rr.Body.String(), "\x89PNG"))
	})

	t.Run("render failure", func(t *testing.T) {
		h := newTestHandlers(&FakeService{
			RenderChartFunc: func(ctx context.Context, periodKey string) ([]byte, error) {
				return nil, errors.New("font missing")
			},
		})
		rr := httptest.NewRecorder()
		h.HandleChart(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard/chart.png", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestLeaderboardHandlers_HandleProxy(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		upstream   func(ctx context.Context, req upstream.PageRequest) ([]byte, error)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Missing required fields in request body"}`,
		},
		{
			name: "missing fields",
			body: `{"invitationCode":"abc"}`,
			upstream: func(ctx context.Context, req upstream.PageRequest) ([]byte, error) {
				return nil, leaderboardservice.ErrProxyFieldsMissing
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Missing required fields in request body"}`,
		},
		{
			name: "passes upstream body through",
			body: `{"invitationCode":"abc","accessKey":"k","beginTimestamp":1,"endTimestamp":2}`,
			upstream: func(ctx context.Context, req upstream.PageRequest) ([]byte, error) {
				if req.InvitationCode != "abc" || req.EndTimestamp != 2 {
					return nil, fmt.Errorf("unexpected request %+v", req)
				}
				return []byte(`{"code":0,"data":[{"name":"alice","wager":10}]}`), nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"code":0,"data":[{"name":"alice","wager":10}]}`,
		},
		{
			name: "non-array data is emptied",
			body: `{"invitationCode":"abc","accessKey":"k","beginTimestamp":1,"endTimestamp":2}`,
			upstream: func(ctx context.Context, req upstream.PageRequest) ([]byte, error) {
				return []byte(`{"code":0,"data":{"list":[]}}`), nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":[]}`,
		},
		{
			name: "upstream failure",
			body: `{"invitationCode":"abc","accessKey":"k","beginTimestamp":1,"endTimestamp":2}`,
			upstream: func(ctx context.Context, req upstream.PageRequest) ([]byte, error) {
				return nil, &upstream.FetchFailedError{URL: "https://bc.game", Attempts: 3, Err: errors.New("timeout")}
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(&FakeService{ProxyPageFunc: tt.upstream})

			rr := httptest.NewRecorder()
			h.HandleProxy(rr, httptest.NewRequest(http.MethodPost, "/api/leaderboard/proxy/bcgame", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}
