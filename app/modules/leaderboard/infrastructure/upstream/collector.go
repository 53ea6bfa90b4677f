package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Doer is the retrying transport used by the Collector.
type Doer interface {
	Fetch(ctx context.Context, req Request) (*Response, error)
}

// CollectorConfig configures a Collector.
type CollectorConfig struct {
	APIURL   string
	Origin   string
	PageSize int
	MaxPages int
}

// CollectorMetrics records collection results.
type CollectorMetrics interface {
	RecordPage(ctx context.Context, account, outcome string)
	RecordRecordsCollected(ctx context.Context, account string, count int)
}

// Collector pages through one affiliate account's invitee list.
type Collector struct {
	fetcher Doer
	cfg     CollectorConfig
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics CollectorMetrics
}

// NewCollector creates a Collector.
func NewCollector(fetcher Doer, cfg CollectorConfig, logger *slog.Logger, tracer trace.Tracer, metrics CollectorMetrics) *Collector {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 500
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 100
	}
	return &Collector{fetcher: fetcher, cfg: cfg, logger: logger, tracer: tracer, metrics: metrics}
}

// PageRequest is the upstream request body.
type PageRequest struct {
	InvitationCode string `json:"invitationCode"`
	AccessKey      string `json:"accessKey"`
	BeginTimestamp int64  `json:"beginTimestamp"`
	EndTimestamp   int64  `json:"endTimestamp"`
	PageNo         int    `json:"pageNo"`
	PageSize       int    `json:"pageSize"`
}

type pageResponse struct {
	Code json.RawMessage `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

type inviteeRow struct {
	Name       string           `json:"name"`
	Username   string           `json:"username"`
	Wager      *decimal.Decimal `json:"wager"`
	TotalWager *decimal.Decimal `json:"totalWager"`
}

// page is one decoded upstream page.
type page struct {
	rawCount int
	records  []leaderboarddomain.WagerRecord
	apiError string // non-empty when the API reported a non-zero code
}

// CollectAccount returns every visible, masked wager record for cred within [start, end).
// Fetch failures end collection for the account and return what was gathered so far.
func (c *Collector) CollectAccount(ctx context.Context, cred leaderboarddomain.AccountCredential, start, end time.Time) []leaderboarddomain.WagerRecord {
	ctx, span := c.tracer.Start(ctx, "leaderboard.collect_account", trace.WithAttributes(
		attribute.String("account", cred.InvitationCode),
	))
	defer span.End()

	var records []leaderboarddomain.WagerRecord
	pages := 0

	for pageNo := 1; pageNo <= c.cfg.MaxPages; pageNo++ {
		p, err := c.fetchPage(ctx, cred, start, end, pageNo)
		if err != nil {
			c.recordPage(ctx, cred.InvitationCode, "error")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.ErrorContext(ctx, "Account collection stopped early",
				"account", cred.InvitationCode,
				"page", pageNo,
				"collected", len(records),
				"error", err,
			)
			break
		}
		pages++
		records = append(records, p.records...)

		if p.apiError != "" {
			c.recordPage(ctx, cred.InvitationCode, "api_error")
			c.logger.WarnContext(ctx, "Upstream reported an error code",
				"account", cred.InvitationCode,
				"page", pageNo,
				"detail", p.apiError,
			)
			break
		}
		c.recordPage(ctx, cred.InvitationCode, "ok")

		if p.rawCount < c.cfg.PageSize {
			break
		}
		if pageNo == c.cfg.MaxPages {
			c.logger.WarnContext(ctx, "Page limit reached", "account", cred.InvitationCode, "max_pages", c.cfg.MaxPages)
		}
	}

	span.SetAttributes(attribute.Int("pages", pages), attribute.Int("records", len(records)))
	if c.metrics != nil {
		c.metrics.RecordRecordsCollected(ctx, cred.InvitationCode, len(records))
	}
	c.logger.InfoContext(ctx, "Account collected",
		"account", cred.InvitationCode,
		"pages", pages,
		"records", len(records),
	)
	return records
}

func (c *Collector) fetchPage(ctx context.Context, cred leaderboarddomain.AccountCredential, start, end time.Time, pageNo int) (page, error) {
	body, err := json.Marshal(PageRequest{
		InvitationCode: cred.InvitationCode,
		AccessKey:      cred.AccessKey,
		BeginTimestamp: start.Unix(),
		EndTimestamp:   end.Add(-time.Second).Unix(),
		PageNo:         pageNo,
		PageSize:       c.cfg.PageSize,
	})
	if err != nil {
		return page{}, fmt.Errorf("failed to encode page request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if c.cfg.Origin != "" {
		header.Set("Origin", c.cfg.Origin)
	}

	resp, err := c.fetcher.Fetch(ctx, Request{Method: http.MethodPost, URL: c.cfg.APIURL, Header: header, Body: body})
	if err != nil {
		return page{}, err
	}

	p, err := decodePage(resp.Body)
	if err != nil {
		// A malformed page counts as empty; collection for this account ends normally.
		c.logger.WarnContext(ctx, "Treating malformed page as empty",
			"account", cred.InvitationCode,
			"page", pageNo,
			"error", err,
		)
		return page{}, nil
	}
	return p, nil
}

// decodePage parses an upstream body into masked records. A missing or non-array data
// field yields an empty page.
func decodePage(body []byte) (page, error) {
	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return page{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if code := bytes.TrimSpace(resp.Code); !isSuccessCode(code) {
		detail := resp.Msg
		if detail == "" {
			detail = "code " + string(code)
		}
		return page{apiError: detail}, nil
	}

	var rows []json.RawMessage
	if len(resp.Data) == 0 || json.Unmarshal(resp.Data, &rows) != nil {
		return page{}, nil
	}

	p := page{rawCount: len(rows)}
	for _, raw := range rows {
		var row inviteeRow
		if err := json.Unmarshal(raw, &row); err != nil {
			continue
		}
		if r, ok := row.record(); ok {
			p.records = append(p.records, r)
		}
	}
	return p, nil
}

func (r inviteeRow) record() (leaderboarddomain.WagerRecord, bool) {
	name := r.Name
	if name == "" {
		name = r.Username
	}
	if leaderboarddomain.IsHiddenUsername(name) {
		return leaderboarddomain.WagerRecord{}, false
	}

	var wager decimal.Decimal
	switch {
	case r.Wager != nil:
		wager = *r.Wager
	case r.TotalWager != nil:
		wager = *r.TotalWager
	}
	if !wager.IsPositive() {
		return leaderboarddomain.WagerRecord{}, false
	}

	return leaderboarddomain.WagerRecord{
		Username: leaderboarddomain.MaskUsername(name),
		Wager:    wager,
	}, true
}

func isSuccessCode(code []byte) bool {
	switch string(code) {
	case "", "null", "0", `"0"`, `""`:
		return true
	}
	return false
}

func (c *Collector) recordPage(ctx context.Context, account, outcome string) {
	if c.metrics != nil {
		c.metrics.RecordPage(ctx, account, outcome)
	}
}
