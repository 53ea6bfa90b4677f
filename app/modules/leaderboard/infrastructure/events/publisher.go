package leaderboardevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
)

// RefreshedSubjectSuffix is appended to the configured subject prefix.
const RefreshedSubjectSuffix = "leaderboard.refreshed.v1"

// RefreshedPayload announces the result of an aggregation cycle.
type RefreshedPayload struct {
	PeriodKey   string                               `json:"periodKey"`
	PeriodStart time.Time                            `json:"periodStart"`
	PeriodEnd   time.Time                            `json:"periodEnd"`
	Tier        leaderboarddomain.Tier               `json:"tier"`
	FetchedAt   time.Time                            `json:"fetchedAt"`
	Entries     []leaderboarddomain.LeaderboardEntry `json:"entries"`
}

// Publisher emits leaderboard notifications.
type Publisher interface {
	PublishRefreshed(ctx context.Context, payload RefreshedPayload) error
}

// EventPublisher sends refresh notifications through a watermill publisher.
type EventPublisher struct {
	publisher message.Publisher
	subject   string
	logger    *slog.Logger
}

// NewEventPublisher publishes to "<prefix>.leaderboard.refreshed.v1" on publisher.
func NewEventPublisher(publisher message.Publisher, subjectPrefix string, logger *slog.Logger) *EventPublisher {
	subject := RefreshedSubjectSuffix
	if subjectPrefix != "" {
		subject = subjectPrefix + "." + subject
	}
	return &EventPublisher{publisher: publisher, subject: subject, logger: logger}
}

// NewNATSPublisher builds a watermill-nats publisher on an existing core NATS connection.
// JetStream is disabled: refresh events are fire-and-forget notifications.
func NewNATSPublisher(conn *nats.Conn, subjectPrefix string, logger *slog.Logger) (*EventPublisher, error) {
	pub, err := wmnats.NewPublisherWithNatsConn(conn, wmnats.PublisherPublishConfig{
		Marshaler:         &wmnats.NATSMarshaler{},
		SubjectCalculator: wmnats.DefaultSubjectCalculator,
		JetStream:         wmnats.JetStreamConfig{Disabled: true},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}
	return NewEventPublisher(pub, subjectPrefix, logger), nil
}

// Subject returns the subject refresh notifications are sent on.
func (p *EventPublisher) Subject() string { return p.subject }

// PublishRefreshed publishes payload as a JSON message with a fresh watermill UUID.
func (p *EventPublisher) PublishRefreshed(ctx context.Context, payload RefreshedPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode refreshed event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("Content-Type", "application/json")
	msg.Metadata.Set("period_key", payload.PeriodKey)

	if err := p.publisher.Publish(p.subject, msg); err != nil {
		return fmt.Errorf("failed to publish refreshed event: %w", err)
	}

	p.logger.DebugContext(ctx, "Published leaderboard refresh",
		"subject", p.subject,
		"message_id", msg.UUID,
		"tier", payload.Tier,
	)
	return nil
}

// NopPublisher drops every event. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishRefreshed(context.Context, RefreshedPayload) error { return nil }
