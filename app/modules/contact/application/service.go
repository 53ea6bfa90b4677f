package contactservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	contactdomain "github.com/sh4ner/streamerpulse/app/modules/contact/domain"
	contactdb "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/repositories"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound is returned when deleting an unknown contact.
var ErrNotFound = errors.New("contact not found")

// Service defines the contact form use cases.
type Service interface {
	Submit(ctx context.Context, sub contactdomain.Submission) (*contactdb.Contact, error)
	List(ctx context.Context) ([]contactdb.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactService implements Service.
type ContactService struct {
	repo   contactdb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

func NewContactService(repo contactdb.Repository, logger *slog.Logger, tracer trace.Tracer) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{repo: repo, logger: logger, tracer: tracer}
}

// Submit validates and stores a contact form post.
func (s *ContactService) Submit(ctx context.Context, sub contactdomain.Submission) (*contactdb.Contact, error) {
	sub = sub.Normalize()
	ctx, span := s.start(ctx, "Submit", attribute.String("email", sub.Email))
	defer span.End()

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	c := &contactdb.Contact{
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Message:   sub.Message,
	}
	if err := s.repo.CreateContact(ctx, nil, c); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.logger.InfoContext(ctx, "Contact message stored", "id", c.ID)
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]contactdb.Contact, error) {
	ctx, span := s.start(ctx, "List")
	defer span.End()
	return s.repo.ListContacts(ctx, nil)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.start(ctx, "Delete", attribute.String("id", id.String()))
	defer span.End()

	if err := s.repo.DeleteContact(ctx, nil, id); err != nil {
		if errors.Is(err, contactdb.ErrNotFound) {
			return ErrNotFound
		}
		span.RecordError(err)
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Contact deleted", "id", id)
	return nil
}

func (s *ContactService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, "ContactService."+op, trace.WithAttributes(attrs...))
}
