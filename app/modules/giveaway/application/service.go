package giveawayservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	giveawaydomain "github.com/sh4ner/streamerpulse/app/modules/giveaway/domain"
	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GiveawayService implements the Service interface.
type GiveawayService struct {
	repo          giveawaydb.Repository
	logger        *slog.Logger
	tracer        trace.Tracer
	db            *bun.DB
	depositAmount decimal.Decimal
}

// NewGiveawayService creates a new GiveawayService. db may be nil, in which case
// operations run without a transaction.
func NewGiveawayService(
	repo giveawaydb.Repository,
	logger *slog.Logger,
	tracer trace.Tracer,
	db *bun.DB,
	depositAmount decimal.Decimal,
) *GiveawayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GiveawayService{
		repo:          repo,
		logger:        logger,
		tracer:        tracer,
		db:            db,
		depositAmount: depositAmount,
	}
}

// SubmitEntry registers an entrant once per email and per BC user id.
func (s *GiveawayService) SubmitEntry(ctx context.Context, sub giveawaydomain.Submission) (*giveawaydb.Entry, error) {
	sub = sub.Normalize()
	return withTelemetry(s, ctx, "SubmitEntry", sub.BCUserID, func(ctx context.Context) (*giveawaydb.Entry, error) {
		if err := sub.Validate(); err != nil {
			return nil, err
		}

		var entry *giveawaydb.Entry
		err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) error {
			exists, err := s.repo.EntryExists(ctx, db, sub.Email, sub.BCUserID)
			if err != nil {
				return err
			}
			if exists {
				return ErrAlreadyRegistered
			}

			entry = &giveawaydb.Entry{
				Email:         sub.Email,
				BCUsername:    sub.BCUsername,
				BCUserID:      sub.BCUserID,
				DepositAmount: s.depositAmount,
			}
			if err := s.repo.CreateEntry(ctx, db, entry); err != nil {
				if errors.Is(err, giveawaydb.ErrDuplicate) {
					return ErrAlreadyRegistered
				}
				return err
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "Giveaway entry saved", "email", entry.Email, "bc_user_id", entry.BCUserID)
		return entry, nil
	})
}

// RecordSpin stores the prize for an entrant that has not spun yet.
func (s *GiveawayService) RecordSpin(ctx context.Context, spin giveawaydomain.SpinResult) (string, error) {
	spin = spin.Normalize()
	return withTelemetry(s, ctx, "RecordSpin", spin.Email, func(ctx context.Context) (string, error) {
		if err := spin.Validate(); err != nil {
			return "", err
		}

		err := s.repo.SetPrize(ctx, nil, spin.Email, spin.Prize)
		switch {
		case errors.Is(err, giveawaydb.ErrNotFound):
			return "", ErrEntryNotFound
		case errors.Is(err, giveawaydb.ErrPrizeAlreadySet):
			return "", ErrAlreadySpun
		case err != nil:
			return "", err
		}

		s.logger.InfoContext(ctx, "Spin result saved", "email", spin.Email, "prize", spin.Prize)
		return spin.Prize, nil
	})
}

// ListContent returns the public blocks of one type.
func (s *GiveawayService) ListContent(ctx context.Context, contentType string) ([]ContentItem, error) {
	return withTelemetry(s, ctx, "ListContent", contentType, func(ctx context.Context) ([]ContentItem, error) {
		ct, err := giveawaydomain.ParseContentType(contentType)
		if err != nil {
			return nil, err
		}
		rows, err := s.repo.ListContent(ctx, nil, string(ct))
		if err != nil {
			return nil, err
		}
		items := make([]ContentItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, ContentItem{Title: r.Title, Description: r.Description, ImageURL: r.ImageURL})
		}
		return items, nil
	})
}

// ListEntries returns every registration, newest first.
func (s *GiveawayService) ListEntries(ctx context.Context) ([]giveawaydb.Entry, error) {
	return withTelemetry(s, ctx, "ListEntries", "", func(ctx context.Context) ([]giveawaydb.Entry, error) {
		return s.repo.ListEntries(ctx, nil)
	})
}

// ExportEntries renders every registration as an XLSX workbook.
func (s *GiveawayService) ExportEntries(ctx context.Context) ([]byte, error) {
	return withTelemetry(s, ctx, "ExportEntries", "", func(ctx context.Context) ([]byte, error) {
		entries, err := s.repo.ListEntries(ctx, nil)
		if err != nil {
			return nil, err
		}
		return EntriesWorkbook(entries)
	})
}

// CreateContent adds a giveaway page block.
func (s *GiveawayService) CreateContent(ctx context.Context, in giveawaydomain.ContentInput) (*giveawaydb.Content, error) {
	in = in.Normalize()
	return withTelemetry(s, ctx, "CreateContent", in.Type, func(ctx context.Context) (*giveawaydb.Content, error) {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		content := &giveawaydb.Content{
			Type:        in.Type,
			Title:       in.Title,
			Description: in.Description,
			ImageURL:    in.ImageURL,
		}
		if err := s.repo.CreateContent(ctx, nil, content); err != nil {
			return nil, err
		}
		return content, nil
	})
}

// DeleteContent removes a giveaway page block.
func (s *GiveawayService) DeleteContent(ctx context.Context, id uuid.UUID) error {
	_, err := withTelemetry(s, ctx, "DeleteContent", id.String(), func(ctx context.Context) (struct{}, error) {
		if err := s.repo.DeleteContent(ctx, nil, id); err != nil {
			if errors.Is(err, giveawaydb.ErrNotFound) {
				return struct{}{}, ErrContentNotFound
			}
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}

// withTelemetry wraps a service operation with tracing and panic recovery.
func withTelemetry[T any](
	s *GiveawayService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				"operation", operationName,
				"identifier", identifier,
				"error", err,
			)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	return op(ctx)
}

// runInTx runs fn inside a transaction when a database handle is configured.
func runInTx(s *GiveawayService, ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
