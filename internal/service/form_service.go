package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/cache"
	"intake-api/internal/logging"
	"intake-api/internal/repository"
	"intake-api/internal/validation"
)

// Clock supplies createdAt timestamps.
type Clock func() time.Time

// InvalidDataMessage is the envelope error for a rejected form.
const InvalidDataMessage = "Invalid data"

// FormService accepts one kind of form: it validates a request, turns it
// into a record and stores it. Lists are served newest-first, from a cached
// snapshot when a cache is configured.
type FormService[Req any, Rec repository.Record] struct {
	kind           string
	repo           repository.Repository[Rec]
	cache          cache.Cache[[]Rec]
	listTTL        time.Duration
	build          func(*Req, time.Time) Rec
	now            Clock
	invalidMessage string
	logger         *logging.ContextLogger
	tracer         trace.Tracer

	// generation counts invalidations. A list read that started before an
	// invalidation must not be cached after it.
	cacheMu    sync.Mutex
	generation uint64
}

type FormConfig[Req any, Rec repository.Record] struct {
	Kind  string
	Repo  repository.Repository[Rec]
	Build func(*Req, time.Time) Rec
	// Cache and ListTTL are optional; a nil cache or zero TTL reads through.
	Cache          cache.Cache[[]Rec]
	ListTTL        time.Duration
	Clock          Clock
	InvalidMessage string
	Logger         *logging.ContextLogger
}

func NewFormService[Req any, Rec repository.Record](cfg FormConfig[Req, Rec]) *FormService[Req, Rec] {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	invalid := cfg.InvalidMessage
	if invalid == "" {
		invalid = InvalidDataMessage
	}
	return &FormService[Req, Rec]{
		kind:           cfg.Kind,
		repo:           cfg.Repo,
		cache:          cfg.Cache,
		listTTL:        cfg.ListTTL,
		build:          cfg.Build,
		now:            now,
		invalidMessage: invalid,
		logger:         cfg.Logger,
		tracer:         otel.Tracer("intake-service"),
	}
}

func (s *FormService[Req, Rec]) Kind() string {
	return s.kind
}

// Submit validates req and stores the resulting record. Invalid input comes
// back as an apperror validation error and leaves the store untouched.
func (s *FormService[Req, Rec]) Submit(ctx context.Context, req *Req) (Rec, error) {
	ctx, span := s.tracer.Start(ctx, s.kind+".service.submit",
		trace.WithAttributes(attribute.String("record.kind", s.kind)))
	defer span.End()

	var zero Rec
	if err := s.check(ctx, req); err != nil {
		span.SetAttributes(attribute.Bool("validation.failed", true))
		return zero, err
	}

	record, err := s.persist(ctx, s.build(req, s.now()))
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	span.SetAttributes(
		attribute.String("record.key", record.StorageKey()),
		attribute.Bool("success", true),
	)
	return record, nil
}

func (s *FormService[Req, Rec]) check(ctx context.Context, req *Req) error {
	errs := validation.Struct(req)
	if errs == nil {
		return nil
	}
	s.logger.WarnWithTracing(ctx, "Rejected invalid submission", logrus.Fields{
		"kind":   s.kind,
		"fields": errs.Messages(),
	})
	return errs.AppError(s.invalidMessage)
}

func (s *FormService[Req, Rec]) persist(ctx context.Context, record Rec) (Rec, error) {
	if err := s.repo.Create(ctx, record); err != nil {
		var zero Rec
		return zero, fmt.Errorf("failed to store %s: %w", s.kind, err)
	}
	s.invalidate(ctx)

	s.logger.InfoWithTracing(ctx, "Stored submission", logrus.Fields{
		"kind":       s.kind,
		"record_key": record.StorageKey(),
	})
	return record, nil
}

// List returns every record of this kind, newest first.
func (s *FormService[Req, Rec]) List(ctx context.Context) ([]Rec, error) {
	ctx, span := s.tracer.Start(ctx, s.kind+".service.list",
		trace.WithAttributes(attribute.String("record.kind", s.kind)))
	defer span.End()

	if s.cachingEnabled() {
		if records, err := s.cache.Get(ctx, cache.ListKey(s.kind)); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return repository.CloneAll(records), nil
		}
	}

	generation := s.currentGeneration()
	records, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	if records == nil {
		records = []Rec{}
	}

	if s.cachingEnabled() {
		s.store(ctx, generation, records)
	}

	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.Int("record.count", len(records)),
	)
	return repository.CloneAll(records), nil
}

func (s *FormService[Req, Rec]) currentGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// store caches records unless a write invalidated the list after the read
// that produced them began.
func (s *FormService[Req, Rec]) store(ctx context.Context, generation uint64, records []Rec) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if generation != s.generation {
		s.logger.DebugWithTracing(ctx, "Skipped caching stale list", logrus.Fields{
			"kind": s.kind,
		})
		return
	}
	if err := s.cache.Set(ctx, cache.ListKey(s.kind), records, s.listTTL); err != nil {
		s.logger.WarnWithTracing(ctx, "Failed to cache list", logrus.Fields{
			"kind":  s.kind,
			"error": err.Error(),
		})
	}
}

func (s *FormService[Req, Rec]) cachingEnabled() bool {
	return s.cache != nil && s.listTTL > 0
}

func (s *FormService[Req, Rec]) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generation++
	if err := s.cache.Delete(ctx, cache.ListKey(s.kind)); err != nil {
		s.logger.WarnWithTracing(ctx, "Failed to invalidate list cache", logrus.Fields{
			"kind":  s.kind,
			"error": err.Error(),
		})
	}
}
