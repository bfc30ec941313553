package repository

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/apperror"
)

type InMemoryRepository[T Record] struct {
	mu      sync.RWMutex
	kind    string
	records map[string]ranked[T]
	seq     uint64
	tracer  trace.Tracer
}

func NewInMemoryRepository[T Record](kind string) *InMemoryRepository[T] {
	return &InMemoryRepository[T]{
		kind:    kind,
		records: make(map[string]ranked[T]),
		tracer:  otel.Tracer("intake-repository"),
	}
}

func (r *InMemoryRepository[T]) Create(ctx context.Context, record T) error {
	_, span := r.tracer.Start(ctx, r.kind+".repository.create",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("record.key", record.StorageKey()),
			attribute.String("operation", "database.write"),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, overwritten := r.records[record.StorageKey()]
	r.seq++
	r.records[record.StorageKey()] = ranked[T]{record: Clone(record), seq: r.seq}

	span.SetAttributes(
		attribute.Bool("record.overwritten", overwritten),
		attribute.Bool("success", true),
	)
	return nil
}

func (r *InMemoryRepository[T]) Get(ctx context.Context, key string) (T, error) {
	_, span := r.tracer.Start(ctx, r.kind+".repository.get",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("record.key", key),
			attribute.String("operation", "database.read"),
		))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.records[key]
	if !exists {
		span.SetAttributes(attribute.Bool("found", false))
		var zero T
		return zero, apperror.NotFound(r.kind, key)
	}

	span.SetAttributes(attribute.Bool("found", true))
	return Clone(item.record), nil
}

func (r *InMemoryRepository[T]) List(ctx context.Context) ([]T, error) {
	_, span := r.tracer.Start(ctx, r.kind+".repository.list",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("operation", "database.read"),
		))
	defer span.End()

	r.mu.RLock()
	items := make([]ranked[T], 0, len(r.records))
	for _, item := range r.records {
		items = append(items, item)
	}
	r.mu.RUnlock()

	records := CloneAll(newestFirst(items))
	span.SetAttributes(
		attribute.Int("record.count", len(records)),
		attribute.Bool("success", true),
	)
	return records, nil
}

func (r *InMemoryRepository[T]) Delete(ctx context.Context, key string) error {
	_, span := r.tracer.Start(ctx, r.kind+".repository.delete",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("record.key", key),
			attribute.String("operation", "database.write"),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.records[key]
	delete(r.records, key)

	span.SetAttributes(
		attribute.Bool("key.existed", existed),
		attribute.Bool("success", true),
	)
	return nil
}
