package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	dapr "github.com/dapr/go-sdk/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/apperror"
)

// StateClient is the part of dapr.Client the repository relies on.
type StateClient interface {
	SaveState(ctx context.Context, storeName, key string, data []byte, meta map[string]string, so ...dapr.StateOption) error
	GetState(ctx context.Context, storeName, key string, meta map[string]string) (*dapr.StateItem, error)
	GetBulkState(ctx context.Context, storeName string, keys []string, meta map[string]string, parallelism int32) ([]*dapr.BulkStateItem, error)
	DeleteState(ctx context.Context, storeName, key string, meta map[string]string) error
}

const bulkParallelism = 10

// DaprRepository keeps each record under "<kind>||<key>" in a Dapr state
// store. State stores have no scan, so an index entry "<kind>||index" lists
// the keys in write order.
type DaprRepository[T Record] struct {
	client    StateClient
	storeName string
	kind      string
	tracer    trace.Tracer

	// index read-modify-write
	mu sync.Mutex
}

func NewDaprRepository[T Record](client StateClient, storeName, kind string) *DaprRepository[T] {
	return &DaprRepository[T]{
		client:    client,
		storeName: storeName,
		kind:      kind,
		tracer:    otel.Tracer("dapr.repository"),
	}
}

func (r *DaprRepository[T]) stateKey(key string) string {
	return r.kind + "||" + key
}

func (r *DaprRepository[T]) indexKey() string {
	return r.kind + "||index"
}

func (r *DaprRepository[T]) Create(ctx context.Context, record T) error {
	ctx, span := r.tracer.Start(ctx, r.kind+".repository.create",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("record.key", record.StorageKey()),
			attribute.String("operation", "database.write"),
			attribute.String("dapr.store", r.storeName),
		))
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal %s: %w", r.kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Index first: List skips indexed keys with no state, so a failed save
	// never leaves a record that List cannot see.
	keys, err := r.readIndex(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := r.writeIndex(ctx, append(without(keys, record.StorageKey()), record.StorageKey())); err != nil {
		span.RecordError(err)
		return err
	}

	if err := r.client.SaveState(ctx, r.storeName, r.stateKey(record.StorageKey()), data, nil); err != nil {
		err = fmt.Errorf("failed to save %s to dapr state store: %w", r.kind, err)
		if restoreErr := r.writeIndex(ctx, keys); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return nil
}

func (r *DaprRepository[T]) Get(ctx context.Context, key string) (T, error) {
	ctx, span := r.tracer.Start(ctx, r.kind+".repository.get",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("record.key", key),
			attribute.String("operation", "database.read"),
			attribute.String("dapr.store", r.storeName),
		))
	defer span.End()

	var record T
	item, err := r.client.GetState(ctx, r.storeName, r.stateKey(key), nil)
	if err != nil {
		span.RecordError(err)
		return record, fmt.Errorf("failed to get %s from dapr state store: %w", r.kind, err)
	}
	if item == nil || len(item.Value) == 0 {
		span.SetAttributes(attribute.Bool("found", false))
		return record, apperror.NotFound(r.kind, key)
	}

	if err := json.Unmarshal(item.Value, &record); err != nil {
		span.RecordError(err)
		return record, fmt.Errorf("failed to unmarshal %s: %w", r.kind, err)
	}

	span.SetAttributes(attribute.Bool("found", true))
	return record, nil
}

func (r *DaprRepository[T]) List(ctx context.Context) ([]T, error) {
	ctx, span := r.tracer.Start(ctx, r.kind+".repository.list",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("operation", "database.read"),
			attribute.String("dapr.store", r.storeName),
		))
	defer span.End()

	r.mu.Lock()
	keys, err := r.readIndex(ctx)
	r.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(keys) == 0 {
		return []T{}, nil
	}

	position := make(map[string]uint64, len(keys))
	stateKeys := make([]string, len(keys))
	for i, k := range keys {
		stateKeys[i] = r.stateKey(k)
		position[stateKeys[i]] = uint64(i)
	}

	items, err := r.client.GetBulkState(ctx, r.storeName, stateKeys, nil, bulkParallelism)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to bulk get %s from dapr state store: %w", r.kind, err)
	}

	ranks := make([]ranked[T], 0, len(items))
	for _, item := range items {
		if item.Error != "" {
			err := fmt.Errorf("dapr state store returned error for %s: %s", item.Key, item.Error)
			span.RecordError(err)
			return nil, err
		}
		if len(item.Value) == 0 {
			continue
		}
		var record T
		if err := json.Unmarshal(item.Value, &record); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to unmarshal %s: %w", r.kind, err)
		}
		ranks = append(ranks, ranked[T]{record: record, seq: position[item.Key]})
	}

	records := newestFirst(ranks)
	span.SetAttributes(
		attribute.Int("record.count", len(records)),
		attribute.Bool("success", true),
	)
	return records, nil
}

func (r *DaprRepository[T]) Delete(ctx context.Context, key string) error {
	ctx, span := r.tracer.Start(ctx, r.kind+".repository.delete",
		trace.WithAttributes(
			attribute.String("record.kind", r.kind),
			attribute.String("record.key", key),
			attribute.String("operation", "database.write"),
			attribute.String("dapr.store", r.storeName),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.DeleteState(ctx, r.storeName, r.stateKey(key), nil); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete %s from dapr state store: %w", r.kind, err)
	}

	keys, err := r.readIndex(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	remaining := without(keys, key)
	if len(remaining) != len(keys) {
		if err := r.writeIndex(ctx, remaining); err != nil {
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(
		attribute.Bool("key.existed", len(remaining) != len(keys)),
		attribute.Bool("success", true),
	)
	return nil
}

func (r *DaprRepository[T]) readIndex(ctx context.Context) ([]string, error) {
	item, err := r.client.GetState(ctx, r.storeName, r.indexKey(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s index: %w", r.kind, err)
	}
	if item == nil || len(item.Value) == 0 {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(item.Value, &keys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s index: %w", r.kind, err)
	}
	return keys, nil
}

func (r *DaprRepository[T]) writeIndex(ctx context.Context, keys []string) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to marshal %s index: %w", r.kind, err)
	}
	if err := r.client.SaveState(ctx, r.storeName, r.indexKey(), data, nil); err != nil {
		return fmt.Errorf("failed to save %s index: %w", r.kind, err)
	}
	return nil
}

func without(keys []string, key string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
