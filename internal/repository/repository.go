package repository

import (
	"context"
	"sort"
	"time"

	"intake-api/internal/models"
)

// Record is anything the store can key and order.
type Record interface {
	StorageKey() string
	CreatedTime() time.Time
}

// Clone returns a copy of record when its type can copy itself. Repositories
// and caches hand out copies so callers never share stored records.
func Clone[T Record](record T) T {
	if c, ok := any(record).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return record
}

func CloneAll[T Record](records []T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = Clone(r)
	}
	return out
}

// Repository is a keyed collection of one record kind. Create inserts or
// overwrites by StorageKey, List is newest-first, Delete is idempotent.
type Repository[T Record] interface {
	Create(ctx context.Context, record T) error
	Get(ctx context.Context, key string) (T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, key string) error
}

// Store owns one repository per record kind.
type Store struct {
	ContactMessages         Repository[*models.ContactMessage]
	CourseApplications      Repository[*models.CourseApplication]
	DemoApplications        Repository[*models.DemoApplication]
	NewsletterSubscriptions Repository[*models.NewsletterSubscription]
	EventRegistrations      Repository[*models.EventRegistration]
}

func NewInMemoryStore() *Store {
	return &Store{
		ContactMessages:         NewInMemoryRepository[*models.ContactMessage](models.KindContactMessage),
		CourseApplications:      NewInMemoryRepository[*models.CourseApplication](models.KindCourseApplication),
		DemoApplications:        NewInMemoryRepository[*models.DemoApplication](models.KindDemoApplication),
		NewsletterSubscriptions: NewInMemoryRepository[*models.NewsletterSubscription](models.KindNewsletterSubscription),
		EventRegistrations:      NewInMemoryRepository[*models.EventRegistration](models.KindEventRegistration),
	}
}

func NewDaprStore(client StateClient, storeName string) *Store {
	return &Store{
		ContactMessages:         NewDaprRepository[*models.ContactMessage](client, storeName, models.KindContactMessage),
		CourseApplications:      NewDaprRepository[*models.CourseApplication](client, storeName, models.KindCourseApplication),
		DemoApplications:        NewDaprRepository[*models.DemoApplication](client, storeName, models.KindDemoApplication),
		NewsletterSubscriptions: NewDaprRepository[*models.NewsletterSubscription](client, storeName, models.KindNewsletterSubscription),
		EventRegistrations:      NewDaprRepository[*models.EventRegistration](client, storeName, models.KindEventRegistration),
	}
}

type ranked[T Record] struct {
	record T
	seq    uint64
}

// newestFirst orders by CreatedTime descending; equal timestamps fall back
// to the later write first.
func newestFirst[T Record](items []ranked[T]) []T {
	sort.Slice(items, func(i, j int) bool {
		ti, tj := items[i].record.CreatedTime(), items[j].record.CreatedTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].seq > items[j].seq
	})
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.record
	}
	return out
}
