package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/pkg/redis"
)

const (
	// Cache key prefixes
	eventDetailKeyPrefix = "event:detail:"
	eventListKey         = "event:list:all"

	// Default TTL for event caches
	eventCacheTTL = 5 * time.Minute
)

// CachedEventRepository wraps EventRepository with Redis caching.
// Reads go through the cache, writes invalidate it. Cache failures are
// ignored, the database stays the source of truth.
type CachedEventRepository struct {
	repo  EventRepository
	cache *redis.Client
}

// NewCachedEventRepository creates a new CachedEventRepository
func NewCachedEventRepository(repo EventRepository, cache *redis.Client) *CachedEventRepository {
	return &CachedEventRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetAll retrieves all non-deleted events with caching
func (r *CachedEventRepository) GetAll(ctx context.Context) ([]*domain.Event, error) {
	cached, err := r.cache.Get(ctx, eventListKey).Result()
	if err == nil && cached != "" {
		var events []*domain.Event
		if err := json.Unmarshal([]byte(cached), &events); err == nil {
			return events, nil
		}
	}

	// Cache miss - get from database
	events, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(events); err == nil {
		r.cache.Set(ctx, eventListKey, string(data), eventCacheTTL)
	}

	return events, nil
}

// GetByID retrieves an event by ID with caching
func (r *CachedEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	cacheKey := eventDetailKeyPrefix + id
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var event domain.Event
		if err := json.Unmarshal([]byte(cached), &event); err == nil {
			return &event, nil
		}
	}

	// Cache miss - get from database
	event, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	if data, err := json.Marshal(event); err == nil {
		r.cache.Set(ctx, cacheKey, string(data), eventCacheTTL)
	}

	return event, nil
}

// Insert inserts a new event and invalidates the list cache
func (r *CachedEventRepository) Insert(ctx context.Context, event *domain.Event) error {
	if err := r.repo.Insert(ctx, event); err != nil {
		return err
	}
	r.cache.Del(ctx, eventListKey)
	return nil
}

// Update updates an event and invalidates its caches
func (r *CachedEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := r.repo.Update(ctx, event); err != nil {
		return err
	}
	r.cache.Del(ctx, eventDetailKeyPrefix+event.ID, eventListKey)
	return nil
}

// SoftDelete marks an event as deleted and invalidates its caches
func (r *CachedEventRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	r.cache.Del(ctx, eventDetailKeyPrefix+id, eventListKey)
	return nil
}

// AdjustSeats adjusts seats and invalidates caches when the write landed
func (r *CachedEventRepository) AdjustSeats(ctx context.Context, id string, delta int) (bool, error) {
	ok, err := r.repo.AdjustSeats(ctx, id, delta)
	if err != nil {
		return false, err
	}
	if ok {
		r.cache.Del(ctx, eventDetailKeyPrefix+id, eventListKey)
	}
	return ok, nil
}
