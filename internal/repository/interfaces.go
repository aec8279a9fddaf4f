package repository

import (
	"context"

	"github.com/eventbooking/event-booking-api/internal/domain"
)

// EventRepository defines the interface for event data access.
// Soft-deleted events are invisible to every method except AdjustSeats,
// which excludes them through its own condition.
type EventRepository interface {
	// GetAll retrieves all non-deleted events in insertion order
	GetAll(ctx context.Context) ([]*domain.Event, error)
	// GetByID retrieves an event by ID, nil when absent or deleted
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// Insert inserts a new event
	Insert(ctx context.Context, event *domain.Event) error
	// Update updates an existing event
	Update(ctx context.Context, event *domain.Event) error
	// SoftDelete marks an event as deleted
	SoftDelete(ctx context.Context, id string) error
	// AdjustSeats atomically changes available seats by delta.
	// Returns false when the row is missing, deleted, or the result
	// would leave [0, total_seats].
	AdjustSeats(ctx context.Context, id string, delta int) (bool, error)
}
