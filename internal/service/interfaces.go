package service

import (
	"context"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/internal/dto"
)

// EventService defines the interface for event business logic
type EventService interface {
	// ListEvents lists events with search, sorting and pagination
	ListEvents(ctx context.Context, query *dto.ListEventsQuery) (*dto.EventPage, error)
	// GetEventByID retrieves an event by ID
	GetEventByID(ctx context.Context, id string) (*domain.Event, error)
	// CreateEvent creates a new event
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)
	// UpdateEvent updates an event
	UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error)
	// DeleteEvent soft deletes an event. Returns false when the event
	// is absent or already deleted.
	DeleteEvent(ctx context.Context, id string) (bool, error)
	// AdjustSeats atomically changes available seats by delta
	AdjustSeats(ctx context.Context, id string, delta int) (bool, error)
}
