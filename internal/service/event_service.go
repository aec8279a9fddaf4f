package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/internal/dto"
	"github.com/eventbooking/event-booking-api/internal/metrics"
	"github.com/eventbooking/event-booking-api/internal/repository"
)

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
	}
}

// ListEvents lists events with search, sorting and pagination.
// The pipeline runs in memory over the full non-deleted set: filter,
// stable sort, count, then slice the requested page.
func (s *eventService) ListEvents(ctx context.Context, query *dto.ListEventsQuery) (*dto.EventPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterEvents(events, query.SearchTerm)
	sortEvents(filtered, query.OrderField(), query.Descending())

	totalCount := len(filtered)
	page := paginate(filtered, query.PageNumber, query.PageSize)

	metrics.ListDuration.Record(ctx, time.Since(start).Seconds())

	return &dto.EventPage{
		Events:     page,
		PageNumber: query.PageNumber,
		PageSize:   query.PageSize,
		TotalCount: totalCount,
	}, nil
}

// filterEvents keeps events whose title, description or venue name
// contains the trimmed search term, case-insensitively
func filterEvents(events []*domain.Event, searchTerm string) []*domain.Event {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return events
	}

	var filtered []*domain.Event
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.VenueName), term) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// sortEvents sorts in place. The sort is stable, ties keep fetch order.
func sortEvents(events []*domain.Event, orderField string, descending bool) {
	key := func(e *domain.Event) time.Time {
		if orderField == dto.OrderByCreatedAt {
			return e.CreatedAt
		}
		return e.StartDate
	}

	sort.SliceStable(events, func(i, j int) bool {
		if descending {
			return key(events[j]).Before(key(events[i]))
		}
		return key(events[i]).Before(key(events[j]))
	})
}

// paginate slices out the requested page. Out-of-range pages yield an
// empty slice, not an error. The page bound is checked by division so a
// huge page number cannot overflow the start offset.
func paginate(events []*domain.Event, pageNumber, pageSize int) []*domain.Event {
	lastPage := (len(events) + pageSize - 1) / pageSize
	if pageNumber > lastPage {
		return []*domain.Event{}
	}
	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}

// GetEventByID retrieves an event by ID
func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// CreateEvent creates a new event. Nothing is persisted unless every
// field rule passes.
func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      req.StartDate.UTC(),
		EndDate:        req.EndDate.UTC(),
		VenueName:      req.VenueName,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Price:          req.Price,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      req.CreatedBy,
	}

	if err := s.eventRepo.Insert(ctx, event); err != nil {
		return nil, err
	}

	metrics.EventsCreated.Inc(ctx)
	return event, nil
}

// UpdateEvent overwrites every mutable field of an existing event.
// ID, CreatedAt and CreatedBy never change.
func (s *eventService) UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	event.Title = req.Title
	event.Description = req.Description
	event.StartDate = req.StartDate.UTC()
	event.EndDate = req.EndDate.UTC()
	event.VenueName = req.VenueName
	event.TotalSeats = req.TotalSeats
	event.AvailableSeats = req.AvailableSeats
	event.Price = req.Price

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	metrics.EventsUpdated.Inc(ctx)
	return event, nil
}

// DeleteEvent soft deletes an event. The first delete returns true,
// any repeat returns false because deleted events are invisible.
func (s *eventService) DeleteEvent(ctx context.Context, id string) (bool, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if event == nil {
		return false, nil
	}

	if err := s.eventRepo.SoftDelete(ctx, id); err != nil {
		return false, err
	}

	metrics.EventsDeleted.Inc(ctx)
	return true, nil
}

// AdjustSeats atomically changes available seats by delta. Atomicity is
// the store's conditional write, there is no in-process locking here.
func (s *eventService) AdjustSeats(ctx context.Context, id string, delta int) (bool, error) {
	ok, err := s.eventRepo.AdjustSeats(ctx, id, delta)
	if err != nil {
		return false, err
	}
	if ok {
		metrics.SeatAdjustments.Inc(ctx)
	} else {
		metrics.SeatAdjustmentsDenied.Inc(ctx)
	}
	return ok, nil
}
