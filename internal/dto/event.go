package dto

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/eventbooking/event-booking-api/internal/domain"
)

func init() {
	// Price is money, serialize as a JSON number rather than a quoted string
	decimal.MarshalJSONWithoutQuotes = true
}

// Sort fields for event listing
const (
	OrderByStartDate = "StartDate"
	OrderByCreatedAt = "CreatedAt"

	OrderAscending  = "Ascending"
	OrderDescending = "Descending"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	VenueName   string          `json:"venueName"`
	TotalSeats  int             `json:"totalSeats"`
	Price       decimal.Decimal `json:"price"`
	CreatedBy   string          `json:"-"` // Set from context
}

// Validate validates the CreateEventRequest. All violations are collected
// so the caller sees every problem at once.
func (r *CreateEventRequest) Validate() error {
	violations := validateEventFields(r.Title, r.Description, r.StartDate, r.EndDate, r.VenueName, r.TotalSeats, r.Price)
	if len(violations) > 0 {
		return domain.NewValidationError(violations)
	}
	return nil
}

// UpdateEventRequest represents the request to update an event
type UpdateEventRequest struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	VenueName      string          `json:"venueName"`
	TotalSeats     int             `json:"totalSeats"`
	AvailableSeats int             `json:"availableSeats"`
	Price          decimal.Decimal `json:"price"`
}

// Validate validates the UpdateEventRequest
func (r *UpdateEventRequest) Validate() error {
	var violations []string
	if r.ID == "" {
		violations = append(violations, "Event ID is required")
	}
	violations = append(violations, validateEventFields(r.Title, r.Description, r.StartDate, r.EndDate, r.VenueName, r.TotalSeats, r.Price)...)
	if r.AvailableSeats < 0 {
		violations = append(violations, "Available seats cannot be negative")
	}
	if r.AvailableSeats > r.TotalSeats {
		violations = append(violations, "Available seats cannot exceed total seats")
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations)
	}
	return nil
}

// validateEventFields applies the field rules shared by create and update
func validateEventFields(title, description string, startDate, endDate time.Time, venueName string, totalSeats int, price decimal.Decimal) []string {
	var violations []string

	if title == "" {
		violations = append(violations, "Title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		violations = append(violations, "Title must not exceed 200 characters")
	}
	if description == "" {
		violations = append(violations, "Description is required")
	}
	if startDate.IsZero() {
		violations = append(violations, "Start date is required")
	} else if !startDate.After(time.Now()) {
		violations = append(violations, "Start date must be in the future")
	}
	if endDate.IsZero() {
		violations = append(violations, "End date is required")
	} else if !endDate.After(startDate) {
		violations = append(violations, "End date must be after start date")
	}
	if venueName == "" {
		violations = append(violations, "Venue name is required")
	}
	if utf8.RuneCountInString(venueName) > 200 {
		violations = append(violations, "Venue name must not exceed 200 characters")
	}
	if totalSeats <= 0 {
		violations = append(violations, "Total seats must be greater than 0")
	}
	if price.IsNegative() {
		violations = append(violations, "Price must be greater than or equal to 0")
	}

	return violations
}

// ListEventsQuery represents the query parameters for listing events
type ListEventsQuery struct {
	SearchTerm     string `form:"searchTerm"`
	PageNumber     int    `form:"pageNumber,default=1"`
	PageSize       int    `form:"pageSize,default=10"`
	OrderBy        string `form:"orderBy"`
	OrderDirection string `form:"orderDirection"`
}

// Validate checks the paging bounds. Paging errors are detected before
// any data is fetched.
func (q *ListEventsQuery) Validate() error {
	if q.PageNumber < 1 {
		return domain.ErrInvalidPageNumber
	}
	if q.PageSize < 1 {
		return domain.ErrInvalidPageSize
	}
	if q.PageSize > 100 {
		return domain.ErrPageSizeExceeded
	}
	return nil
}

// OrderField returns the normalized sort field. Unknown values fall back
// to the default, they are not an error.
func (q *ListEventsQuery) OrderField() string {
	if strings.EqualFold(q.OrderBy, OrderByCreatedAt) {
		return OrderByCreatedAt
	}
	return OrderByStartDate
}

// Descending returns true when a descending sort was requested
func (q *ListEventsQuery) Descending() bool {
	return strings.EqualFold(q.OrderDirection, OrderDescending)
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	VenueName      string          `json:"venueName"`
	TotalSeats     int             `json:"totalSeats"`
	AvailableSeats int             `json:"availableSeats"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      string          `json:"createdAt"`
}

// ToEventResponse converts a domain event to response DTO
func ToEventResponse(event *domain.Event) *EventResponse {
	return &EventResponse{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		StartDate:      event.StartDate.UTC().Format("2006-01-02T15:04:05Z07:00"),
		EndDate:        event.EndDate.UTC().Format("2006-01-02T15:04:05Z07:00"),
		VenueName:      event.VenueName,
		TotalSeats:     event.TotalSeats,
		AvailableSeats: event.AvailableSeats,
		Price:          event.Price,
		CreatedAt:      event.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// PagedResponse represents a page of results
type PagedResponse struct {
	Items           []*EventResponse `json:"items"`
	PageNumber      int              `json:"pageNumber"`
	PageSize        int              `json:"pageSize"`
	TotalPages      int              `json:"totalPages"`
	TotalCount      int              `json:"totalCount"`
	HasPreviousPage bool             `json:"hasPreviousPage"`
	HasNextPage     bool             `json:"hasNextPage"`
}

// EventPage holds one page of domain events plus paging metadata
type EventPage struct {
	Events     []*domain.Event
	PageNumber int
	PageSize   int
	TotalCount int
}

// TotalPages returns the number of pages for the total count
func (p *EventPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// ToPagedResponse converts an EventPage to the wire representation
func ToPagedResponse(page *EventPage) *PagedResponse {
	items := make([]*EventResponse, len(page.Events))
	for i, event := range page.Events {
		items[i] = ToEventResponse(event)
	}

	totalPages := page.TotalPages()
	return &PagedResponse{
		Items:           items,
		PageNumber:      page.PageNumber,
		PageSize:        page.PageSize,
		TotalPages:      totalPages,
		TotalCount:      page.TotalCount,
		HasPreviousPage: page.PageNumber > 1,
		HasNextPage:     page.PageNumber < totalPages,
	}
}
