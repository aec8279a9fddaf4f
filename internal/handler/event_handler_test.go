package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/internal/dto"
	"github.com/eventbooking/event-booking-api/pkg/middleware"
)

// MockEventService is a mock implementation of EventService
type MockEventService struct {
	events map[string]*domain.Event
	order  []string
}

func NewMockEventService() *MockEventService {
	return &MockEventService{
		events: make(map[string]*domain.Event),
	}
}

// AddEvent adds an event to the mock service
func (m *MockEventService) AddEvent(event *domain.Event) {
	m.events[event.ID] = event
	m.order = append(m.order, event.ID)
}

func (m *MockEventService) ListEvents(ctx context.Context, query *dto.ListEventsQuery) (*dto.EventPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	var events []*domain.Event
	for _, id := range m.order {
		events = append(events, m.events[id])
	}
	return &dto.EventPage{
		Events:     events,
		PageNumber: query.PageNumber,
		PageSize:   query.PageSize,
		TotalCount: len(events),
	}, nil
}

func (m *MockEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	event := &domain.Event{
		ID:             "event-123",
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
	m.AddEvent(event)
	return event, nil
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	event.Title = req.Title
	event.Description = req.Description
	return event, nil
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if _, ok := m.events[id]; !ok {
		return false, nil
	}
	delete(m.events, id)
	return true, nil
}

func (m *MockEventService) AdjustSeats(ctx context.Context, id string, delta int) (bool, error) {
	event, ok := m.events[id]
	if !ok {
		return false, nil
	}
	next := event.AvailableSeats + delta
	if next < 0 || next > event.TotalSeats {
		return false, nil
	}
	event.AvailableSeats = next
	return true, nil
}

func setupRouter(svc *MockEventService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ActorIdentity("2dff81ac-7eb5-40d6-b661-1b8734295043"))

	h := NewEventHandler(svc)
	events := router.Group("/api/events")
	{
		events.GET("", h.List)
		events.GET("/:id", h.GetByID)
		events.POST("", h.Create)
		events.PUT("/:id", h.Update)
		events.DELETE("/:id", h.Delete)
	}
	return router
}

func sampleEvent(id, title string) *domain.Event {
	now := time.Now().UTC()
	return &domain.Event{
		ID:             id,
		Title:          title,
		Description:    "description",
		StartDate:      now.Add(48 * time.Hour),
		EndDate:        now.Add(72 * time.Hour),
		VenueName:      "Main Hall",
		TotalSeats:     100,
		AvailableSeats: 100,
		Price:          decimal.RequireFromString("49.99"),
		CreatedAt:      now,
		CreatedBy:      "user-1",
	}
}

func TestListEventsResponseShape(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(sampleEvent("e1", "Tech Conference"))
	svc.AddEvent(sampleEvent("e2", "Music Festival"))
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, key := range []string{"items", "pageNumber", "pageSize", "totalPages", "totalCount", "hasPreviousPage", "hasNextPage"} {
		if _, ok := resp[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}

	var body dto.PagedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.TotalCount != 2 || len(body.Items) != 2 {
		t.Errorf("expected 2 items, got count=%d len=%d", body.TotalCount, len(body.Items))
	}
	if body.PageNumber != 1 || body.PageSize != 10 {
		t.Errorf("expected default paging 1/10, got %d/%d", body.PageNumber, body.PageSize)
	}
	if body.HasPreviousPage || body.HasNextPage {
		t.Error("single page must have no previous or next")
	}
}

func TestListEventsBadPaging(t *testing.T) {
	router := setupRouter(NewMockEventService())

	tests := []struct {
		name    string
		url     string
		wantMsg string
	}{
		{"zero page number", "/api/events?pageNumber=0", "Page number must be greater than 0"},
		{"zero page size", "/api/events?pageSize=0", "Page size must be greater than 0"},
		{"oversized page", "/api/events?pageSize=101", "Page size cannot exceed 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if w.Body.String() != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, w.Body.String())
			}
		})
	}
}

func TestGetEventByID(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(sampleEvent("e1", "Tech Conference"))
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/e1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body dto.EventResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.ID != "e1" || body.Title != "Tech Conference" {
		t.Errorf("unexpected body: %+v", body)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/events/missing", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing event, got %d", w.Code)
	}
}

func TestCreateEvent(t *testing.T) {
	router := setupRouter(NewMockEventService())

	payload := map[string]interface{}{
		"title":       "Launch Party",
		"description": "Product launch",
		"startDate":   time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"endDate":     time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"venueName":   "Main Hall",
		"totalSeats":  100,
		"price":       25.50,
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/events/event-123" {
		t.Errorf("unexpected Location header: %q", loc)
	}

	var resp dto.EventResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.AvailableSeats != 100 {
		t.Errorf("expected available seats 100, got %d", resp.AvailableSeats)
	}
}

func TestCreateEventValidationFailure(t *testing.T) {
	router := setupRouter(NewMockEventService())

	payload := map[string]interface{}{
		"title":       "",
		"description": "Product launch",
		"startDate":   time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339),
		"endDate":     time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"venueName":   "Main Hall",
		"totalSeats":  100,
		"price":       25.50,
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected plain text error, got %q", ct)
	}
}

func TestUpdateEventIDMismatch(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(sampleEvent("e1", "Tech Conference"))
	router := setupRouter(svc)

	update := dto.UpdateEventRequest{
		ID:             "other-id",
		Title:          "Renamed",
		Description:    "changed",
		StartDate:      time.Now().Add(48 * time.Hour),
		EndDate:        time.Now().Add(72 * time.Hour),
		VenueName:      "Main Hall",
		TotalSeats:     100,
		AvailableSeats: 100,
		Price:          decimal.RequireFromString("25.50"),
	}
	body, _ := json.Marshal(update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/events/e1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w.Body.String() != "ID in URL does not match ID in request body" {
		t.Errorf("unexpected message: %q", w.Body.String())
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	router := setupRouter(NewMockEventService())

	update := dto.UpdateEventRequest{
		ID:             "missing",
		Title:          "Renamed",
		Description:    "changed",
		StartDate:      time.Now().Add(48 * time.Hour),
		EndDate:        time.Now().Add(72 * time.Hour),
		VenueName:      "Main Hall",
		TotalSeats:     100,
		AvailableSeats: 100,
		Price:          decimal.RequireFromString("25.50"),
	}
	body, _ := json.Marshal(update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/events/missing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(sampleEvent("e1", "Tech Conference"))
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/events/e1", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// Replaying the delete must see 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/events/e1", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", w.Code)
	}
}
