package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/pkg/redis"
)

// stubEventRepository backs the cache decorator tests
type stubEventRepository struct {
	events      map[string]*domain.Event
	getAllCalls int
	getByIDErr  error
}

func newStubEventRepository() *stubEventRepository {
	return &stubEventRepository{events: make(map[string]*domain.Event)}
}

func (s *stubEventRepository) GetAll(ctx context.Context) ([]*domain.Event, error) {
	s.getAllCalls++
	var events []*domain.Event
	for _, e := range s.events {
		if !e.IsDeleted {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *stubEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if s.getByIDErr != nil {
		return nil, s.getByIDErr
	}
	event, ok := s.events[id]
	if !ok || event.IsDeleted {
		return nil, nil
	}
	return event, nil
}

func (s *stubEventRepository) Insert(ctx context.Context, event *domain.Event) error {
	s.events[event.ID] = event
	return nil
}

func (s *stubEventRepository) Update(ctx context.Context, event *domain.Event) error {
	s.events[event.ID] = event
	return nil
}

func (s *stubEventRepository) SoftDelete(ctx context.Context, id string) error {
	if event, ok := s.events[id]; ok {
		event.IsDeleted = true
	}
	return nil
}

func (s *stubEventRepository) AdjustSeats(ctx context.Context, id string, delta int) (bool, error) {
	event, ok := s.events[id]
	if !ok || event.IsDeleted {
		return false, nil
	}
	next := event.AvailableSeats + delta
	if next < 0 || next > event.TotalSeats {
		return false, nil
	}
	event.AvailableSeats = next
	return true, nil
}

func setupCachedRepository() (*CachedEventRepository, *stubEventRepository, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	stub := newStubEventRepository()
	cached := NewCachedEventRepository(stub, redis.NewFromClient(client))
	return cached, stub, mock
}

func cachedTestEvent(id string) *domain.Event {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Event{
		ID:             id,
		Title:          "Tech Conference",
		Description:    "AI and cloud computing",
		StartDate:      now.Add(48 * time.Hour),
		EndDate:        now.Add(72 * time.Hour),
		VenueName:      "Convention Center",
		TotalSeats:     100,
		AvailableSeats: 100,
		Price:          decimal.RequireFromString("299.99"),
		CreatedAt:      now,
		CreatedBy:      "user-1",
	}
}

func TestCachedGetByIDHit(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	event := cachedTestEvent("e1")
	data, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectGet(eventDetailKeyPrefix + "e1").SetVal(string(data))

	got, err := cached.GetByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, event.Title, got.Title)
	assert.True(t, event.Price.Equal(got.Price))

	// A cache hit never touches the database
	assert.Nil(t, stub.getByIDErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedGetByIDMissPopulatesCache(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	event := cachedTestEvent("e1")
	stub.events["e1"] = event
	data, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectGet(eventDetailKeyPrefix + "e1").RedisNil()
	mock.ExpectSet(eventDetailKeyPrefix+"e1", string(data), eventCacheTTL).SetVal("OK")

	got, err := cached.GetByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedGetByIDMissAbsentEvent(t *testing.T) {
	cached, _, mock := setupCachedRepository()
	defer mock.ClearExpect()

	mock.ExpectGet(eventDetailKeyPrefix + "missing").RedisNil()

	got, err := cached.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedGetAllMissPopulatesCache(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	event := cachedTestEvent("e1")
	stub.events["e1"] = event
	data, err := json.Marshal([]*domain.Event{event})
	require.NoError(t, err)

	mock.ExpectGet(eventListKey).RedisNil()
	mock.ExpectSet(eventListKey, string(data), eventCacheTTL).SetVal("OK")

	got, err := cached.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, stub.getAllCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedGetAllHitSkipsDatabase(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	data, err := json.Marshal([]*domain.Event{cachedTestEvent("e1")})
	require.NoError(t, err)
	mock.ExpectGet(eventListKey).SetVal(string(data))

	got, err := cached.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 0, stub.getAllCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedInsertInvalidatesList(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	mock.ExpectDel(eventListKey).SetVal(1)

	event := cachedTestEvent("e1")
	err := cached.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.Contains(t, stub.events, "e1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedUpdateInvalidatesDetailAndList(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	event := cachedTestEvent("e1")
	stub.events["e1"] = event

	mock.ExpectDel(eventDetailKeyPrefix+"e1", eventListKey).SetVal(2)

	event.Title = "Renamed"
	err := cached.Update(context.Background(), event)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSoftDeleteInvalidates(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	stub.events["e1"] = cachedTestEvent("e1")
	mock.ExpectDel(eventDetailKeyPrefix+"e1", eventListKey).SetVal(2)

	err := cached.SoftDelete(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, stub.events["e1"].IsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedAdjustSeats(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	stub.events["e1"] = cachedTestEvent("e1")
	mock.ExpectDel(eventDetailKeyPrefix+"e1", eventListKey).SetVal(2)

	ok, err := cached.AdjustSeats(context.Background(), "e1", -5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 95, stub.events["e1"].AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedAdjustSeatsDeniedKeepsCache(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	event := cachedTestEvent("e1")
	event.AvailableSeats = 0
	stub.events["e1"] = event

	// No Del expected, the write did not land
	ok, err := cached.AdjustSeats(context.Background(), "e1", -1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedGetByIDPropagatesError(t *testing.T) {
	cached, stub, mock := setupCachedRepository()
	defer mock.ClearExpect()

	stub.getByIDErr = errors.New("connection reset")
	mock.ExpectGet(eventDetailKeyPrefix + "e1").RedisNil()

	_, err := cached.GetByID(context.Background(), "e1")
	assert.Error(t, err)
}
