package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventbooking/event-booking-api/internal/domain"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// eventColumns defines the columns to select for events
const eventColumns = `id, title,
	COALESCE(description, '') as description,
	start_date, end_date,
	COALESCE(venue_name, '') as venue_name,
	total_seats, available_seats, price, created_at, created_by, is_deleted`

// scanEvent scans a row into an Event struct
func (r *PostgresEventRepository) scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.VenueName,
		&event.TotalSeats,
		&event.AvailableSeats,
		&event.Price,
		&event.CreatedAt,
		&event.CreatedBy,
		&event.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// scanEvents scans multiple rows into Event structs
func (r *PostgresEventRepository) scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.StartDate,
			&event.EndDate,
			&event.VenueName,
			&event.TotalSeats,
			&event.AvailableSeats,
			&event.Price,
			&event.CreatedAt,
			&event.CreatedBy,
			&event.IsDeleted,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// GetAll retrieves all non-deleted events. Ordering by created_at then id
// gives the in-memory sort a deterministic base for ties.
func (r *PostgresEventRepository) GetAll(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE is_deleted = FALSE
		ORDER BY created_at, id
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1 AND is_deleted = FALSE`, eventColumns)
	event, err := r.scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Insert inserts a new event
func (r *PostgresEventRepository) Insert(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			id, title, description, start_date, end_date, venue_name,
			total_seats, available_seats, price, created_at, created_by, is_deleted
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.VenueName,
		event.TotalSeats,
		event.AvailableSeats,
		event.Price,
		event.CreatedAt,
		event.CreatedBy,
		event.IsDeleted,
	)
	return err
}

// Update updates an existing event
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events SET
			title = $2, description = $3, start_date = $4, end_date = $5,
			venue_name = $6, total_seats = $7, available_seats = $8, price = $9
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.VenueName,
		event.TotalSeats,
		event.AvailableSeats,
		event.Price,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// SoftDelete marks an event as deleted
func (r *PostgresEventRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE events
		SET is_deleted = TRUE
		WHERE id = $1 AND is_deleted = FALSE
	`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// AdjustSeats atomically changes available seats by delta. The compare and
// the write are a single conditional UPDATE, so concurrent adjustments can
// never take the seat count outside [0, total_seats].
func (r *PostgresEventRepository) AdjustSeats(ctx context.Context, id string, delta int) (bool, error) {
	query := `
		UPDATE events
		SET available_seats = available_seats + $2
		WHERE id = $1
		  AND is_deleted = FALSE
		  AND available_seats + $2 >= 0
		  AND available_seats + $2 <= total_seats
	`
	result, err := r.pool.Exec(ctx, query, id, delta)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
