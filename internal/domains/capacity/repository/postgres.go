package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookings-backend/internal/domains/capacity/model"
	"bookings-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) CapacityRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ClassSchedule, error) {
	query := `
		SELECT id, venue_id, name, starts_on, ends_on, capacity, created_at, updated_at
		FROM class_schedules
		WHERE id = $1
	`

	q := database.QuerierFrom(ctx, r.pool)

	var cs model.ClassSchedule
	err := q.QueryRow(ctx, query, id).Scan(
		&cs.ID,
		&cs.VenueID,
		&cs.Name,
		&cs.StartsOn,
		&cs.EndsOn,
		&cs.Capacity,
		&cs.CreatedAt,
		&cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClassNotFound
		}
		return nil, fmt.Errorf("find class schedule: %w", err)
	}

	return &cs, nil
}

func (r *postgresRepository) RemainingSeats(ctx context.Context, id uuid.UUID) (int, error) {
	// FOR UPDATE is a no-op outside a transaction; inside one it serializes
	// concurrent adjustments against the same class.
	query := `SELECT capacity FROM class_schedules WHERE id = $1 FOR UPDATE`

	q := database.QuerierFrom(ctx, r.pool)

	var remaining int
	if err := q.QueryRow(ctx, query, id).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrClassNotFound
		}
		return 0, fmt.Errorf("read remaining seats: %w", err)
	}
	return remaining, nil
}

func (r *postgresRepository) Decrement(ctx context.Context, id uuid.UUID, seats int) error {
	// GREATEST floors the counter at zero.
	query := `
		UPDATE class_schedules
		SET capacity = GREATEST(capacity - $2, 0), updated_at = NOW()
		WHERE id = $1
	`

	q := database.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, query, id, seats)
	if err != nil {
		return fmt.Errorf("decrement capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrClassNotFound
	}
	return nil
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID, seats int) error {
	query := `
		UPDATE class_schedules
		SET capacity = capacity + $2, updated_at = NOW()
		WHERE id = $1
	`

	q := database.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, query, id, seats)
	if err != nil {
		return fmt.Errorf("restore capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrClassNotFound
	}
	return nil
}
