package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookings-backend/internal/domains/plan/model"
	"bookings-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) PlanRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentPlan, error) {
	query := `
		SELECT id, name, description, price, product_type, is_active, created_at, updated_at
		FROM payment_plans
		WHERE id = $1 AND is_active = true
	`

	q := database.QuerierFrom(ctx, r.pool)

	var p model.PaymentPlan
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ProductType,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan by id: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) ListActive(ctx context.Context, productType string) ([]*model.PaymentPlan, error) {
	query := `
		SELECT id, name, description, price, product_type, is_active, created_at, updated_at
		FROM payment_plans
		WHERE is_active = true AND product_type = $1
		ORDER BY price
	`

	rows, err := r.pool.Query(ctx, query, productType)
	if err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	defer rows.Close()

	var plans []*model.PaymentPlan
	for rows.Next() {
		var p model.PaymentPlan
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ProductType,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		plans = append(plans, &p)
	}

	return plans, rows.Err()
}
