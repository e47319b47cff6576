package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookings-backend/internal/domains/discount/model"
	"bookings-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) DiscountRepository {
	return &postgresRepository{pool: pool}
}

const discountColumns = `
	id, code, name, description,
	value_type, value, applicable_products,
	limit_total_uses, starts_at, expires_at,
	is_active, created_at, updated_at
`

func scanDiscount(row pgx.Row) (*model.Discount, error) {
	var d model.Discount
	err := row.Scan(
		&d.ID,
		&d.Code,
		&d.Name,
		&d.Description,
		&d.ValueType,
		&d.Value,
		&d.ApplicableProducts,
		&d.LimitTotalUses,
		&d.StartsAt,
		&d.ExpiresAt,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("scan discount: %w", err)
	}
	return &d, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1 AND is_active = true`

	q := database.QuerierFrom(ctx, r.pool)
	return scanDiscount(q.QueryRow(ctx, query, id))
}

func (r *postgresRepository) FindByIDAny(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`

	q := database.QuerierFrom(ctx, r.pool)
	return scanDiscount(q.QueryRow(ctx, query, id))
}

func (r *postgresRepository) FindByCode(ctx context.Context, code string) (*model.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE LOWER(code) = LOWER($1) AND is_active = true`

	q := database.QuerierFrom(ctx, r.pool)
	return scanDiscount(q.QueryRow(ctx, query, code))
}

func (r *postgresRepository) CountUsage(ctx context.Context, discountID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM discount_usages WHERE discount_id = $1`

	q := database.QuerierFrom(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, query, discountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count discount usage: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CreateUsage(ctx context.Context, usage *model.DiscountUsage) error {
	query := `
		INSERT INTO discount_usages (id, discount_id, booking_id, amount, used_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	q := database.QuerierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, query,
		usage.ID,
		usage.DiscountID,
		usage.BookingID,
		usage.Amount,
		usage.UsedAt,
	)
	if err != nil {
		return fmt.Errorf("insert discount usage: %w", err)
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, d *model.Discount) error {
	query := `
		INSERT INTO discounts (
			id, code, name, description,
			value_type, value, applicable_products,
			limit_total_uses, starts_at, expires_at,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID,
		d.Code,
		d.Name,
		d.Description,
		d.ValueType,
		d.Value,
		d.ApplicableProducts,
		d.LimitTotalUses,
		d.StartsAt,
		d.ExpiresAt,
		d.IsActive,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on code
			return model.ErrDuplicateCode
		}
		return fmt.Errorf("insert discount: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, d *model.Discount) error {
	query := `
		UPDATE discounts
		SET name = $2, limit_total_uses = $3, starts_at = $4, expires_at = $5,
		    is_active = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		d.ID,
		d.Name,
		d.LimitTotalUses,
		d.StartsAt,
		d.ExpiresAt,
		d.IsActive,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDiscountNotFound
	}
	return nil
}
