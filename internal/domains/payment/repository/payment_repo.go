package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookings-backend/internal/domains/payment/model"
	"bookings-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) PaymentRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, rec *model.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (
			id, booking_id, base_amount, discount_amount, final_amount,
			status, gateway_reference, failure_reason,
			gateway_customer_id, gateway_card_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	q := database.QuerierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, query,
		rec.ID,
		rec.BookingID,
		rec.BaseAmount,
		rec.DiscountAmount,
		rec.FinalAmount,
		rec.Status,
		rec.GatewayReference,
		rec.FailureReason,
		rec.GatewayCustomerID,
		rec.GatewayCardID,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment record: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.PaymentRecord, error) {
	query := `
		SELECT id, booking_id, base_amount, discount_amount, final_amount,
		       status, gateway_reference, failure_reason,
		       gateway_customer_id, gateway_card_id,
		       created_at, updated_at
		FROM payment_records
		WHERE booking_id = $1
	`

	q := database.QuerierFrom(ctx, r.pool)

	var rec model.PaymentRecord
	err := q.QueryRow(ctx, query, bookingID).Scan(
		&rec.ID,
		&rec.BookingID,
		&rec.BaseAmount,
		&rec.DiscountAmount,
		&rec.FinalAmount,
		&rec.Status,
		&rec.GatewayReference,
		&rec.FailureReason,
		&rec.GatewayCustomerID,
		&rec.GatewayCardID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment by booking: %w", err)
	}

	return &rec, nil
}

func (r *postgresRepository) MarkPaid(ctx context.Context, id uuid.UUID, reference string) error {
	query := `
		UPDATE payment_records
		SET status = $2, gateway_reference = $3, failure_reason = NULL, updated_at = NOW()
		WHERE id = $1
	`

	q := database.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, query, id, model.StatusPaid, reference)
	if err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}
	return nil
}
