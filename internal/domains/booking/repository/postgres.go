package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookings-backend/internal/domains/booking/model"
	"bookings-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) BookingRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ExistsByLead(ctx context.Context, leadID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE lead_id = $1)`

	q := database.QuerierFrom(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, query, leadID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check lead booking exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateAggregate(ctx context.Context, agg *Aggregate) error {
	b := agg.Booking

	// Parents and the emergency contact anchor on the first student, so an
	// aggregate without one cannot be stored.
	if len(b.Students) == 0 {
		return model.ErrNoStudents
	}

	q := database.QuerierFrom(ctx, r.pool)

	bookingQuery := `
		INSERT INTO bookings (
			id, lead_id, product_type, status,
			plan_id, discount_id, venue_id, class_schedule_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, bookingQuery,
		b.ID,
		b.LeadID,
		b.ProductType,
		b.Status,
		b.PlanID,
		b.DiscountID,
		b.VenueID,
		b.ClassScheduleID,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on lead_id
			return model.ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	studentQuery := `
		INSERT INTO students (
			id, booking_id, first_name, last_name, date_of_birth,
			age, gender, medical_info, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i := range b.Students {
		s := &b.Students[i]
		if _, err := q.Exec(ctx, studentQuery,
			s.ID,
			s.BookingID,
			s.FirstName,
			s.LastName,
			s.DateOfBirth,
			s.Age,
			s.Gender,
			s.MedicalInfo,
			s.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert student: %w", err)
		}
	}

	// Parents and the emergency contact hang off the first student.
	anchor := b.Students[0].ID

	parentQuery := `
		INSERT INTO parents (
			id, student_id, first_name, last_name, email, phone,
			relation_to_child, how_heard, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i := range agg.Parents {
		p := &agg.Parents[i]
		p.StudentID = anchor
		if _, err := q.Exec(ctx, parentQuery,
			p.ID,
			p.StudentID,
			p.FirstName,
			p.LastName,
			p.Email,
			p.Phone,
			p.RelationToChild,
			p.HowHeard,
			p.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert parent: %w", err)
		}
	}

	if agg.Emergency != nil {
		agg.Emergency.StudentID = anchor
		emergencyQuery := `
			INSERT INTO emergency_contacts (
				id, student_id, first_name, last_name, phone, relation, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := q.Exec(ctx, emergencyQuery,
			agg.Emergency.ID,
			agg.Emergency.StudentID,
			agg.Emergency.FirstName,
			agg.Emergency.LastName,
			agg.Emergency.Phone,
			agg.Emergency.Relation,
			agg.Emergency.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert emergency contact: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	q := database.QuerierFrom(ctx, r.pool)

	bookingQuery := `
		SELECT id, lead_id, product_type, status,
		       plan_id, discount_id, venue_id, class_schedule_id,
		       created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var b model.Booking
	err := q.QueryRow(ctx, bookingQuery, id).Scan(
		&b.ID,
		&b.LeadID,
		&b.ProductType,
		&b.Status,
		&b.PlanID,
		&b.DiscountID,
		&b.VenueID,
		&b.ClassScheduleID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	studentQuery := `
		SELECT id, booking_id, first_name, last_name, date_of_birth,
		       age, gender, medical_info, created_at
		FROM students
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, studentQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list booking students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Student
		if err := rows.Scan(
			&s.ID,
			&s.BookingID,
			&s.FirstName,
			&s.LastName,
			&s.DateOfBirth,
			&s.Age,
			&s.Gender,
			&s.MedicalInfo,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		b.Students = append(b.Students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	q := database.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookingNotFound
	}
	return nil
}

func (r *postgresRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]uuid.UUID, error) {
	// LEFT JOIN so bookings with no payment record at all are swept too. A
	// crash between the persist and outcome transactions leaves exactly that
	// shape behind.
	query := `
		SELECT b.id
		FROM bookings b
		LEFT JOIN payment_records p ON p.booking_id = b.id
		WHERE b.status = $1 AND b.created_at < $2
		  AND (p.id IS NULL OR p.status = $3)
		ORDER BY b.created_at
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, model.StatusPending, olderThan, "failed", limit)
	if err != nil {
		return nil, fmt.Errorf("list stale pending bookings: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan booking id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
