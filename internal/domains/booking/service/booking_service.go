package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/booking/model"
	"bookings-backend/internal/domains/booking/repository"
	capacityService "bookings-backend/internal/domains/capacity/service"
	discountService "bookings-backend/internal/domains/discount/service"
	paymentModel "bookings-backend/internal/domains/payment/model"
	paymentRepo "bookings-backend/internal/domains/payment/repository"
	paymentService "bookings-backend/internal/domains/payment/service"
	"bookings-backend/pkg/database"
	"bookings-backend/pkg/logger"
)

const scanBatchSize = 100

type BookingService struct {
	repo         repository.BookingRepository
	payments     paymentRepo.PaymentRepository
	discounts    discountService.ServiceInterface
	capacity     capacityService.ServiceInterface
	orchestrator paymentService.OrchestratorInterface
	tx           database.Transactor
	tasks        TaskEnqueuer

	reconcileDelay    time.Duration
	stalePendingAfter time.Duration
	debug             bool
}

func NewBookingService(
	repo repository.BookingRepository,
	payments paymentRepo.PaymentRepository,
	discounts discountService.ServiceInterface,
	capacity capacityService.ServiceInterface,
	orchestrator paymentService.OrchestratorInterface,
	tx database.Transactor,
	tasks TaskEnqueuer,
	stalePendingAfter time.Duration,
	debug bool,
) ServiceInterface {
	return &BookingService{
		repo:              repo,
		payments:          payments,
		discounts:         discounts,
		capacity:          capacity,
		orchestrator:      orchestrator,
		tx:                tx,
		tasks:             tasks,
		reconcileDelay:    5 * time.Minute,
		stalePendingAfter: stalePendingAfter,
		debug:             debug,
	}
}

func (s *BookingService) Create(ctx context.Context, cfg model.ProductConfig, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	if cfg.HasCapacity && req.ClassScheduleID == nil {
		return nil, model.ErrClassScheduleRequired
	}

	agg := buildAggregate(cfg.Type, model.StatusPending, req)
	booking := agg.Booking

	// First transaction: duplicate guard, pricing, capacity check, and the
	// pending aggregate. Committed before the gateway is touched so a crashed
	// or failed charge can never lose the booking. The guard runs before the
	// quote: a lead that already booked gets the duplicate answer no matter
	// how broken their plan or discount is.
	var quote *discountService.Quote
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if booking.LeadID != nil {
			exists, err := s.repo.ExistsByLead(ctx, *booking.LeadID)
			if err != nil {
				return err
			}
			if exists {
				return model.ErrDuplicateBooking
			}
		}

		var err error
		quote, err = s.discounts.Quote(ctx, req.PlanID, req.DiscountID, cfg.DiscountTarget)
		if err != nil {
			return err
		}

		if cfg.HasCapacity {
			if err := s.capacity.CheckCapacity(ctx, *booking.ClassScheduleID, booking.SeatCount()); err != nil {
				return err
			}
		}

		return s.repo.CreateAggregate(ctx, agg)
	})
	if err != nil {
		return nil, err
	}

	if s.debug {
		logger.Debug("booking stored, charging", map[string]interface{}{
			"booking_id": booking.ID.String(),
			"amount":     quote.FinalAmount.StringFixed(2),
		})
	}

	// The charge runs with no transaction open. Fully discounted bookings
	// skip the gateway entirely.
	var result paymentModel.ChargeResult
	if quote.FinalAmount.IsPositive() {
		result = s.orchestrator.Charge(ctx, req.Payment.CustomerInfo(), quote.FinalAmount)
	} else {
		result = paymentModel.ChargeResult{Status: paymentModel.StatusPaid}
	}

	record := &paymentModel.PaymentRecord{
		ID:                uuid.New(),
		BookingID:         booking.ID,
		BaseAmount:        quote.BaseAmount,
		DiscountAmount:    quote.DiscountAmount,
		FinalAmount:       quote.FinalAmount,
		Status:            result.Status,
		GatewayReference:  result.Reference,
		FailureReason:     result.FailureReason,
		GatewayCustomerID: result.CustomerID,
		GatewayCardID:     result.CardID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	// Second transaction: the outcome. On success the booking activates,
	// seats come off and discount usage is recorded; on failure only the
	// failed payment record is written and the booking stays pending.
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, record); err != nil {
			return err
		}
		if !result.Paid() {
			return nil
		}

		if err := s.repo.UpdateStatus(ctx, booking.ID, model.StatusActive); err != nil {
			return err
		}
		if cfg.HasCapacity {
			if err := s.capacity.Decrement(ctx, *booking.ClassScheduleID, booking.SeatCount()); err != nil {
				return err
			}
		}
		if quote.Discount != nil {
			if err := s.discounts.RecordUsage(ctx, quote.Discount.ID, booking.ID, quote.DiscountAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Paid() {
		// Best effort: the scheduled scan picks the booking up anyway.
		if err := s.tasks.EnqueuePaymentReconcile(booking.ID.String(), s.reconcileDelay); err != nil {
			logger.Error("enqueue payment reconcile", err)
		}
	}

	return &model.CreateBookingResponse{
		Success:          true,
		BookingID:        booking.ID,
		PaymentStatus:    string(result.Status),
		GatewayReference: result.Reference,
		BaseAmount:       quote.BaseAmount,
		DiscountAmount:   quote.DiscountAmount,
		FinalAmount:      quote.FinalAmount,
	}, nil
}

func (s *BookingService) CreateWaitingList(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
	if req.ClassScheduleID == nil {
		return nil, model.ErrClassScheduleRequired
	}

	agg := buildAggregate(model.ProductHolidayCamp, model.StatusWaitingList, req)
	booking := agg.Booking

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if booking.LeadID != nil {
			exists, err := s.repo.ExistsByLead(ctx, *booking.LeadID)
			if err != nil {
				return err
			}
			if exists {
				return model.ErrDuplicateBooking
			}
		}

		// Waiting list only makes sense once the class is full.
		if err := s.capacity.CheckFull(ctx, *booking.ClassScheduleID); err != nil {
			return err
		}

		return s.repo.CreateAggregate(ctx, agg)
	})
	if err != nil {
		return nil, err
	}

	return booking.ToResponse(), nil
}

func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return booking.ToResponse(), nil
}

func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(model.StatusCancelled) {
		return model.ErrInvalidStatusTransition
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
			return err
		}

		// Only seats that were actually taken come back.
		if booking.Status == model.StatusActive &&
			booking.ProductType == model.ProductHolidayCamp &&
			booking.ClassScheduleID != nil {
			return s.capacity.Restore(ctx, *booking.ClassScheduleID, booking.SeatCount())
		}
		return nil
	})
}

func (s *BookingService) Renew(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(model.StatusActive) {
		return model.ErrInvalidStatusTransition
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if booking.ProductType == model.ProductHolidayCamp && booking.ClassScheduleID != nil {
			if err := s.capacity.CheckCapacity(ctx, *booking.ClassScheduleID, booking.SeatCount()); err != nil {
				return err
			}
			if err := s.capacity.Decrement(ctx, *booking.ClassScheduleID, booking.SeatCount()); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatus(ctx, id, model.StatusActive)
	})
}

func (s *BookingService) Reconcile(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != model.StatusPending {
		// Already finalized or cancelled elsewhere; nothing to retry.
		return nil
	}

	record, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentModel.ErrPaymentNotFound) {
			// Crash window: the booking committed but the process died before
			// the outcome was written, so whether the customer was charged is
			// unknown. Retrying blindly could double charge; leave it for
			// manual review against the gateway logs.
			logger.Warn("pending booking has no payment record, manual review needed", map[string]interface{}{
				"booking_id": bookingID.String(),
			})
			return nil
		}
		return err
	}

	customer := paymentModel.CustomerInfo{
		CustomerID: record.GatewayCustomerID,
		CardID:     record.GatewayCardID,
	}
	if customer.CustomerID == nil || customer.CardID == nil {
		// No stored gateway identity to recharge; manual follow-up only.
		logger.Warn("reconcile skipped, no gateway references", map[string]interface{}{
			"booking_id": bookingID.String(),
		})
		return nil
	}

	result := s.orchestrator.Charge(ctx, customer, record.FinalAmount)
	if !result.Paid() {
		// Returning the reason as an error lets the queue retry with backoff.
		return &reconcileError{bookingID: bookingID, reason: result.FailureReason}
	}

	return s.finalize(ctx, booking, record, result.Reference)
}

func (s *BookingService) finalize(ctx context.Context, booking *model.Booking, record *paymentModel.PaymentRecord, reference *string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ref := ""
		if reference != nil {
			ref = *reference
		}
		if err := s.payments.MarkPaid(ctx, record.ID, ref); err != nil {
			return err
		}

		if err := s.repo.UpdateStatus(ctx, booking.ID, model.StatusActive); err != nil {
			return err
		}
		if booking.ProductType == model.ProductHolidayCamp && booking.ClassScheduleID != nil {
			if err := s.capacity.Decrement(ctx, *booking.ClassScheduleID, booking.SeatCount()); err != nil {
				return err
			}
		}
		if booking.DiscountID != nil && record.DiscountAmount.IsPositive() {
			if err := s.discounts.RecordUsage(ctx, *booking.DiscountID, booking.ID, record.DiscountAmount); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BookingService) ScanStalePending(ctx context.Context) error {
	cutoff := time.Now().Add(-s.stalePendingAfter)

	ids, err := s.repo.ListStalePending(ctx, cutoff, scanBatchSize)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.tasks.EnqueuePaymentReconcile(id.String(), 0); err != nil {
			logger.Error("enqueue reconcile from scan", err)
		}
	}

	if len(ids) > 0 {
		logger.Info("stale pending scan enqueued reconciliations", map[string]interface{}{
			"count": len(ids),
		})
	}
	return nil
}

// buildAggregate turns the request into the persisted shape. Every id and
// timestamp is assigned here so the repository stays a dumb writer.
func buildAggregate(product model.ProductType, status model.Status, req *model.CreateBookingRequest) *repository.Aggregate {
	now := time.Now()

	booking := &model.Booking{
		ID:              uuid.New(),
		LeadID:          req.LeadID,
		ProductType:     product,
		Status:          status,
		PlanID:          req.PlanID,
		DiscountID:      req.DiscountID,
		VenueID:         req.VenueID,
		ClassScheduleID: req.ClassScheduleID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, in := range req.Students {
		booking.Students = append(booking.Students, model.Student{
			ID:          uuid.New(),
			BookingID:   booking.ID,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			DateOfBirth: in.DateOfBirth,
			Age:         in.Age,
			Gender:      in.Gender,
			MedicalInfo: in.MedicalInfo,
			CreatedAt:   now,
		})
	}

	agg := &repository.Aggregate{Booking: booking}

	for _, in := range req.Parents {
		agg.Parents = append(agg.Parents, model.Parent{
			ID:              uuid.New(),
			FirstName:       in.FirstName,
			LastName:        in.LastName,
			Email:           in.Email,
			Phone:           in.Phone,
			RelationToChild: in.RelationToChild,
			HowHeard:        in.HowHeard,
			CreatedAt:       now,
		})
	}

	if req.Emergency.FirstName != "" || req.Emergency.Phone != "" {
		agg.Emergency = &model.EmergencyContact{
			ID:        uuid.New(),
			FirstName: req.Emergency.FirstName,
			LastName:  req.Emergency.LastName,
			Phone:     req.Emergency.Phone,
			Relation:  req.Emergency.Relation,
			CreatedAt: now,
		}
	}

	return agg
}

type reconcileError struct {
	bookingID uuid.UUID
	reason    *string
}

func (e *reconcileError) Error() string {
	msg := "reconcile charge failed for booking " + e.bookingID.String()
	if e.reason != nil {
		msg += ": " + *e.reason
	}
	return msg
}
