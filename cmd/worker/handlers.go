package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	bookingService "bookings-backend/internal/domains/booking/service"
	"bookings-backend/internal/infrastructure/queue"
	"bookings-backend/pkg/container"
	"bookings-backend/pkg/logger"
)

type handlers struct {
	bookings bookingService.ServiceInterface
}

func newHandlers(c *container.Container) *handlers {
	return &handlers{bookings: c.BookingService}
}

// HandlePaymentReconcile retries the charge for one pending booking. A
// charge that fails again returns an error so asynq backs off and retries.
func (h *handlers) HandlePaymentReconcile(ctx context.Context, t *asynq.Task) error {
	var payload queue.PaymentReconcilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal reconcile payload: %w: %w", err, asynq.SkipRetry)
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return fmt.Errorf("invalid booking id %q: %w: %w", payload.BookingID, err, asynq.SkipRetry)
	}

	logger.Info("reconciling booking payment", map[string]interface{}{
		"booking_id": bookingID.String(),
	})

	return h.bookings.Reconcile(ctx, bookingID)
}

// HandleScanPendingCharges finds bookings stuck in pending with a failed
// charge and enqueues a reconcile task for each.
func (h *handlers) HandleScanPendingCharges(ctx context.Context, t *asynq.Task) error {
	return h.bookings.ScanStalePending(ctx)
}
