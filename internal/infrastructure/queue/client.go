package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names shared between the API (producer) and the worker (consumer).
const (
	TypePaymentReconcile   = "payment:reconcile"
	TypeScanPendingCharges = "payment:scan_pending"
)

// PaymentReconcilePayload asks the worker to retry the charge for a booking
// whose payment previously failed and, on success, finalize the booking.
type PaymentReconcilePayload struct {
	BookingID string `json:"booking_id"`
}

// Client wraps the asynq client for enqueueing tasks from request handlers.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(redisAddr, redisPassword string, redisDB int, queue string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
		queue: queue,
	}
}

// EnqueuePaymentReconcile schedules a billing retry for the booking. The
// delay gives transient gateway outages time to clear.
func (c *Client) EnqueuePaymentReconcile(bookingID string, delay time.Duration) error {
	payload, err := json.Marshal(PaymentReconcilePayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("marshal reconcile payload: %w", err)
	}

	task := asynq.NewTask(TypePaymentReconcile, payload)
	if _, err := c.client.Enqueue(task,
		asynq.ProcessIn(delay),
		asynq.MaxRetry(3),
		asynq.Queue(c.queue),
	); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypePaymentReconcile, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
