package main

import (
	"github.com/hibiken/asynq"

	"bookings-backend/internal/infrastructure/queue"
	"bookings-backend/pkg/container"
)

func setupAsynqServer(c *container.Container) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: c.Config.Queue.Concurrency,
			Queues: map[string]int{
				c.Config.Queue.ReconcileQueueName: 10,
			},
		},
	)

	handlers := newHandlers(c)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypePaymentReconcile, handlers.HandlePaymentReconcile)
	mux.HandleFunc(queue.TypeScanPendingCharges, handlers.HandleScanPendingCharges)

	return srv, mux
}
