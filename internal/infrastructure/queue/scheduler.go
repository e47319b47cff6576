package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"bookings-backend/internal/config"
)

// Scheduler registers periodic jobs on the asynq scheduler.
type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.QueueConfig
}

func NewScheduler(redisAddr, redisPassword string, redisDB int, cfg config.QueueConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, cfg: cfg}
}

// RegisterJobs wires the periodic scan that re-enqueues billing retries for
// bookings stuck in pending with a failed charge.
func (s *Scheduler) RegisterJobs() error {
	task := asynq.NewTask(TypeScanPendingCharges, nil)
	_, err := s.scheduler.Register(s.cfg.ReconcileInterval, task, asynq.Queue(s.cfg.ReconcileQueueName))
	return err
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
