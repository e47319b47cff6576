package container

import (
	"context"
	"fmt"
	"time"

	"bookings-backend/internal/config"
	bookingHandler "bookings-backend/internal/domains/booking/handler"
	bookingRepo "bookings-backend/internal/domains/booking/repository"
	bookingService "bookings-backend/internal/domains/booking/service"
	capacityRepo "bookings-backend/internal/domains/capacity/repository"
	capacityService "bookings-backend/internal/domains/capacity/service"
	discountHandler "bookings-backend/internal/domains/discount/handler"
	discountRepo "bookings-backend/internal/domains/discount/repository"
	discountService "bookings-backend/internal/domains/discount/service"
	"bookings-backend/internal/domains/payment/gateway/stripe"
	paymentRepo "bookings-backend/internal/domains/payment/repository"
	paymentService "bookings-backend/internal/domains/payment/service"
	planHandler "bookings-backend/internal/domains/plan/handler"
	planRepo "bookings-backend/internal/domains/plan/repository"
	infraCache "bookings-backend/internal/infrastructure/cache"
	infraDB "bookings-backend/internal/infrastructure/database"
	"bookings-backend/internal/infrastructure/queue"
	"bookings-backend/pkg/cache"
	pkgDB "bookings-backend/pkg/database"
	"bookings-backend/pkg/jwt"
	"bookings-backend/pkg/logger"
)

// Container wires the whole dependency graph: config, infrastructure,
// repositories, services, handlers. Built once at startup; everything in it
// is a singleton.
type Container struct {
	Config     *config.Config
	DB         *infraDB.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *queue.Client
	Transactor pkgDB.Transactor

	BookingRepo  bookingRepo.BookingRepository
	PaymentRepo  paymentRepo.PaymentRepository
	DiscountRepo discountRepo.DiscountRepository
	CapacityRepo capacityRepo.CapacityRepository
	PlanRepo     planRepo.PlanRepository

	DiscountService discountService.ServiceInterface
	CapacityService capacityService.ServiceInterface
	BookingService  bookingService.ServiceInterface

	BookingHandler       *bookingHandler.Handler
	DiscountAdminHandler *discountHandler.AdminHandler
	DiscountHandler      *discountHandler.PublicHandler
	PlanHandler          *planHandler.Handler
}

// NewContainer builds the dependency graph bottom up: config, then
// infrastructure, then repositories, services and handlers. Connection
// failures abort startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	c.DB = infraDB.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Queue.ReconcileQueueName)
	c.Transactor = pkgDB.NewTransactor(c.DB.Pool)

	c.BookingRepo = bookingRepo.NewPostgresRepository(c.DB.Pool)
	c.PaymentRepo = paymentRepo.NewPostgresRepository(c.DB.Pool)
	c.DiscountRepo = discountRepo.NewPostgresRepository(c.DB.Pool)
	c.CapacityRepo = capacityRepo.NewPostgresRepository(c.DB.Pool)
	c.PlanRepo = planRepo.NewPostgresRepository(c.DB.Pool)

	gw := stripe.NewClient(&stripe.Config{
		APIURL:    cfg.Gateway.APIURL,
		SecretKey: cfg.Gateway.SecretKey,
		Sandbox:   cfg.Gateway.Sandbox,
	})
	orchestrator := paymentService.NewChargeOrchestrator(gw, cfg.Gateway.Timeout, cfg.App.Debug)

	c.DiscountService = discountService.NewDiscountService(c.DiscountRepo, c.PlanRepo, c.Cache, cfg.App.Debug)
	c.CapacityService = capacityService.NewCapacityService(c.CapacityRepo)
	c.BookingService = bookingService.NewBookingService(
		c.BookingRepo,
		c.PaymentRepo,
		c.DiscountService,
		c.CapacityService,
		orchestrator,
		c.Transactor,
		c.Queue,
		cfg.Queue.StalePendingAfter,
		cfg.App.Debug,
	)

	c.BookingHandler = bookingHandler.NewHandler(c.BookingService)
	c.DiscountAdminHandler = discountHandler.NewAdminHandler(c.DiscountService)
	c.DiscountHandler = discountHandler.NewPublicHandler(c.DiscountService)
	c.PlanHandler = planHandler.NewHandler(c.PlanRepo, c.Cache)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"debug":       cfg.App.Debug,
	})

	return c, nil
}

// Cleanup closes infrastructure connections. Safe to call once on shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("close queue client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
