package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"bookings-backend/internal/domains/discount/model"
	"bookings-backend/internal/domains/discount/repository"
	planRepo "bookings-backend/internal/domains/plan/repository"
	"bookings-backend/pkg/cache"
	"bookings-backend/pkg/logger"
)

const (
	cacheKeyPrefix = "discount:code:"
	cacheTTL       = 5 * time.Minute
)

type DiscountService struct {
	repo       repository.DiscountRepository
	plans      planRepo.PlanRepository
	calculator *Calculator
	cache      cache.Cache
	debug      bool
}

func NewDiscountService(
	repo repository.DiscountRepository,
	plans planRepo.PlanRepository,
	c cache.Cache,
	debug bool,
) ServiceInterface {
	return &DiscountService{
		repo:       repo,
		plans:      plans,
		calculator: NewCalculator(),
		cache:      c,
		debug:      debug,
	}
}

// Quote resolves the plan price, then validates and applies the discount.
//
// Validation order matters: not-found, window (not yet active / expired),
// product applicability, usage cap. The first failure aborts the whole
// booking operation before anything is persisted.
func (s *DiscountService) Quote(ctx context.Context, planID, discountID *uuid.UUID, product string) (*Quote, error) {
	base, err := s.resolveBase(ctx, planID)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		BaseAmount:     base,
		DiscountAmount: decimal.Zero,
		FinalAmount:    base,
	}

	if discountID == nil {
		return quote, nil
	}

	discount, err := s.repo.FindByID(ctx, *discountID)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, quote, discount, product)
}

// QuoteByCode previews a code against a plan without touching any booking.
func (s *DiscountService) QuoteByCode(ctx context.Context, planID *uuid.UUID, code, product string) (*Quote, error) {
	base, err := s.resolveBase(ctx, planID)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		BaseAmount:     base,
		DiscountAmount: decimal.Zero,
		FinalAmount:    base,
	}

	discount, err := s.findByCodeCached(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, quote, discount, product)
}

func (s *DiscountService) resolveBase(ctx context.Context, planID *uuid.UUID) (decimal.Decimal, error) {
	if planID == nil {
		return decimal.Zero, nil
	}

	plan, err := s.plans.FindByID(ctx, *planID)
	if err != nil {
		return decimal.Zero, err
	}
	return plan.Price, nil
}

func (s *DiscountService) apply(ctx context.Context, quote *Quote, discount *model.Discount, product string) (*Quote, error) {
	now := time.Now()

	if discount.NotYetActive(now) {
		return nil, model.ErrDiscountNotYetActive
	}
	if discount.Expired(now) {
		return nil, model.ErrDiscountExpired
	}
	if !discount.AppliesTo(product) {
		return nil, model.ErrDiscountNotApplicable
	}

	if discount.LimitTotalUses != nil {
		used, err := s.repo.CountUsage(ctx, discount.ID)
		if err != nil {
			return nil, err
		}
		if used >= *discount.LimitTotalUses {
			return nil, model.ErrDiscountUsageExceeded
		}
	}

	quote.DiscountAmount = s.calculator.DiscountAmount(discount, quote.BaseAmount)
	quote.FinalAmount = s.calculator.FinalAmount(quote.BaseAmount, quote.DiscountAmount)
	quote.Discount = discount

	if s.debug {
		logger.Debug("discount applied", map[string]interface{}{
			"code":     discount.Code,
			"base":     quote.BaseAmount,
			"discount": quote.DiscountAmount,
			"final":    quote.FinalAmount,
		})
	}

	return quote, nil
}

func (s *DiscountService) RecordUsage(ctx context.Context, discountID, bookingID uuid.UUID, amount decimal.Decimal) error {
	usage := &model.DiscountUsage{
		ID:         uuid.New(),
		DiscountID: discountID,
		BookingID:  bookingID,
		Amount:     amount,
		UsedAt:     time.Now(),
	}
	return s.repo.CreateUsage(ctx, usage)
}

// findByCodeCached serves code lookups from Redis, falling back to Postgres.
// Cache failures degrade to a direct read.
func (s *DiscountService) findByCodeCached(ctx context.Context, code string) (*model.Discount, error) {
	key := cacheKeyPrefix + code

	if s.cache != nil {
		var cached model.Discount
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("discount cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		} else if found {
			return &cached, nil
		}
	}

	discount, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, discount, cacheTTL); err != nil {
			logger.Warn("discount cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	return discount, nil
}

func (s *DiscountService) CreateDiscount(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error) {
	if !model.ValueType(req.ValueType).IsValid() {
		return nil, model.ErrInvalidValueType
	}

	now := time.Now()
	discount := &model.Discount{
		ID:                 uuid.New(),
		Code:               req.Code,
		Name:               req.Name,
		Description:        req.Description,
		ValueType:          model.ValueType(req.ValueType),
		Value:              req.Value,
		ApplicableProducts: pq.StringArray(req.ApplicableProducts),
		LimitTotalUses:     req.LimitTotalUses,
		StartsAt:           req.StartsAt,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           req.IsActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	discount.NormalizeCode()

	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, req *model.UpdateDiscountRequest) (*model.Discount, error) {
	// Unfiltered lookup: a deactivated code must stay editable, otherwise
	// flipping is_active back on would be impossible.
	discount, err := s.repo.FindByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		discount.Name = *req.Name
	}
	if req.LimitTotalUses != nil {
		discount.LimitTotalUses = req.LimitTotalUses
	}
	if req.StartsAt != nil {
		discount.StartsAt = req.StartsAt
	}
	if req.ExpiresAt != nil {
		discount.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		discount.IsActive = *req.IsActive
	}
	discount.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, discount); err != nil {
		return nil, err
	}

	// Stale code entries must not outlive an admin edit.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKeyPrefix+discount.Code); err != nil {
			logger.Warn("discount cache invalidation failed", map[string]interface{}{
				"code": discount.Code, "error": fmt.Sprintf("%v", err),
			})
		}
	}

	return discount, nil
}
