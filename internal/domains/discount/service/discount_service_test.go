package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookings-backend/internal/domains/discount/model"
	planModel "bookings-backend/internal/domains/plan/model"
)

type mockDiscountRepo struct {
	mock.Mock
}

func (m *mockDiscountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discount), args.Error(1)
}

func (m *mockDiscountRepo) FindByIDAny(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discount), args.Error(1)
}

func (m *mockDiscountRepo) FindByCode(ctx context.Context, code string) (*model.Discount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discount), args.Error(1)
}

func (m *mockDiscountRepo) CountUsage(ctx context.Context, discountID uuid.UUID) (int, error) {
	args := m.Called(ctx, discountID)
	return args.Int(0), args.Error(1)
}

func (m *mockDiscountRepo) CreateUsage(ctx context.Context, usage *model.DiscountUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *mockDiscountRepo) Create(ctx context.Context, discount *model.Discount) error {
	args := m.Called(ctx, discount)
	return args.Error(0)
}

func (m *mockDiscountRepo) Update(ctx context.Context, discount *model.Discount) error {
	args := m.Called(ctx, discount)
	return args.Error(0)
}

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*planModel.PaymentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planModel.PaymentPlan), args.Error(1)
}

func (m *mockPlanRepo) ListActive(ctx context.Context, productType string) ([]*planModel.PaymentPlan, error) {
	args := m.Called(ctx, productType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*planModel.PaymentPlan), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func activeDiscount(products ...string) *model.Discount {
	return &model.Discount{
		ID:                 uuid.New(),
		Code:               "SUMMER20",
		ValueType:          model.ValueTypePercentage,
		Value:              decimal.RequireFromString("20"),
		ApplicableProducts: pq.StringArray(products),
		IsActive:           true,
	}
}

func plan(price string) *planModel.PaymentPlan {
	return &planModel.PaymentPlan{
		ID:       uuid.New(),
		Name:     "Standard",
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
}

func TestQuoteWithoutDiscount(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	p := plan("150")
	plans.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	quote, err := svc.Quote(context.Background(), &p.ID, nil, "holiday_camp")

	require.NoError(t, err)
	assert.True(t, quote.BaseAmount.Equal(decimal.RequireFromString("150")))
	assert.True(t, quote.DiscountAmount.IsZero())
	assert.True(t, quote.FinalAmount.Equal(quote.BaseAmount))
	assert.Nil(t, quote.Discount)
}

func TestQuoteAppliesPercentageDiscount(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	p := plan("200")
	discount := activeDiscount("holiday_camp")
	plans.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("FindByID", mock.Anything, discount.ID).Return(discount, nil)

	quote, err := svc.Quote(context.Background(), &p.ID, &discount.ID, "holiday_camp")

	require.NoError(t, err)
	assert.True(t, quote.DiscountAmount.Equal(decimal.RequireFromString("40")))
	assert.True(t, quote.FinalAmount.Equal(decimal.RequireFromString("160")))
	require.NotNil(t, quote.Discount)
	assert.Equal(t, discount.ID, quote.Discount.ID)
}

func TestQuoteValidationFailures(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		mutate   func(*model.Discount)
		usage    *int // CountUsage return when a cap is set
		expected error
	}{
		{
			name:     "not yet active",
			mutate:   func(d *model.Discount) { d.StartsAt = ptr(now.Add(24 * time.Hour)) },
			expected: model.ErrDiscountNotYetActive,
		},
		{
			name:     "expired",
			mutate:   func(d *model.Discount) { d.ExpiresAt = ptr(now.Add(-24 * time.Hour)) },
			expected: model.ErrDiscountExpired,
		},
		{
			name:     "wrong product",
			mutate:   func(d *model.Discount) { d.ApplicableProducts = pq.StringArray{"birthday_party"} },
			expected: model.ErrDiscountNotApplicable,
		},
		{
			name:     "usage cap reached",
			mutate:   func(d *model.Discount) { d.LimitTotalUses = ptr(5) },
			usage:    ptr(5),
			expected: model.ErrDiscountUsageExceeded,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockDiscountRepo)
			plans := new(mockPlanRepo)
			svc := NewDiscountService(repo, plans, nil, false)

			p := plan("100")
			discount := activeDiscount("holiday_camp")
			tc.mutate(discount)

			plans.On("FindByID", mock.Anything, p.ID).Return(p, nil)
			repo.On("FindByID", mock.Anything, discount.ID).Return(discount, nil)
			if tc.usage != nil {
				repo.On("CountUsage", mock.Anything, discount.ID).Return(*tc.usage, nil)
			}

			_, err := svc.Quote(context.Background(), &p.ID, &discount.ID, "holiday_camp")

			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestQuoteUsageCapBelowLimit(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	p := plan("100")
	discount := activeDiscount("one_to_one")
	discount.LimitTotalUses = ptr(10)

	plans.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("FindByID", mock.Anything, discount.ID).Return(discount, nil)
	repo.On("CountUsage", mock.Anything, discount.ID).Return(9, nil)

	quote, err := svc.Quote(context.Background(), &p.ID, &discount.ID, "one_to_one")

	require.NoError(t, err)
	assert.NotNil(t, quote.Discount)
}

func TestQuoteUnknownDiscount(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	p := plan("100")
	badID := uuid.New()
	plans.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("FindByID", mock.Anything, badID).Return(nil, model.ErrDiscountNotFound)

	_, err := svc.Quote(context.Background(), &p.ID, &badID, "one_to_one")

	assert.ErrorIs(t, err, model.ErrDiscountNotFound)
}

func TestQuoteUnknownPlan(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	badID := uuid.New()
	plans.On("FindByID", mock.Anything, badID).Return(nil, planModel.ErrPlanNotFound)

	_, err := svc.Quote(context.Background(), &badID, nil, "one_to_one")

	assert.ErrorIs(t, err, planModel.ErrPlanNotFound)
}

func TestCreateDiscountNormalizesCode(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Discount) bool {
		return d.Code == "SUMMER20"
	})).Return(nil)

	created, err := svc.CreateDiscount(context.Background(), &model.CreateDiscountRequest{
		Code:               " summer20 ",
		Name:               "Summer sale",
		ValueType:          "percentage",
		Value:              decimal.RequireFromString("20"),
		ApplicableProducts: []string{"holiday_camp"},
		IsActive:           true,
	})

	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", created.Code)
	repo.AssertExpectations(t)
}

func TestUpdateDiscountReactivatesDisabledCode(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	discount := activeDiscount("holiday_camp")
	discount.IsActive = false

	repo.On("FindByIDAny", mock.Anything, discount.ID).Return(discount, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *model.Discount) bool {
		return d.IsActive
	})).Return(nil)

	updated, err := svc.UpdateDiscount(context.Background(), discount.ID, &model.UpdateDiscountRequest{
		IsActive: ptr(true),
	})

	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	repo.AssertNotCalled(t, "FindByID")
	repo.AssertExpectations(t)
}

func TestCreateDiscountRejectsBadValueType(t *testing.T) {
	repo := new(mockDiscountRepo)
	plans := new(mockPlanRepo)
	svc := NewDiscountService(repo, plans, nil, false)

	_, err := svc.CreateDiscount(context.Background(), &model.CreateDiscountRequest{
		Code:      "BAD",
		Name:      "Broken",
		ValueType: "proportional",
		Value:     decimal.RequireFromString("20"),
	})

	assert.ErrorIs(t, err, model.ErrInvalidValueType)
	repo.AssertNotCalled(t, "Create")
}
