package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookings-backend/internal/domains/booking/model"
	capacityModel "bookings-backend/internal/domains/capacity/model"
	discountModel "bookings-backend/internal/domains/discount/model"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Create(ctx context.Context, cfg model.ProductConfig, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	args := m.Called(ctx, cfg, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateBookingResponse), args.Error(1)
}

func (m *mockBookingService) CreateWaitingList(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingResponse), args.Error(1)
}

func (m *mockBookingService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingResponse), args.Error(1)
}

func (m *mockBookingService) Cancel(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingService) Renew(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingService) Reconcile(ctx context.Context, bookingID uuid.UUID) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *mockBookingService) ScanStalePending(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupRouter(svc *mockBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/v1/bookings/one-to-one", h.CreateOneToOne)
	r.POST("/v1/bookings/holiday-camps", h.CreateHolidayCamp)
	r.GET("/v1/bookings/:id", h.GetBooking)
	r.POST("/v1/bookings/:id/cancel", h.CancelBooking)
	return r
}

func requestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"lead_id": uuid.New().String(),
		"plan_id": uuid.New().String(),
		"students": []map[string]interface{}{
			{"first_name": "Mia", "last_name": "Khan", "date_of_birth": time.Date(2016, 4, 2, 0, 0, 0, 0, time.UTC), "age": 10},
		},
		"parents": []map[string]interface{}{
			{"first_name": "Dee", "last_name": "Khan", "email": "dee@example.com", "phone": "0770000000"},
		},
		"emergency": map[string]interface{}{"first_name": "Ana", "last_name": "Khan", "phone": "0771111111"},
		"payment":   map[string]interface{}{"first_name": "Dee", "last_name": "Khan", "email": "dee@example.com"},
	})
	require.NoError(t, err)
	return body
}

func TestCreateBookingStatusCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"duplicate lead", model.ErrDuplicateBooking, http.StatusConflict},
		{"discount expired", discountModel.ErrDiscountExpired, http.StatusUnprocessableEntity},
		{"discount wrong product", discountModel.ErrDiscountNotApplicable, http.StatusUnprocessableEntity},
		{"class full", capacityModel.ErrInsufficientCapacity, http.StatusUnprocessableEntity},
		{"unexpected failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockBookingService)
			svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)
			router := setupRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/bookings/one-to-one", bytes.NewReader(requestBody(t)))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestCreateBookingFailedChargeIsStillCreated(t *testing.T) {
	svc := new(mockBookingService)
	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(&model.CreateBookingResponse{
		Success:       true,
		BookingID:     uuid.New(),
		PaymentStatus: "failed",
	}, nil)
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/one-to-one", bytes.NewReader(requestBody(t)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			PaymentStatus string `json:"payment_status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "failed", resp.Data.PaymentStatus)
}

func TestCreateBookingRejectsInvalidBody(t *testing.T) {
	svc := new(mockBookingService)
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/one-to-one", bytes.NewReader([]byte(`{"students": []}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestGetBooking(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mockBookingService)
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(&model.BookingResponse{
			ID:     id,
			Status: model.StatusActive,
		}, nil)
		router := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/"+id.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockBookingService)
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, model.ErrBookingNotFound)
		router := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/"+id.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(mockBookingService)
		router := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelBookingInvalidTransition(t *testing.T) {
	svc := new(mockBookingService)
	id := uuid.New()
	svc.On("Cancel", mock.Anything, id).Return(model.ErrInvalidStatusTransition)
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/"+id.String()+"/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
