package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentModel "bookings-backend/internal/domains/payment/model"
)

// StudentInput is one child on the booking request.
type StudentInput struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	MedicalInfo *string   `json:"medical_info,omitempty"`
}

func (s StudentInput) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.DateOfBirth, validation.Required),
		validation.Field(&s.Age, validation.Min(0), validation.Max(18)),
	)
}

type ParentInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	RelationToChild string `json:"relation_to_child"`
	HowHeard        string `json:"how_heard"`
}

func (p ParentInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Phone, validation.Required, validation.Length(5, 30)),
	)
}

type EmergencyInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Relation  string `json:"relation"`
}

func (e EmergencyInput) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&e.Phone, validation.Required, validation.Length(5, 30)),
	)
}

type PaymentInput struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	BillingAddress string  `json:"billing_address"`
	CustomerID     *string `json:"customer_id,omitempty"`
	CardID         *string `json:"card_id,omitempty"`
}

func (p PaymentInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.LastName, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

// CustomerInfo converts the payment section into the gateway identity.
func (p PaymentInput) CustomerInfo() paymentModel.CustomerInfo {
	return paymentModel.CustomerInfo{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		BillingAddress: p.BillingAddress,
		CustomerID:     p.CustomerID,
		CardID:         p.CardID,
	}
}

// CreateBookingRequest is the logical shape shared across the three
// products; venue/class identifiers only apply to some of them.
type CreateBookingRequest struct {
	LeadID          *uuid.UUID `json:"lead_id,omitempty"`
	PlanID          *uuid.UUID `json:"plan_id,omitempty"`
	DiscountID      *uuid.UUID `json:"discount_id,omitempty"`
	VenueID         *uuid.UUID `json:"venue_id,omitempty"`
	ClassScheduleID *uuid.UUID `json:"class_schedule_id,omitempty"`

	Students  []StudentInput `json:"students"`
	Parents   []ParentInput  `json:"parents"`
	Emergency EmergencyInput `json:"emergency"`
	Payment   PaymentInput   `json:"payment"`
}

func (r CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Students, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.Parents, validation.Required, validation.Length(1, 10)),
		validation.Field(&r.Emergency),
		validation.Field(&r.Payment),
	)
}

// CreateBookingResponse reports the stored booking and the charge outcome.
// Success is true whenever the booking was durably created, even when the
// charge failed; PaymentStatus carries the difference.
type CreateBookingResponse struct {
	Success          bool            `json:"success"`
	BookingID        uuid.UUID       `json:"booking_id"`
	PaymentStatus    string          `json:"payment_status"`
	GatewayReference *string         `json:"gateway_reference,omitempty"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	FinalAmount      decimal.Decimal `json:"final_amount"`
}

// BookingResponse is the read-side shape.
type BookingResponse struct {
	ID              uuid.UUID   `json:"id"`
	LeadID          *uuid.UUID  `json:"lead_id,omitempty"`
	ProductType     ProductType `json:"product_type"`
	Status          Status      `json:"status"`
	PlanID          *uuid.UUID  `json:"plan_id,omitempty"`
	DiscountID      *uuid.UUID  `json:"discount_id,omitempty"`
	ClassScheduleID *uuid.UUID  `json:"class_schedule_id,omitempty"`
	Students        []Student   `json:"students"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		LeadID:          b.LeadID,
		ProductType:     b.ProductType,
		Status:          b.Status,
		PlanID:          b.PlanID,
		DiscountID:      b.DiscountID,
		ClassScheduleID: b.ClassScheduleID,
		Students:        b.Students,
		CreatedAt:       b.CreatedAt,
	}
}
