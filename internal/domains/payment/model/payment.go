package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPaymentNotFound = errors.New("payment record not found")

// Status of a payment record. A record exists for every priced booking,
// whether or not the charge went through.
type Status string

const (
	StatusPaid   Status = "paid"
	StatusFailed Status = "failed"
)

// PaymentRecord stores the outcome of the single charge attempt made for a
// booking, plus the gateway references needed to retry billing later without
// re-collecting details.
type PaymentRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookingID uuid.UUID `json:"booking_id" db:"booking_id"`

	BaseAmount     decimal.Decimal `json:"base_amount" db:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount" db:"final_amount"`

	Status           Status  `json:"status" db:"status"`
	GatewayReference *string `json:"gateway_reference,omitempty" db:"gateway_reference"`
	FailureReason    *string `json:"failure_reason,omitempty" db:"failure_reason"`

	// Gateway-side ids, kept so reconciliation can recharge the same card.
	GatewayCustomerID *string `json:"gateway_customer_id,omitempty" db:"gateway_customer_id"`
	GatewayCardID     *string `json:"gateway_card_id,omitempty" db:"gateway_card_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerInfo is the billing identity supplied with a booking request.
// CustomerID/CardID are optional gateway references; when absent the
// orchestrator creates them.
type CustomerInfo struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	BillingAddress string  `json:"billing_address"`
	CustomerID     *string `json:"customer_id,omitempty"`
	CardID         *string `json:"card_id,omitempty"`
}

func (c CustomerInfo) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ChargeResult is what the orchestrator hands back. It never carries an
// error: gateway failure shows up as StatusFailed with a reason, because a
// failed charge must not prevent the booking from being stored.
type ChargeResult struct {
	Status        Status  `json:"status"`
	Reference     *string `json:"reference,omitempty"`
	FailureReason *string `json:"failure_reason,omitempty"`

	CustomerID *string `json:"customer_id,omitempty"`
	CardID     *string `json:"card_id,omitempty"`
}

func (r ChargeResult) Paid() bool {
	return r.Status == StatusPaid
}
