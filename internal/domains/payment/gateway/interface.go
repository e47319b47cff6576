package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway is the external card payment collaborator. The booking flow never
// calls it directly; the charge orchestrator sequences these operations.
type Gateway interface {
	// CreateCustomer registers a billing customer.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CreateCustomerResponse, error)

	// CreateCardToken tokenizes a card. The sandbox path returns a fixed
	// placeholder token; production accepts card details collected client-side.
	CreateCardToken(ctx context.Context) (*CardTokenResponse, error)

	// AddNewCard attaches a tokenized card to a customer.
	AddNewCard(ctx context.Context, req AddCardRequest) (*AddCardResponse, error)

	// CreateCharge charges the customer's card for the given amount.
	CreateCharge(ctx context.Context, req CreateChargeRequest) (*ChargeResponse, error)

	// GetPaymentDetails returns the raw gateway charge object. Read side,
	// used by reporting; not part of the booking creation path.
	GetPaymentDetails(ctx context.Context, reference string) (map[string]interface{}, error)
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateCustomerResponse struct {
	Success    bool   `json:"success"`
	CustomerID string `json:"customer_id"`
	Message    string `json:"msg,omitempty"`
}

type CardTokenResponse struct {
	Success bool   `json:"success"`
	TokenID string `json:"token_id"`
}

type AddCardRequest struct {
	CustomerID string `json:"customer_id"`
	CardToken  string `json:"card_token"`
}

type AddCardResponse struct {
	Success  bool   `json:"success"`
	CardID   string `json:"card_id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

type CreateChargeRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	CustomerID string          `json:"customer_id"`
	CardID     string          `json:"card_id"`
}

// ChargeResponse mirrors the gateway contract: Status "succeeded" means the
// charge went through, anything else is a decline.
type ChargeResponse struct {
	Status   string `json:"status"`
	ChargeID string `json:"charge_id"`
}

const ChargeStatusSucceeded = "succeeded"
