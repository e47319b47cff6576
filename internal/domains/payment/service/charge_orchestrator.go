package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bookings-backend/internal/domains/payment/gateway"
	"bookings-backend/internal/domains/payment/model"
	"bookings-backend/pkg/logger"
)

// Orchestrator sequences the gateway calls needed to charge a customer:
// ensure a customer exists, ensure a card is attached, then create the
// charge. It is deliberately fault tolerant: no step failure escapes as an
// error. The booking must be stored whatever the gateway does, so a failure
// only determines the resulting payment status.
type OrchestratorInterface interface {
	Charge(ctx context.Context, customer model.CustomerInfo, amount decimal.Decimal) model.ChargeResult
}

type ChargeOrchestrator struct {
	gateway gateway.Gateway
	timeout time.Duration
	debug   bool
}

func NewChargeOrchestrator(gw gateway.Gateway, timeout time.Duration, debug bool) OrchestratorInterface {
	return &ChargeOrchestrator{
		gateway: gw,
		timeout: timeout,
		debug:   debug,
	}
}

// Charge makes a single attempt. No retry or backoff here; reconciliation
// handles retries out of band.
func (o *ChargeOrchestrator) Charge(ctx context.Context, customer model.CustomerInfo, amount decimal.Decimal) model.ChargeResult {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	// Step 1: ensure a gateway customer.
	customerID := customer.CustomerID
	if customerID == nil {
		resp, err := o.gateway.CreateCustomer(ctx, gateway.CreateCustomerRequest{
			Name:  customer.FullName(),
			Email: customer.Email,
		})
		if err != nil {
			return o.failed("create customer: "+err.Error(), nil, nil)
		}
		customerID = &resp.CustomerID
	}

	// Step 2: ensure an attached card.
	cardID := customer.CardID
	if cardID == nil {
		token, err := o.gateway.CreateCardToken(ctx)
		if err != nil {
			return o.failed("create card token: "+err.Error(), customerID, nil)
		}

		card, err := o.gateway.AddNewCard(ctx, gateway.AddCardRequest{
			CustomerID: *customerID,
			CardToken:  token.TokenID,
		})
		if err != nil {
			return o.failed("attach card: "+err.Error(), customerID, nil)
		}
		cardID = &card.CardID
	}

	// Step 3: the charge itself.
	charge, err := o.gateway.CreateCharge(ctx, gateway.CreateChargeRequest{
		Amount:     amount,
		CustomerID: *customerID,
		CardID:     *cardID,
	})
	if err != nil {
		return o.failed("create charge: "+err.Error(), customerID, cardID)
	}
	if charge.Status != gateway.ChargeStatusSucceeded {
		return o.failed("charge not successful: "+charge.Status, customerID, cardID)
	}

	if o.debug {
		logger.Debug("charge succeeded", map[string]interface{}{
			"charge_id": charge.ChargeID,
			"amount":    amount.StringFixed(2),
		})
	}

	return model.ChargeResult{
		Status:     model.StatusPaid,
		Reference:  &charge.ChargeID,
		CustomerID: customerID,
		CardID:     cardID,
	}
}

func (o *ChargeOrchestrator) failed(reason string, customerID, cardID *string) model.ChargeResult {
	logger.Warn("payment charge failed", map[string]interface{}{"reason": reason})
	return model.ChargeResult{
		Status:        model.StatusFailed,
		FailureReason: &reason,
		CustomerID:    customerID,
		CardID:        cardID,
	}
}
