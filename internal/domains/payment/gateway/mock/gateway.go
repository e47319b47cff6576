package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"bookings-backend/internal/domains/payment/gateway"
)

// MockGateway is an in-memory gateway for tests and local development. The
// Fail*/Decline knobs steer each step.
type MockGateway struct {
	FailCustomer  bool
	FailToken     bool
	FailCard      bool
	FailCharge    bool // transport-level error
	DeclineCharge bool // charge completes but does not succeed

	counter atomic.Int64

	// Captures for assertions.
	LastChargeAmount   string
	LastChargeCustomer string
	ChargeCalls        int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

var _ gateway.Gateway = (*MockGateway)(nil)

func (m *MockGateway) CreateCustomer(ctx context.Context, req gateway.CreateCustomerRequest) (*gateway.CreateCustomerResponse, error) {
	if m.FailCustomer {
		return nil, fmt.Errorf("mock: customer creation failed")
	}
	return &gateway.CreateCustomerResponse{
		Success:    true,
		CustomerID: fmt.Sprintf("cus_mock_%d", m.counter.Add(1)),
	}, nil
}

func (m *MockGateway) CreateCardToken(ctx context.Context) (*gateway.CardTokenResponse, error) {
	if m.FailToken {
		return nil, fmt.Errorf("mock: token creation failed")
	}
	return &gateway.CardTokenResponse{Success: true, TokenID: "tok_visa_sandbox"}, nil
}

func (m *MockGateway) AddNewCard(ctx context.Context, req gateway.AddCardRequest) (*gateway.AddCardResponse, error) {
	if m.FailCard {
		return nil, fmt.Errorf("mock: add card failed")
	}
	return &gateway.AddCardResponse{
		Success:  true,
		CardID:   fmt.Sprintf("card_mock_%d", m.counter.Add(1)),
		Brand:    "visa",
		Last4:    "4242",
		ExpMonth: 12,
		ExpYear:  2030,
	}, nil
}

func (m *MockGateway) CreateCharge(ctx context.Context, req gateway.CreateChargeRequest) (*gateway.ChargeResponse, error) {
	m.ChargeCalls++
	m.LastChargeAmount = req.Amount.StringFixed(2)
	m.LastChargeCustomer = req.CustomerID

	if m.FailCharge {
		return nil, fmt.Errorf("mock: charge request failed")
	}
	if m.DeclineCharge {
		return &gateway.ChargeResponse{Status: "card_declined", ChargeID: ""}, nil
	}
	return &gateway.ChargeResponse{
		Status:   gateway.ChargeStatusSucceeded,
		ChargeID: fmt.Sprintf("ch_mock_%d", m.counter.Add(1)),
	}, nil
}

func (m *MockGateway) GetPaymentDetails(ctx context.Context, reference string) (map[string]interface{}, error) {
	return map[string]interface{}{
		"id":     reference,
		"status": gateway.ChargeStatusSucceeded,
	}, nil
}
