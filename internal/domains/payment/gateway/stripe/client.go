package stripe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookings-backend/internal/domains/payment/gateway"
)

// Client implements the Gateway interface against the Stripe-compatible HTTP
// API used by the sandbox and production environments.
type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) gateway.Gateway {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateCustomer(ctx context.Context, req gateway.CreateCustomerRequest) (*gateway.CreateCustomerResponse, error) {
	var resp gateway.CreateCustomerResponse
	if err := c.post(ctx, "/v1/customers", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("create customer rejected: %s", resp.Message)
	}
	return &resp, nil
}

func (c *Client) CreateCardToken(ctx context.Context) (*gateway.CardTokenResponse, error) {
	// The sandbox accepts only the fixed test token; card details never
	// transit this service in either environment.
	if c.config.Sandbox {
		return &gateway.CardTokenResponse{Success: true, TokenID: SandboxCardToken}, nil
	}

	var resp gateway.CardTokenResponse
	if err := c.post(ctx, "/v1/tokens", map[string]string{}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("create card token rejected")
	}
	return &resp, nil
}

func (c *Client) AddNewCard(ctx context.Context, req gateway.AddCardRequest) (*gateway.AddCardResponse, error) {
	var resp gateway.AddCardResponse
	if err := c.post(ctx, "/v1/customers/"+req.CustomerID+"/cards", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("add card rejected")
	}
	return &resp, nil
}

func (c *Client) CreateCharge(ctx context.Context, req gateway.CreateChargeRequest) (*gateway.ChargeResponse, error) {
	body := map[string]interface{}{
		"amount":      req.Amount.StringFixed(2),
		"customer_id": req.CustomerID,
		"card_id":     req.CardID,
	}

	var resp gateway.ChargeResponse
	if err := c.post(ctx, "/v1/charges", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetPaymentDetails(ctx context.Context, reference string) (map[string]interface{}, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL+"/v1/charges/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	if httpResp.StatusCode >= 400 {
		return nil, fmt.Errorf("gateway returned %d: %s", httpResp.StatusCode, string(raw))
	}

	var details map[string]interface{}
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return details, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}
	if httpResp.StatusCode >= 400 {
		return fmt.Errorf("gateway returned %d: %s", httpResp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}
