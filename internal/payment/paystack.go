package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zomujo/telemed-api/internal/config"
	"github.com/zomujo/telemed-api/pkg/circuitbreaker"
)

// Gateway talks to the card-processing provider over HTTPS. Calls block and
// are not retried; callers decide what a failure means for their flow.
type Gateway interface {
	Initialize(ctx context.Context, email string, amount int64) (*InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*VerifyResponse, error)
	ListBanks(ctx context.Context) ([]Bank, error)
	CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (string, error)
	Transfer(ctx context.Context, recipientCode string, amount int64, reason string) (string, error)
}

type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type gateway struct {
	baseURL   string
	secretKey string
	currency  string
	client    *http.Client
	breaker   *circuitbreaker.CircuitBreaker
}

func NewGateway(cfg config.PaymentConfig) Gateway {
	return &gateway{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		currency:  cfg.Currency,
		client:    &http.Client{Timeout: 30 * time.Second},
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "payment-gateway",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
	}
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (g *gateway) Initialize(ctx context.Context, email string, amount int64) (*InitializeResponse, error) {
	body := map[string]interface{}{
		"email":    email,
		"amount":   amount,
		"currency": g.currency,
	}

	var resp InitializeResponse
	if err := g.do(ctx, http.MethodPost, "/transaction/initialize", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to initialize transaction: %w", err)
	}
	return &resp, nil
}

func (g *gateway) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := g.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to verify transaction: %w", err)
	}
	return &resp, nil
}

func (g *gateway) ListBanks(ctx context.Context) ([]Bank, error) {
	var banks []Bank
	if err := g.do(ctx, http.MethodGet, "/bank?currency="+g.currency, nil, &banks); err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

func (g *gateway) CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (string, error) {
	body := map[string]interface{}{
		"type":           "nuban",
		"name":           name,
		"account_number": accountNumber,
		"bank_code":      bankCode,
		"currency":       g.currency,
	}

	var resp struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := g.do(ctx, http.MethodPost, "/transferrecipient", body, &resp); err != nil {
		return "", fmt.Errorf("failed to create transfer recipient: %w", err)
	}
	return resp.RecipientCode, nil
}

func (g *gateway) Transfer(ctx context.Context, recipientCode string, amount int64, reason string) (string, error) {
	body := map[string]interface{}{
		"source":    "balance",
		"recipient": recipientCode,
		"amount":    amount,
		"reason":    reason,
	}

	var resp struct {
		TransferCode string `json:"transfer_code"`
	}
	if err := g.do(ctx, http.MethodPost, "/transfer", body, &resp); err != nil {
		return "", fmt.Errorf("failed to initiate transfer: %w", err)
	}
	return resp.TransferCode, nil
}

func (g *gateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	return g.breaker.Execute(func() error {
		return g.doOnce(ctx, method, path, body, out)
	})
}

func (g *gateway) doOnce(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !envelope.Status {
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, envelope.Message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
