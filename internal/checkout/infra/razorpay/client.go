package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/domain"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay Orders API with key-id/secret basic auth.
type Client struct {
	keyID   string
	secret  string
	baseURL string
	http    *http.Client
}

func NewClient(keyID, secret string) *Client {
	return &Client{
		keyID:   keyID,
		secret:  secret,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (domain.PaymentOrder, error) {
	if amountMinor <= 0 {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: amount must be positive, got %d", amountMinor)
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Description != "" {
			return domain.PaymentOrder{}, fmt.Errorf("razorpay: status %d: %s", resp.StatusCode, apiErr.Error.Description)
		}
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: status %d", resp.StatusCode)
	}

	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay: decode: %w", err)
	}
	return domain.PaymentOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Status:   out.Status,
	}, nil
}
