package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freelancehub/pkg/logger"
)

// StripePaymentService talks to the Stripe Checkout API over HTTP.
type StripePaymentService struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripePaymentService(secretKey string) *StripePaymentService {
	return &StripePaymentService{
		secretKey: secretKey,
		baseURL:   "https://api.stripe.com/v1",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeSessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	PaymentIntent string `json:"payment_intent"`
}

func (s *StripePaymentService) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	logger.Info("Creating checkout session for order %s, amount %.2f", req.OrderID, req.Amount)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toCents(req.Amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", req.Title)
	if req.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", req.Description)
	}
	if req.BuyerEmail != "" {
		form.Set("customer_email", req.BuyerEmail)
	}
	form.Set("metadata[order_id]", req.OrderID)

	body, err := s.do(ctx, "POST", "/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	var resp stripeSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session response: %v", err)
	}

	logger.Info("Checkout session created: %s", resp.ID)

	return &CheckoutSession{
		ID:              resp.ID,
		URL:             resp.URL,
		PaymentStatus:   resp.PaymentStatus,
		PaymentIntentID: resp.PaymentIntent,
	}, nil
}

func (s *StripePaymentService) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	body, err := s.do(ctx, "GET", "/checkout/sessions/"+sessionID, nil)
	if err != nil {
		return nil, err
	}

	var resp stripeSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %v", err)
	}

	return &CheckoutSession{
		ID:              resp.ID,
		URL:             resp.URL,
		PaymentStatus:   resp.PaymentStatus,
		PaymentIntentID: resp.PaymentIntent,
	}, nil
}

func (s *StripePaymentService) do(ctx context.Context, method, path string, reqBody io.Reader) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.SetBasicAuth(s.secretKey, "")
	if method == "POST" {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Stripe API error (%d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("stripe API error: %s", string(body))
	}

	return body, nil
}

// toCents converts a currency amount to the smallest unit the provider
// expects.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
