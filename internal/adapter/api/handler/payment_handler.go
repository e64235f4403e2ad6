package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"freelancehub/internal/usecase"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
	"freelancehub/pkg/response"
)

type PaymentHandler struct {
	paymentUsecase *usecase.PaymentUsecase
	webhookSecret  string
}

func NewPaymentHandler(paymentUsecase *usecase.PaymentUsecase, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		webhookSecret:  webhookSecret,
	}
}

func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUsecase.CreateCheckout(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// ConfirmSession is the synchronous success-page path; it reaches the same
// state as the webhook would.
func (h *PaymentHandler) ConfirmSession(c echo.Context) error {
	uid := c.Get("uid").(string)

	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return response.Error(c, errors.BadRequest("session_id is required", nil))
	}

	order, err := h.paymentUsecase.ConfirmCheckoutSession(c.Request().Context(), uid, sessionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

// webhookEvent is the subset of the provider's event envelope we consume.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentIntent string `json:"payment_intent"`
		} `json:"object"`
	} `json:"data"`
}

// Webhook processes provider events. The signature is verified against the
// raw body before any parsing; unverified payloads are rejected outright.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read request body", err))
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if !h.verifySignature(body, signature) {
		logger.Warn("Webhook rejected: invalid signature")
		return response.Error(c, errors.Unauthorized("Invalid webhook signature", nil))
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return response.Error(c, errors.BadRequest("Invalid event payload", err))
	}

	ctx := c.Request().Context()

	switch event.Type {
	case "checkout.session.completed":
		err = h.paymentUsecase.HandleCheckoutCompleted(ctx, event.Data.Object.ID, event.Data.Object.PaymentIntent)
	case "payment_intent.payment_failed":
		err = h.paymentUsecase.HandlePaymentFailed(ctx, event.Data.Object.ID)
	default:
		logger.Debug("Ignoring webhook event type %s", event.Type)
	}

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"received": "true"})
}

// verifySignature checks the provider's "t=<ts>,v1=<hmac>" header: an
// HMAC-SHA256 of "<ts>.<payload>" keyed with the webhook secret.
func (h *PaymentHandler) verifySignature(payload []byte, header string) bool {
	if h.webhookSecret == "" || header == "" {
		return false
	}

	var timestamp string
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			timestamp = pair[1]
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(expected), []byte(signature)) {
			return true
		}
	}

	return false
}
