// internal/services/payment_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/config"
	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

// ErrPaymentDeclined is terminal: retrying cannot succeed.
var ErrPaymentDeclined = errors.New("payment declined")

// PaymentResult is what the checkout records on the order.
type PaymentResult struct {
	Method        models.PaymentMethod `json:"method"`
	Reference     string               `json:"reference"`
	InvoiceNumber string               `json:"invoice_number,omitempty"`
	ClientSecret  string               `json:"client_secret,omitempty"`
	Instructions  string               `json:"instructions,omitempty"`
}

// paymentStrategy is one payment method. Strategies are stateless; the
// service retries transient failures up to the configured bound.
type paymentStrategy interface {
	Method() models.PaymentMethod
	Pay(ctx context.Context, order *models.Order) (*PaymentResult, error)
}

type PaymentService struct {
	db         *gorm.DB
	config     *config.Config
	strategies map[models.PaymentMethod]paymentStrategy
	logger     *logrus.Entry
}

func NewPaymentService(db *gorm.DB, cfg *config.Config) *PaymentService {
	// Set Stripe API key
	stripe.Key = cfg.Payment.StripeSecretKey

	s := &PaymentService{
		db:         db,
		config:     cfg,
		strategies: make(map[models.PaymentMethod]paymentStrategy),
		logger:     logrus.WithField("component", "payment_service"),
	}

	client := &http.Client{Timeout: 10 * time.Second}
	for _, strategy := range []paymentStrategy{
		&bankStrategy{account: cfg.Payment.BankInvoiceAccount},
		&iboxStrategy{terminalURL: cfg.Payment.IBoxTerminalURL, apiKey: cfg.Payment.IBoxAPIKey, client: client},
		&visaStrategy{},
	} {
		s.strategies[strategy.Method()] = strategy
	}
	return s
}

// Pay runs the strategy for the chosen method, retrying transient failures
// up to the configured bound. A declined payment is never retried.
func (s *PaymentService) Pay(ctx context.Context, order *models.Order, method models.PaymentMethod) (*PaymentResult, error) {
	strategy, ok := s.strategies[method]
	if !ok {
		return nil, fmt.Errorf("unsupported payment method %q", method)
	}

	maxAttempts := s.config.Payment.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := strategy.Pay(ctx, order)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, ErrPaymentDeclined) {
			return nil, err
		}
		lastErr = err
		s.logger.WithError(err).WithFields(logrus.Fields{
			"order_id": order.ID,
			"method":   method,
			"attempt":  attempt,
		}).Warn("payment attempt failed")

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, fmt.Errorf("payment failed after %d attempts: %w", maxAttempts, lastErr)
}

// bankStrategy issues an invoice for a wire transfer. Nothing external is
// called; the order stays open until the transfer is confirmed manually.
type bankStrategy struct {
	account string
}

func (b *bankStrategy) Method() models.PaymentMethod { return models.PaymentMethodBank }

func (b *bankStrategy) Pay(ctx context.Context, order *models.Order) (*PaymentResult, error) {
	invoice, err := utils.GenerateInvoiceNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return &PaymentResult{
		Method:        models.PaymentMethodBank,
		Reference:     invoice,
		InvoiceNumber: invoice,
		Instructions: fmt.Sprintf("Transfer %.2f to account %s quoting invoice %s",
			order.Total(), b.account, invoice),
	}, nil
}

// iboxStrategy charges through an IBox payment terminal.
type iboxStrategy struct {
	terminalURL string
	apiKey      string
	client      *http.Client
}

func (i *iboxStrategy) Method() models.PaymentMethod { return models.PaymentMethodIBox }

func (i *iboxStrategy) Pay(ctx context.Context, order *models.Order) (*PaymentResult, error) {
	if i.terminalURL == "" {
		return nil, errors.New("ibox terminal not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID.String(),
		"amount":   order.Total(),
		"currency": "USD",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.terminalURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+i.apiKey)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ibox terminal unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, ErrPaymentDeclined
	default:
		return nil, fmt.Errorf("ibox terminal returned status %d", resp.StatusCode)
	}

	var receipt struct {
		ReceiptID string `json:"receipt_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("failed to decode ibox receipt: %w", err)
	}

	return &PaymentResult{
		Method:    models.PaymentMethodIBox,
		Reference: receipt.ReceiptID,
	}, nil
}

// visaStrategy charges a card through Stripe.
type visaStrategy struct{}

func (v *visaStrategy) Method() models.PaymentMethod { return models.PaymentMethodVisa }

func (v *visaStrategy) Pay(ctx context.Context, order *models.Order) (*PaymentResult, error) {
	intent, err := paymentintent.New(v.intentParams(ctx, order))
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, stripeErr.Msg)
		}
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentResult{
		Method:       models.PaymentMethodVisa,
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// intentParams carries the order id as intent metadata so a Stripe dashboard
// entry can be traced back to the order.
func (v *visaStrategy) intentParams(ctx context.Context, order *models.Order) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.Total() * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.Context = ctx
	return params
}

// ConfirmVisa verifies a Stripe payment intent has succeeded before the
// order is marked paid.
func (s *PaymentService) ConfirmVisa(reference string) error {
	intent, err := paymentintent.Get(reference, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent status is %s", intent.Status)
	}
	return nil
}
