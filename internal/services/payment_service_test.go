// internal/services/payment_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamestore-backend/internal/config"
	"github.com/gamevault/gamestore-backend/internal/models"
)

type fakeStrategy struct {
	method   models.PaymentMethod
	failures int
	declined bool
	attempts int
}

func (f *fakeStrategy) Method() models.PaymentMethod { return f.method }

func (f *fakeStrategy) Pay(ctx context.Context, order *models.Order) (*PaymentResult, error) {
	f.attempts++
	if f.declined {
		return nil, ErrPaymentDeclined
	}
	if f.attempts <= f.failures {
		return nil, errors.New("terminal timeout")
	}
	return &PaymentResult{Method: f.method, Reference: "ref-1"}, nil
}

func newTestPaymentService(maxRetries int, strategies ...paymentStrategy) *PaymentService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := &PaymentService{
		config:     &config.Config{Payment: config.PaymentConfig{MaxRetries: maxRetries}},
		strategies: make(map[models.PaymentMethod]paymentStrategy),
		logger:     logrus.NewEntry(logger),
	}
	for _, strategy := range strategies {
		s.strategies[strategy.Method()] = strategy
	}
	return s
}

func TestPayUnsupportedMethod(t *testing.T) {
	service := newTestPaymentService(3)

	_, err := service.Pay(context.Background(), &models.Order{}, models.PaymentMethodVisa)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported payment method")
}

func TestPayRetriesTransientFailures(t *testing.T) {
	strategy := &fakeStrategy{method: models.PaymentMethodIBox, failures: 1}
	service := newTestPaymentService(2, strategy)

	result, err := service.Pay(context.Background(), &models.Order{}, models.PaymentMethodIBox)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", result.Reference)
	assert.Equal(t, 2, strategy.attempts)
}

func TestPayDeclinedNeverRetried(t *testing.T) {
	strategy := &fakeStrategy{method: models.PaymentMethodVisa, declined: true}
	service := newTestPaymentService(5, strategy)

	_, err := service.Pay(context.Background(), &models.Order{}, models.PaymentMethodVisa)
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Equal(t, 1, strategy.attempts)
}

func TestPayGivesUpAfterMaxRetries(t *testing.T) {
	strategy := &fakeStrategy{method: models.PaymentMethodIBox, failures: 10}
	service := newTestPaymentService(1, strategy)

	_, err := service.Pay(context.Background(), &models.Order{}, models.PaymentMethodIBox)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1 attempts")
	assert.Equal(t, 1, strategy.attempts)
}

func TestVisaIntentParamsCarryOrderMetadata(t *testing.T) {
	strategy := &visaStrategy{}
	order := &models.Order{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Details:   []models.OrderDetail{{Price: 12.5, Quantity: 2}},
	}

	params := strategy.intentParams(context.Background(), order)

	require.NotNil(t, params.Amount)
	assert.Equal(t, int64(2500), *params.Amount)
	assert.Equal(t, order.ID.String(), params.Metadata["order_id"])
}

func TestBankStrategyIssuesInvoice(t *testing.T) {
	strategy := &bankStrategy{account: "UA12 3456 7890"}

	order := &models.Order{
		Details: []models.OrderDetail{{Price: 10, Quantity: 2}},
	}

	result, err := strategy.Pay(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodBank, result.Method)
	assert.True(t, strings.HasPrefix(result.InvoiceNumber, "INV-"))
	assert.Equal(t, result.InvoiceNumber, result.Reference)
	assert.Contains(t, result.Instructions, "UA12 3456 7890")
	assert.Contains(t, result.Instructions, "20.00")
}
