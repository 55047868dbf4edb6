// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/events"
	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	gameService         *GameService
	paymentService      *PaymentService
	notificationService *NotificationService
	publisher           *events.Publisher
	logger              *logrus.Entry
}

type AddBasketItemRequest struct {
	GameKey  string `json:"game_key" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required"`
}

type CheckoutResponse struct {
	Order   *models.Order  `json:"order"`
	Payment *PaymentResult `json:"payment"`
}

func NewOrderService(db *gorm.DB, gameService *GameService, paymentService *PaymentService, notificationService *NotificationService, publisher *events.Publisher) *OrderService {
	return &OrderService{
		db:                  db,
		gameService:         gameService,
		paymentService:      paymentService,
		notificationService: notificationService,
		publisher:           publisher,
		logger:              logrus.WithField("component", "order_service"),
	}
}

// GetBasket returns the customer's open order, creating it on first use.
func (s *OrderService) GetBasket(ctx context.Context, customerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Details").
		Where("customer_id = ? AND status = ?", customerID, models.OrderStatusOpen).
		First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	order = models.Order{
		CustomerID: customerID,
		Status:     models.OrderStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create basket: %w", err)
	}
	return &order, nil
}

// AddItem puts a game into the basket. Adding a legacy-only key reconciles
// the game first, so the basket line always points at a primary-store game.
func (s *OrderService) AddItem(ctx context.Context, customerID uuid.UUID, req *AddBasketItemRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	game, err := s.gameService.GetGameByKey(ctx, req.GameKey)
	if err != nil {
		return nil, err
	}
	if game.Discontinued {
		return nil, errors.New("game is discontinued")
	}
	if game.UnitsInStock < req.Quantity {
		return nil, errors.New("game is out of stock")
	}

	order, err := s.GetBasket(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var detail models.OrderDetail
	err = s.db.WithContext(ctx).
		Where("order_id = ? AND game_key = ?", order.ID, game.Key).
		First(&detail).Error
	switch {
	case err == nil:
		detail.Quantity += req.Quantity
		detail.Price = game.Price
		if err := s.db.WithContext(ctx).Save(&detail).Error; err != nil {
			return nil, fmt.Errorf("failed to update basket line: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		detail = models.OrderDetail{
			OrderID:  order.ID,
			GameKey:  game.Key,
			Price:    game.Price,
			Quantity: req.Quantity,
		}
		if err := s.db.WithContext(ctx).Create(&detail).Error; err != nil {
			return nil, fmt.Errorf("failed to add basket line: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.GetBasket(ctx, customerID)
}

func (s *OrderService) RemoveItem(ctx context.Context, customerID uuid.UUID, gameKey string) (*models.Order, error) {
	order, err := s.GetBasket(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).
		Where("order_id = ? AND game_key = ?", order.ID, gameKey).
		Delete(&models.OrderDetail{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove basket line: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("game is not in the basket")
	}

	return s.GetBasket(ctx, customerID)
}

// Checkout charges the basket and closes it. A bank transfer keeps the order
// open with an invoice attached until the transfer is confirmed; terminal
// and card payments mark it paid immediately.
func (s *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, req *CheckoutRequest) (*CheckoutResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.GetBasket(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(order.Details) == 0 {
		return nil, errors.New("basket is empty")
	}

	if err := s.checkStock(ctx, order); err != nil {
		return nil, err
	}

	payment, err := s.paymentService.Pay(ctx, order, req.PaymentMethod)
	if err != nil {
		s.publisher.Publish(ctx, events.OrderEvent{
			Type:       events.TypePaymentFailed,
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Method:     string(req.PaymentMethod),
			Reason:     err.Error(),
		})
		return nil, err
	}

	updates := map[string]interface{}{
		"payment_method":    req.PaymentMethod,
		"payment_reference": payment.Reference,
		"invoice_number":    payment.InvoiceNumber,
	}

	paid := req.PaymentMethod != models.PaymentMethodBank
	now := time.Now()
	if paid {
		updates["status"] = models.OrderStatusPaid
		updates["ordered_at"] = now
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		if paid {
			return s.decrementStock(tx, order)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	eventType := events.TypeOrderPlaced
	if paid {
		eventType = events.TypeOrderPaid
	}
	s.publisher.Publish(ctx, events.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total(),
		Method:     string(req.PaymentMethod),
	})

	if paid {
		go s.sendReceipt(order)
	}

	order, err = s.orderByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &CheckoutResponse{Order: order, Payment: payment}, nil
}

// ConfirmBankTransfer marks a bank-invoiced order paid once the transfer
// arrives. Manager action.
func (s *OrderService) ConfirmBankTransfer(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusOpen || order.PaymentMethod != models.PaymentMethodBank {
		return nil, errors.New("order is not awaiting a bank transfer")
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(map[string]interface{}{
			"status":     models.OrderStatusPaid,
			"ordered_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return s.decrementStock(tx, order)
	}); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.OrderEvent{
		Type:       events.TypeOrderPaid,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total(),
		Method:     string(models.PaymentMethodBank),
	})
	go s.sendReceipt(order)

	return s.orderByID(ctx, orderID)
}

// ShipOrder marks a paid order shipped. Manager action.
func (s *OrderService) ShipOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, errors.New("order is not paid")
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(order).Updates(map[string]interface{}{
		"status":     models.OrderStatusShipped,
		"shipped_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to ship order: %w", err)
	}

	s.publisher.Publish(ctx, events.OrderEvent{
		Type:       events.TypeOrderShipped,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
	})

	return s.orderByID(ctx, orderID)
}

func (s *OrderService) CancelOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, errors.New("order not found")
	}
	if order.Status != models.OrderStatusOpen {
		return nil, errors.New("only open orders can be cancelled")
	}

	if err := s.db.WithContext(ctx).Model(order).
		Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	return s.orderByID(ctx, orderID)
}

// GetOrderHistory lists a customer's non-basket orders, newest first.
func (s *OrderService) GetOrderHistory(ctx context.Context, customerID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ? AND status <> ?", customerID, models.OrderStatusOpen)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	sorted := utils.ApplySort(query.Preload("Details"), params, []string{"created_at", "ordered_at", "status"})
	if err := utils.ApplyPagination(sorted, params).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// ListOrders is the manager view across all customers, filterable by status.
func (s *OrderService) ListOrders(ctx context.Context, status string, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	sorted := utils.ApplySort(query.Preload("Details").Preload("Customer"), params, []string{"created_at", "ordered_at", "status"})
	if err := utils.ApplyPagination(sorted, params).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (s *OrderService) orderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Details").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) checkStock(ctx context.Context, order *models.Order) error {
	for _, detail := range order.Details {
		var game models.Game
		if err := s.db.WithContext(ctx).Where("key = ?", detail.GameKey).First(&game).Error; err != nil {
			return fmt.Errorf("failed to check stock for %q: %w", detail.GameKey, err)
		}
		if game.UnitsInStock < detail.Quantity {
			return fmt.Errorf("game %q is out of stock", detail.GameKey)
		}
	}
	return nil
}

func (s *OrderService) decrementStock(tx *gorm.DB, order *models.Order) error {
	for _, detail := range order.Details {
		result := tx.Model(&models.Game{}).
			Where("key = ? AND units_in_stock >= ?", detail.GameKey, detail.Quantity).
			UpdateColumn("units_in_stock", gorm.Expr("units_in_stock - ?", detail.Quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to decrement stock for %q: %w", detail.GameKey, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("game %q is out of stock", detail.GameKey)
		}
	}
	return nil
}

func (s *OrderService) sendReceipt(order *models.Order) {
	var customer models.User
	if err := s.db.First(&customer, order.CustomerID).Error; err != nil {
		s.logger.WithError(err).Warn("failed to load customer for receipt")
		return
	}
	if err := s.notificationService.SendOrderReceipt(&customer, order); err != nil {
		s.logger.WithError(err).Warn("failed to send order receipt")
	}
}
