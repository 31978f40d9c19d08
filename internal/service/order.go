package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/event"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/repository"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

// CreateOrderInput holds the parameters for placing an order.
type CreateOrderInput struct {
	Items           []domain.OrderItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
	ShippingPrice   int64
}

// OrderService implements order placement and fulfillment state changes.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Create places a new order for the given user. The items total and grand
// total are computed server-side from the submitted line items.
func (s *OrderService) Create(ctx context.Context, userID string, input *CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, apperrors.InvalidInput("item quantity must be at least 1")
		}
		if it.Price < 0 {
			return nil, apperrors.InvalidInput("item price must not be negative")
		}
	}
	if input.ShippingPrice < 0 {
		return nil, apperrors.InvalidInput("shipping price must not be negative")
	}

	order := &domain.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ShippingPrice:   input.ShippingPrice,
		CreatedAt:       time.Now().UTC(),
	}
	order.ItemsPrice = order.ItemsTotal()
	order.TotalPrice = order.ItemsPrice + order.ShippingPrice

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int64("total_price", order.TotalPrice),
	)

	return order, nil
}

// Get retrieves an order. Non-admin callers may only read their own orders.
func (s *OrderService) Get(ctx context.Context, id, callerID string, callerIsAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if !callerIsAdmin && order.UserID != callerID {
		return nil, apperrors.Forbidden("order belongs to another user")
	}

	return order, nil
}

// ListMine returns the caller's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// MarkPaid records a successful payment on an order.
func (s *OrderService) MarkPaid(ctx context.Context, id, callerID string, callerIsAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !callerIsAdmin && order.UserID != callerID {
		return nil, apperrors.Forbidden("order belongs to another user")
	}
	if order.IsPaid {
		return order, nil
	}

	now := time.Now().UTC()
	order.IsPaid = true
	order.PaidAt = &now

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	s.logger.InfoContext(ctx, "order paid",
		slog.String("order_id", order.ID),
	)

	return order, nil
}

// MarkDelivered records delivery on an order. Admin only; the handler
// enforces the role.
func (s *OrderService) MarkDelivered(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.IsDelivered {
		return order, nil
	}

	now := time.Now().UTC()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("mark order delivered: %w", err)
	}

	s.logger.InfoContext(ctx, "order delivered",
		slog.String("order_id", order.ID),
	)

	return order, nil
}
