package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

func newTestOrderService(repo *mockOrderRepository) *OrderService {
	return NewOrderService(repo, newTestProducer(), newTestLogger())
}

func testShippingAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Address:    "1 Main St",
		City:       "Chennai",
		PostalCode: "600001",
		Country:    "IN",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	input := CreateOrderInput{
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Canvas Sneaker", Price: 4500, Quantity: 2},
			{ProductID: "p2", Name: "Trail Boot", Price: 8900, Quantity: 1},
		},
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   "card",
		ShippingPrice:   500,
	}

	order, err := svc.Create(ctx, "user-1", &input)

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, int64(17900), order.ItemsPrice) // 2*4500 + 8900
	assert.Equal(t, int64(18400), order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.NotZero(t, order.CreatedAt)

	repo.AssertExpectations(t)
}

func TestCreateOrder_NoItems(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	input := CreateOrderInput{
		Items:           []domain.OrderItem{},
		ShippingAddress: testShippingAddress(),
	}

	order, err := svc.Create(ctx, "user-1", &input)

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateOrder_ZeroQuantity(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	input := CreateOrderInput{
		Items: []domain.OrderItem{
			{ProductID: "p1", Price: 4500, Quantity: 0},
		},
		ShippingAddress: testShippingAddress(),
	}

	order, err := svc.Create(ctx, "user-1", &input)

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateOrder_NegativeShipping(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	input := CreateOrderInput{
		Items: []domain.OrderItem{
			{ProductID: "p1", Price: 4500, Quantity: 1},
		},
		ShippingAddress: testShippingAddress(),
		ShippingPrice:   -100,
	}

	order, err := svc.Create(ctx, "user-1", &input)

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetOrder_Owner(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", UserID: "user-1"}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)

	got, err := svc.Get(ctx, "order-1", "user-1", false)

	require.NoError(t, err)
	assert.Equal(t, order, got)

	repo.AssertExpectations(t)
}

func TestGetOrder_OtherUserForbidden(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", UserID: "user-1"}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)

	got, err := svc.Get(ctx, "order-1", "user-2", false)

	assert.Nil(t, got)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	repo.AssertExpectations(t)
}

func TestGetOrder_AdminBypassesOwnership(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", UserID: "user-1"}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)

	got, err := svc.Get(ctx, "order-1", "admin-1", true)

	require.NoError(t, err)
	assert.Equal(t, order, got)

	repo.AssertExpectations(t)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "nonexistent").Return(nil, apperrors.ErrNotFound)

	got, err := svc.Get(ctx, "nonexistent", "user-1", false)

	assert.Nil(t, got)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestListMine_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	orders := []domain.Order{
		{ID: "order-2", UserID: "user-1"},
		{ID: "order-1", UserID: "user-1"},
	}

	repo.On("ListByUser", ctx, "user-1").Return(orders, nil)

	got, err := svc.ListMine(ctx, "user-1")

	require.NoError(t, err)
	assert.Len(t, got, 2)

	repo.AssertExpectations(t)
}

func TestMarkPaid_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", UserID: "user-1"}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	got, err := svc.MarkPaid(ctx, "order-1", "user-1", false)

	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	require.NotNil(t, got.PaidAt)
	assert.WithinDuration(t, time.Now().UTC(), *got.PaidAt, time.Minute)

	repo.AssertExpectations(t)
}

func TestMarkPaid_AlreadyPaidIsNoop(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	paidAt := time.Now().UTC().Add(-time.Hour)
	order := &domain.Order{ID: "order-1", UserID: "user-1", IsPaid: true, PaidAt: &paidAt}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)

	got, err := svc.MarkPaid(ctx, "order-1", "user-1", false)

	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.Equal(t, paidAt, *got.PaidAt)

	// No Update call expected.
	repo.AssertExpectations(t)
}

func TestMarkPaid_OtherUserForbidden(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", UserID: "user-1"}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)

	got, err := svc.MarkPaid(ctx, "order-1", "user-2", false)

	assert.Nil(t, got)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	repo.AssertExpectations(t)
}

func TestMarkDelivered_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", UserID: "user-1", IsPaid: true}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	got, err := svc.MarkDelivered(ctx, "order-1")

	require.NoError(t, err)
	assert.True(t, got.IsDelivered)
	require.NotNil(t, got.DeliveredAt)

	repo.AssertExpectations(t)
}

func TestMarkDelivered_AlreadyDeliveredIsNoop(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := newTestOrderService(repo)
	ctx := context.Background()

	deliveredAt := time.Now().UTC().Add(-time.Hour)
	order := &domain.Order{ID: "order-1", IsDelivered: true, DeliveredAt: &deliveredAt}

	repo.On("GetByID", ctx, "order-1").Return(order, nil)

	got, err := svc.MarkDelivered(ctx, "order-1")

	require.NoError(t, err)
	assert.Equal(t, deliveredAt, *got.DeliveredAt)

	repo.AssertExpectations(t)
}
