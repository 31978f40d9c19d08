package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/repository"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

// maxQuantityPerItem bounds a single cart line.
const maxQuantityPerItem = 99

// AddCartItemInput holds the parameters for adding an item to the cart.
type AddCartItemInput struct {
	ProductID string
	Quantity  int
	Color     string
	Size      string
}

// CartService implements shopping cart logic on top of the Redis-backed
// repository. Product details are snapshotted onto cart lines at add time.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// Get returns the user's cart. A missing cart is an empty cart.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return emptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddItem adds a product variant to the cart, merging quantities when the
// same (product, color, size) line already exists.
func (s *CartService) AddItem(ctx context.Context, userID string, input *AddCartItemInput) (*domain.Cart, error) {
	if input.Quantity < 1 || input.Quantity > maxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must be between 1 and %d", maxQuantityPerItem))
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product for cart: %w", err)
	}
	if product.Stock < input.Quantity {
		return nil, apperrors.InvalidInput("insufficient stock")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItemIndex(input.ProductID, input.Color, input.Size); i >= 0 {
		cart.Items[i].Quantity += input.Quantity
		if cart.Items[i].Quantity > maxQuantityPerItem {
			cart.Items[i].Quantity = maxQuantityPerItem
		}
		// Refresh the price snapshot on merge.
		cart.Items[i].Price = product.Price
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Price:     product.Price,
			Quantity:  input.Quantity,
			Color:     input.Color,
			Size:      input.Size,
		})
	}

	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart item added",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of an existing cart line. Quantity zero
// removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, color, size string, quantity int) (*domain.Cart, error) {
	if quantity < 0 || quantity > maxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must be between 0 and %d", maxQuantityPerItem))
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID, color, size)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", productID)
	}

	if quantity == 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return cart, nil
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID, color, size string) (*domain.Cart, error) {
	return s.UpdateQuantity(ctx, userID, productID, color, size, 0)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func emptyCart(userID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		UserID:    userID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
