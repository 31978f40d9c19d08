package repository

import (
	"context"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
)

// ProductRepository defines persistence operations for the product catalog.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product with its reviews attached.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns the products matching the query page along with the
	// total match count.
	List(ctx context.Context, q catalog.Query) ([]domain.Product, int, error)

	// Update replaces the full catalog field set of an existing product.
	// Derived rating fields and reviews are untouched.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	// Add appends a review and recomputes the product's aggregates inside
	// a single transaction that locks the product row. It returns the
	// updated product. ErrNotFound if the product is missing,
	// ErrAlreadyReviewed if the user has already reviewed it.
	Add(ctx context.Context, review *domain.Review) (*domain.Product, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
}

// CartRepository defines persistence operations for shopping carts.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
