package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/event"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/repository"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

// CatalogPage is the catalog query result. Its JSON shape is the public
// list-endpoint contract.
type CatalogPage struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// ProductService implements the business logic for catalog operations.
type ProductService struct {
	repo     repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ProductInput holds the full catalog field set. Create and the
// full-replace update share it.
type ProductInput struct {
	Name          string
	ImageURL      string
	Images        []string
	Description   string
	Category      string
	Price         int64
	OriginalPrice *int64
	Stock         int
	Colors        []string
	Sizes         []string
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return apperrors.InvalidInput("product name is required")
	}
	if in.Price < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	if in.Stock < 0 {
		return apperrors.InvalidInput("stock must not be negative")
	}
	return nil
}

// List runs a catalog query and returns the page of matching products along
// with the total page count.
func (s *ProductService) List(ctx context.Context, q catalog.Query) (*CatalogPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = catalog.DefaultPageSize
	}
	if q.PageSize > catalog.MaxPageSize {
		q.PageSize = catalog.MaxPageSize
	}

	products, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &CatalogPage{
		Products: products,
		Page:     q.Page,
		Pages:    catalog.PageCount(total, q.PageSize),
	}, nil
}

// Get retrieves a product with its reviews.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Create adds a new product to the catalog.
func (s *ProductService) Create(ctx context.Context, userID string, input *ProductInput) (*domain.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          input.Name,
		ImageURL:      input.ImageURL,
		Images:        input.Images,
		Description:   input.Description,
		Category:      input.Category,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Stock:         input.Stock,
		Colors:        input.Colors,
		Sizes:         input.Sizes,
		Reviews:       []domain.Review{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// Update replaces the full catalog field set of an existing product. All
// fields are required; rating, review count, and reviews are untouched.
func (s *ProductService) Update(ctx context.Context, id string, input *ProductInput) (*domain.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	product.Name = input.Name
	product.ImageURL = input.ImageURL
	product.Images = input.Images
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.Stock = input.Stock
	product.Colors = input.Colors
	product.Sizes = input.Sizes

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// Delete removes a product by its ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
