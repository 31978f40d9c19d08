package postgres

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/database"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func int64Ptr(n int64) *int64 { return &n }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var productCols = []string{
	"id", "user_id", "name", "image_url", "images", "description", "category",
	"price", "original_price", "stock", "colors", "sizes", "rating", "num_reviews",
	"created_at", "updated_at",
}

var productColsWithCount = append(append([]string{}, productCols...), "total_count")

var reviewCols = []string{
	"id", "product_id", "user_id", "username", "rating", "comment", "created_at",
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:            "5f2b9c1e-0000-4000-8000-000000000001",
		UserID:        "5f2b9c1e-0000-4000-8000-0000000000aa",
		Name:          "Canvas Sneaker",
		ImageURL:      "/uploads/sneaker.jpg",
		Images:        []string{"/uploads/sneaker-2.jpg"},
		Description:   "Lightweight summer shoe",
		Category:      "Shoes",
		Price:         4500,
		OriginalPrice: int64Ptr(5900),
		Stock:         12,
		Colors:        []string{"white", "black"},
		Sizes:         []string{"41", "42"},
		Rating:        4.2,
		NumReviews:    5,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func productRow(p domain.Product) []any {
	return []any{
		p.ID, p.UserID, p.Name, p.ImageURL, p.Images, p.Description, p.Category,
		p.Price, p.OriginalPrice, p.Stock, p.Colors, p.Sizes, p.Rating, p.NumReviews,
		p.CreatedAt, p.UpdatedAt,
	}
}

func sampleReview() domain.Review {
	return domain.Review{
		ID:        "5f2b9c1e-0000-4000-8000-0000000000f1",
		ProductID: "5f2b9c1e-0000-4000-8000-000000000001",
		UserID:    "5f2b9c1e-0000-4000-8000-0000000000aa",
		Username:  "kathir",
		Rating:    5,
		Comment:   "Great fit.",
		CreatedAt: now,
	}
}

func reviewRow(r domain.Review) []any {
	return []any{r.ID, r.ProductID, r.UserID, r.Username, r.Rating, r.Comment, r.CreatedAt}
}
