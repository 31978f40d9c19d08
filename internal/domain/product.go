package domain

import (
	"time"
)

// Sort order constants for the product catalog.
const (
	SortNewest     = "newest"
	SortRatingDesc = "rating_desc"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
)

// Product represents a catalog item. Rating and NumReviews are derived from
// the attached reviews and recomputed on every review write.
type Product struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	ImageURL      string    `json:"image_url"`
	Images        []string  `json:"images,omitempty"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"original_price,omitempty"`
	Stock         int       `json:"stock"`
	Colors        []string  `json:"colors,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	Rating        float64   `json:"rating"`
	NumReviews    int       `json:"num_reviews"`
	Reviews       []Review  `json:"reviews"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidSorts returns the set of accepted sort orders.
func ValidSorts() []string {
	return []string{SortNewest, SortRatingDesc, SortPriceAsc, SortPriceDesc}
}

// IsValidSort checks whether the given string is an accepted sort order.
func IsValidSort(sort string) bool {
	for _, s := range ValidSorts() {
		if s == sort {
			return true
		}
	}
	return false
}
