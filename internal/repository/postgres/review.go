package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/database"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

// ReviewRepository implements review persistence using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Add appends a review and recomputes the product's rating and review count
// in one transaction. The product row is locked first so two concurrent
// reviews cannot interleave their recomputations and lose a write.
func (r *ReviewRepository) Add(ctx context.Context, review *domain.Review) (*domain.Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin review tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM products WHERE id = $1 FOR UPDATE`,
		review.ProductID,
	).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", review.ProductID)
		}
		return nil, fmt.Errorf("lock product row: %w", err)
	}

	var alreadyReviewed bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_reviews WHERE product_id = $1 AND user_id = $2)`,
		review.ProductID, review.UserID,
	).Scan(&alreadyReviewed)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if alreadyReviewed {
		return nil, apperrors.AlreadyReviewed(review.ProductID)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO product_reviews (id, product_id, user_id, username, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID, review.ProductID, review.UserID, review.Username,
		review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyReviewed(review.ProductID)
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	// Full recompute from the stored reviews rather than an incremental
	// adjustment of the previous mean.
	_, err = tx.Exec(ctx,
		`UPDATE products
		 SET rating = (SELECT AVG(rating) FROM product_reviews WHERE product_id = $1),
		     num_reviews = (SELECT COUNT(*) FROM product_reviews WHERE product_id = $1),
		     updated_at = $2
		 WHERE id = $1`,
		review.ProductID, review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("recompute product aggregates: %w", err)
	}

	var p domain.Product
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	if err := tx.QueryRow(ctx, query, review.ProductID).Scan(productFields(&p)...); err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT id, product_id, user_id, username, rating, comment, created_at
		 FROM product_reviews
		 WHERE product_id = $1
		 ORDER BY created_at ASC`,
		review.ProductID,
	)
	if err != nil {
		return nil, fmt.Errorf("reload reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Username, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		p.Reviews = append(p.Reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	rows.Close()

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit review tx: %w", err)
	}

	return &p, nil
}
