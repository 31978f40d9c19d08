package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/database"
	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

const productColumns = `id, user_id, name, image_url, images, description, category,
		price, original_price, stock, colors, sizes, rating, num_reviews, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, user_id, name, image_url, images, description, category,
			price, original_price, stock, colors, sizes, rating, num_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		p.ImageURL,
		p.Images,
		p.Description,
		p.Category,
		p.Price,
		p.OriginalPrice,
		p.Stock,
		p.Colors,
		p.Sizes,
		p.Rating,
		p.NumReviews,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "id", p.ID)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID with reviews attached.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(productFields(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	reviews, err := r.loadReviews(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews[p.ID]
	if p.Reviews == nil {
		p.Reviews = []domain.Review{}
	}

	return &p, nil
}

// List returns the query's page of products and the total match count.
// Filtering and ordering happen in SQL; reviews are batch-loaded for the
// returned page only.
func (r *ProductRepository) List(ctx context.Context, q catalog.Query) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if q.Keyword != "" {
		// Keyword matches product names only on the server path.
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+q.Keyword+"%")
		argIndex++
	}

	if len(q.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, q.Categories)
		argIndex++
	}

	if q.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *q.MaxPrice)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() yields the total match count in the same query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, orderBy(q.Sort), argIndex, argIndex+1,
	)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	offset := 0
	if q.Page > 1 {
		offset = (q.Page - 1) * pageSize
	}
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		fields := append(productFields(&p), &totalCount)
		if err := rows.Scan(fields...); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		// An OFFSET past the last match returns no rows, and with them no
		// window total. Count separately so page math stays correct.
		if offset > 0 {
			rows.Close()
			countQuery := fmt.Sprintf("SELECT count(*) FROM products %s", whereClause)
			if err := r.pool.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&totalCount); err != nil {
				return nil, 0, fmt.Errorf("count products: %w", err)
			}
		}
		return []domain.Product{}, totalCount, nil
	}

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	reviewsByProduct, err := r.loadReviews(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i].Reviews = reviewsByProduct[products[i].ID]
		if products[i].Reviews == nil {
			products[i].Reviews = []domain.Review{}
		}
	}

	return products, totalCount, nil
}

// Update replaces the full catalog field set of an existing product. The
// derived rating and num_reviews columns are owned by the review write path
// and left untouched here.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, image_url = $2, images = $3, description = $4, category = $5,
		    price = $6, original_price = $7, stock = $8, colors = $9, sizes = $10, updated_at = $11
		WHERE id = $12`

	ct, err := r.pool.Exec(ctx, query,
		p.Name,
		p.ImageURL,
		p.Images,
		p.Description,
		p.Category,
		p.Price,
		p.OriginalPrice,
		p.Stock,
		p.Colors,
		p.Sizes,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product from the database by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// loadReviews fetches reviews for the given products, oldest first, grouped
// by product id.
func (r *ProductRepository) loadReviews(ctx context.Context, productIDs []string) (map[string][]domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, username, rating, comment, created_at
		FROM product_reviews
		WHERE product_id = ANY($1)
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[string][]domain.Review)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Username, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		byProduct[rv.ProductID] = append(byProduct[rv.ProductID], rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return byProduct, nil
}

// orderBy maps a sort order to a deterministic ORDER BY clause.
func orderBy(sort string) string {
	// The trailing id term breaks ties between rows sharing a sort key and
	// timestamp, so consecutive page queries never shuffle them.
	switch sort {
	case domain.SortRatingDesc:
		return "rating DESC, created_at DESC, id DESC"
	case domain.SortPriceAsc:
		return "price ASC, created_at DESC, id DESC"
	case domain.SortPriceDesc:
		return "price DESC, created_at DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// productFields returns scan destinations matching productColumns order.
func productFields(p *domain.Product) []any {
	return []any{
		&p.ID, &p.UserID, &p.Name, &p.ImageURL, &p.Images, &p.Description, &p.Category,
		&p.Price, &p.OriginalPrice, &p.Stock, &p.Colors, &p.Sizes, &p.Rating, &p.NumReviews,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
