// Package catalog implements the filter, sort, and paginate pipeline shared
// by the HTTP query path and the in-memory storefront view.
package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
)

// DefaultPageSize is the fixed catalog page size.
const DefaultPageSize = 8

// MaxPageSize caps the optional pageSize override used by bulk consumers
// such as the storefront snapshot fetch.
const MaxPageSize = 100

// KeywordScope selects which product fields a keyword is matched against.
// The HTTP query path matches names only; the storefront view also searches
// descriptions.
type KeywordScope int

const (
	ScopeName KeywordScope = iota
	ScopeNameAndDescription
)

// Query is a parsed catalog query. A nil MaxPrice means no price constraint.
type Query struct {
	Keyword    string
	Categories []string
	MaxPrice   *int64
	Sort       string
	Page       int
	PageSize   int
}

// ParseQuery builds a Query from URL parameters. Malformed values fail
// closed: an unparseable pageNumber falls back to page 1, an unparseable
// price drops the price constraint, and an unknown sort falls back to
// newest. The category parameter is a comma-separated OR set.
func ParseQuery(values url.Values) Query {
	q := Query{
		Keyword:  strings.TrimSpace(values.Get("keyword")),
		Sort:     domain.SortNewest,
		Page:     1,
		PageSize: DefaultPageSize,
	}

	if raw := values.Get("category"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}

	if raw := values.Get("price"); raw != "" {
		if cents, err := domain.ParsePrice(raw); err == nil {
			q.MaxPrice = &cents
		}
	}

	if s := values.Get("sort"); domain.IsValidSort(s) {
		q.Sort = s
	}

	if raw := values.Get("pageNumber"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			q.Page = page
		}
	}

	if raw := values.Get("pageSize"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size >= 1 {
			if size > MaxPageSize {
				size = MaxPageSize
			}
			q.PageSize = size
		}
	}

	return q
}

// Match reports whether the product satisfies every active filter. Filters
// are AND-composed; the category set is OR membership within it.
func (q Query) Match(p *domain.Product, scope KeywordScope) bool {
	if q.Keyword != "" {
		kw := strings.ToLower(q.Keyword)
		hit := strings.Contains(strings.ToLower(p.Name), kw)
		if !hit && scope == ScopeNameAndDescription {
			hit = strings.Contains(strings.ToLower(p.Description), kw)
		}
		if !hit {
			return false
		}
	}

	if len(q.Categories) > 0 {
		found := false
		for _, c := range q.Categories {
			if p.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}

	return true
}

// Filter returns the products matching the query, preserving input order.
func (q Query) Filter(products []domain.Product, scope KeywordScope) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if q.Match(&products[i], scope) {
			out = append(out, products[i])
		}
	}
	return out
}

// Sort orders products in place. The sort is stable, so ties keep their
// input order.
func Sort(products []domain.Product, order string) {
	switch order {
	case domain.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// PageCount returns ceil(total/pageSize). Zero matches yield zero pages.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// Page returns the 1-based page slice. A page beyond the end yields an
// empty, non-nil slice.
func Page(products []domain.Product, page, pageSize int) []domain.Product {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []domain.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
