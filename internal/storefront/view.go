// Package storefront keeps an in-memory view over a full catalog snapshot.
// It mirrors the browsing state a shopper manipulates: keyword, category
// set, price ceiling, and sort order. Every mutation re-derives the visible
// product list and pushes it through a render callback.
package storefront

import (
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
)

// DefaultDebounce is how long price updates are held before a render.
const DefaultDebounce = 300 * time.Millisecond

// RenderFunc receives the visible product list after each state change.
type RenderFunc func(products []domain.Product)

// View is a filterable window over a catalog snapshot. All methods are safe
// for concurrent use.
type View struct {
	mu       sync.Mutex
	products []domain.Product

	keyword    string
	categories map[string]struct{}
	maxPrice   *int64
	sortOrder  string

	render   RenderFunc
	debounce time.Duration

	// pending price update, applied when the debounce timer fires
	priceTimer   *time.Timer
	pendingPrice *int64
}

// Option configures a View.
type Option func(*View)

// WithDebounce overrides the price update debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(v *View) {
		v.debounce = d
	}
}

// New creates a view over the given snapshot. The render callback fires on
// every state mutation; it is invoked with the lock held, so it must not
// call back into the view.
func New(products []domain.Product, render RenderFunc, opts ...Option) *View {
	v := &View{
		products:   products,
		categories: make(map[string]struct{}),
		sortOrder:  domain.SortNewest,
		render:     render,
		debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SeedFromQuery initialises the filter state from URL query values, the way
// a shared storefront link restores its filters. It does not render.
func (v *View) SeedFromQuery(values url.Values) {
	q := catalog.ParseQuery(values)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.keyword = q.Keyword
	v.categories = make(map[string]struct{}, len(q.Categories))
	for _, c := range q.Categories {
		v.categories[c] = struct{}{}
	}
	v.maxPrice = q.MaxPrice
	v.sortOrder = q.Sort
}

// Reload replaces the catalog snapshot and re-renders with the current
// filter state.
func (v *View) Reload(products []domain.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.products = products
	v.refresh()
}

// SetKeyword updates the search keyword and re-renders.
func (v *View) SetKeyword(keyword string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.keyword = keyword
	v.refresh()
}

// ToggleCategory adds or removes a category from the filter set and
// re-renders.
func (v *View) ToggleCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.categories[category]; ok {
		delete(v.categories, category)
	} else {
		v.categories[category] = struct{}{}
	}
	v.refresh()
}

// SetSort updates the sort order and re-renders. Unknown orders fall back
// to newest.
func (v *View) SetSort(order string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !domain.IsValidSort(order) {
		order = domain.SortNewest
	}
	v.sortOrder = order
	v.refresh()
}

// SetMaxPrice updates the price ceiling. Updates are debounced: rapid calls
// inside the window collapse into a single render using the final value.
// A nil ceiling clears the price filter.
func (v *View) SetMaxPrice(cents *int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pendingPrice = cents
	if v.priceTimer != nil {
		v.priceTimer.Stop()
	}
	v.priceTimer = time.AfterFunc(v.debounce, v.applyPendingPrice)
}

func (v *View) applyPendingPrice() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.maxPrice = v.pendingPrice
	v.priceTimer = nil
	v.refresh()
}

// Visible returns the currently visible product list without rendering.
func (v *View) Visible() []domain.Product {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.derive()
}

// Featured returns the top n products by rating from the full snapshot,
// ignoring the filter state. Ties keep snapshot order.
func (v *View) Featured(n int) []domain.Product {
	v.mu.Lock()
	defer v.mu.Unlock()

	ranked := make([]domain.Product, len(v.products))
	copy(ranked, v.products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// refresh re-derives the visible list and renders. Callers hold the lock.
func (v *View) refresh() {
	if v.render != nil {
		v.render(v.derive())
	}
}

// derive applies keyword, category, and price filters followed by the sort.
// Keywords match name or description here, unlike the server query path
// which matches names only.
func (v *View) derive() []domain.Product {
	q := catalog.Query{
		Keyword:  v.keyword,
		MaxPrice: v.maxPrice,
	}
	for c := range v.categories {
		q.Categories = append(q.Categories, c)
	}

	visible := q.Filter(v.products, catalog.ScopeNameAndDescription)
	catalog.Sort(visible, v.sortOrder)
	return visible
}
