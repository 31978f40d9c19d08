package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/service"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/httpclient"
)

// Fetcher loads catalog snapshots from the products API. Calls go through a
// circuit breaker so a flapping backend does not hang the storefront.
type Fetcher struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewFetcher creates a snapshot fetcher against the given API base URL.
func NewFetcher(client *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// FetchAll retrieves the full catalog, paging through the list endpoint at
// the maximum page size until every page is loaded.
func (f *Fetcher) FetchAll(ctx context.Context) ([]domain.Product, error) {
	var all []domain.Product

	for page := 1; ; page++ {
		snapshot, err := f.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, snapshot.Products...)

		if page >= snapshot.Pages || len(snapshot.Products) == 0 {
			break
		}
	}

	f.logger.DebugContext(ctx, "catalog snapshot loaded",
		slog.Int("products", len(all)),
	)

	return all, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, page int) (*service.CatalogPage, error) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(catalog.MaxPageSize))
	params.Set("pageNumber", strconv.Itoa(page))

	resp, err := f.client.Get(ctx, fmt.Sprintf("%s/api/products?%s", f.baseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetch catalog page %d: %w", page, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "products-api")
	}
	defer resp.Body.Close()

	var snapshot service.CatalogPage
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode catalog page %d: %w", page, err)
	}

	return &snapshot, nil
}
