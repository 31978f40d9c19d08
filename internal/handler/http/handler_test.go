package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/auth"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/event"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/service"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage/memory"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/health"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/httputil"
	pkgkafka "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/kafka"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/middleware"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, q catalog.Query) ([]domain.Product, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Add(ctx context.Context, review *domain.Review) (*domain.Product, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

// testRepos bundles the mock repositories behind a test router.
type testRepos struct {
	products *mockProductRepository
	reviews  *mockReviewRepository
	users    *mockUserRepository
	orders   *mockOrderRepository
	carts    *mockCartRepository
}

var testTokens = auth.NewManager("test-secret-key", time.Hour)

// setupRouter builds the production router over mock repositories.
func setupRouter(t *testing.T) (http.Handler, *testRepos) {
	t.Helper()

	logger := testLogger()
	producer := testEventProducer()

	repos := &testRepos{
		products: new(mockProductRepository),
		reviews:  new(mockReviewRepository),
		users:    new(mockUserRepository),
		orders:   new(mockOrderRepository),
		carts:    new(mockCartRepository),
	}

	router := NewRouter(RouterConfig{
		Products:      service.NewProductService(repos.products, producer, logger),
		Reviews:       service.NewReviewService(repos.reviews, producer, logger),
		Users:         service.NewUserService(repos.users, testTokens, logger),
		Orders:        service.NewOrderService(repos.orders, producer, logger),
		Cart:          service.NewCartService(repos.carts, repos.products, logger),
		Uploads:       service.NewUploadService(memory.New("http://localhost:8080"), logger),
		TokenValidate: testTokens.Validate,
		Health:        health.NewHandler(),
		CORS:          middleware.DefaultCORSConfig(),
	}, logger)

	return router, repos
}

// bearerToken issues a signed token for the given identity.
func bearerToken(t *testing.T, userID, username string, isAdmin bool) string {
	t.Helper()
	token, err := testTokens.Generate(&domain.User{
		ID:       userID,
		Username: username,
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func userAuth(t *testing.T) string {
	return bearerToken(t, "user-1", "kathir", false)
}

func adminAuth(t *testing.T) string {
	return bearerToken(t, "admin-1", "admin", true)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}
