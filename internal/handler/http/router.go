package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/service"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/health"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/middleware"
)

// RouterConfig carries everything the router needs beyond the services
// themselves.
type RouterConfig struct {
	Products      *service.ProductService
	Reviews       *service.ReviewService
	Users         *service.UserService
	Orders        *service.OrderService
	Cart          *service.CartService
	Uploads       *service.UploadService
	TokenValidate middleware.TokenValidator
	Health        *health.Handler
	CORS          middleware.CORSConfig
	// AuthRateRPS and AuthRateBurst bound login and registration attempts
	// per client IP.
	AuthRateRPS   int
	AuthRateBurst int
	// UploadsDir, when non-empty, is served statically under /uploads/.
	UploadsDir     string
	TracingEnabled bool
}

// NewRouter creates a chi router with all storefront API routes registered.
func NewRouter(cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing("storefront"))
	}
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/api/health", cfg.Health.LivenessHandler())
	r.Get("/api/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(cfg.Products, logger)
	reviewHandler := NewReviewHandler(cfg.Reviews, logger)
	userHandler := NewUserHandler(cfg.Users, logger)
	orderHandler := NewOrderHandler(cfg.Orders, logger)
	cartHandler := NewCartHandler(cfg.Cart, logger)
	uploadHandler := NewUploadHandler(cfg.Uploads, logger)

	authed := middleware.Auth(cfg.TokenValidate)
	admin := middleware.RequireAdmin()

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authed, ContentTypeJSON)
			r.Post("/{id}/reviews", reviewHandler.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(authed, admin, ContentTypeJSON)
			r.Post("/", productHandler.Create)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			if cfg.AuthRateRPS > 0 {
				r.Use(middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst, logger))
			}
			r.Post("/", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/profile", userHandler.GetProfile)
			r.With(ContentTypeJSON).Put("/profile", userHandler.UpdateProfile)
		})
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authed)

		r.With(ContentTypeJSON).Post("/", orderHandler.Create)
		r.Get("/mine", orderHandler.ListMine)
		r.Get("/{id}", orderHandler.Get)
		r.Put("/{id}/pay", orderHandler.MarkPaid)
		r.With(admin).Put("/{id}/deliver", orderHandler.MarkDelivered)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authed)

		r.Get("/", cartHandler.Get)
		r.Delete("/", cartHandler.Clear)
		r.With(ContentTypeJSON).Post("/items", cartHandler.AddItem)
		r.With(ContentTypeJSON).Put("/items/{productId}", cartHandler.UpdateItem)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	r.With(authed, admin).Post("/api/upload", uploadHandler.Upload)

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			fs.ServeHTTP(w, r)
		})
	}

	return r
}
