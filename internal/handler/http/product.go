package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/catalog"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/domain"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/service"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/httputil"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/middleware"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/validator"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// ProductRequest is the JSON request body for creating or replacing a
// product. Price fields are decimal strings or numbers in major currency
// units; colors and sizes are comma-separated lists, matching the
// storefront admin form.
type ProductRequest struct {
	Name          string      `json:"name" validate:"required,min=1,max=255"`
	ImageURL      string      `json:"image_url"`
	Images        []string    `json:"images"`
	Description   string      `json:"description"`
	Category      string      `json:"category" validate:"max=100"`
	Price         json.Number `json:"price" validate:"required"`
	OriginalPrice json.Number `json:"original_price"`
	Stock         int         `json:"stock" validate:"gte=0"`
	Colors        string      `json:"colors"`
	Sizes         string      `json:"sizes"`
}

// toInput converts the request to a service input, parsing prices into
// cents and splitting the comma-separated variant lists.
func (req *ProductRequest) toInput() (*service.ProductInput, error) {
	price, err := domain.ParsePrice(req.Price.String())
	if err != nil {
		return nil, err
	}

	input := &service.ProductInput{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Description: req.Description,
		Category:    req.Category,
		Price:       price,
		Stock:       req.Stock,
		Colors:      splitList(req.Colors),
		Sizes:       splitList(req.Sizes),
	}

	if req.OriginalPrice != "" {
		original, err := domain.ParsePrice(req.OriginalPrice.String())
		if err != nil {
			return nil, err
		}
		input.OriginalPrice = &original
	}

	return input, nil
}

// splitList turns a comma-separated value into a slice, dropping empties.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// --- Handlers ---

// List handles GET /api/products. The response is the bare
// {products, page, pages} object consumed by the storefront, not the
// standard data envelope.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := catalog.ParseQuery(r.URL.Query())

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id is required"},
		})
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), middleware.UserIDFromContext(r.Context()), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// Update handles PUT /api/products/{id}. The update is a full replace: every
// catalog field is required and omitted optional fields are cleared.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id is required"},
		})
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id is required"},
		})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
