package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/storefront-seed/internal/services"
	"github.com/rs/zerolog/log"
)

// ProductHandler handles HTTP requests related to products.
type ProductHandler struct {
	service services.ProductServiceProvider
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider) *ProductHandler {
	return &ProductHandler{service: service}
}

// GetAll handles the request to get all products.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAllProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve products")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles the request to get a single product. Unknown ids answer with
// an empty object and 200, not 404.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	product, err := h.service.GetProductByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		log.Error().Err(err).Str("product_id", idStr).Msg("Failed to get product by ID")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Search handles substring search over title, description and category.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	log.Debug().Str("q", term).Msg("Product search")

	products, err := h.service.SearchProducts(r.Context(), term)
	if err != nil {
		log.Error().Err(err).Str("q", term).Msg("Failed to search products")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
