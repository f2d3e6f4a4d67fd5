package handlers

import (
	"net/http"

	"github.com/a2sh3r/mlmnet/internal/models"
)

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := h.decodeJSON(r, &input); err != nil {
		writeError(w, err, "create product")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), input)
	if err != nil {
		writeError(w, err, "create product")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		writeError(w, err, "list products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "get product")
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err, "get product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}
