package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adr1ann32323/restorApp/internal/models"
	"github.com/adr1ann32323/restorApp/internal/store"
)

type ProductHandler struct {
	Store *store.Store
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// List serves the menu. ?is_active=true restricts to active products, the
// view USERs get; admins call without the filter to see everything.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("is_active") == "true"

	products, err := h.Store.GetAllProducts(activeOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if req.Stock < 0 {
		respondError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	product, err := h.Store.CreateProduct(req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		respondError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	product, err := h.Store.UpdateProduct(id, req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Deactivate is the DELETE endpoint: a soft delete that clears is_active so
// existing orders keep their product references.
func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.Store.DeactivateProduct(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to deactivate product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}
