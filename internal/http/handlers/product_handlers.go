package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetSnapshotHandler godoc
// @Summary Full state: products, transactions and users
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Snapshot
// @Failure 503 {string} string "Storage unavailable"
// @Router /api/cloud [get]
func (s *Server) GetSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, "snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Product
// @Failure 500 {string} string "Internal error"
// @Router /api/products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.ListProducts(r.Context())
	if err != nil {
		writeError(w, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProductHandler godoc
// @Summary Create a product, or overwrite it when the id already exists
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Success 200 {object} models.Product
// @Failure 400 {object} []inventory.ValidationError
// @Failure 403 {string} string "Forbidden"
// @Router /api/products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	p, err := s.svc.UpsertProduct(r.Context(), req.toService())
	if err != nil {
		writeError(w, "create product", err)
		return
	}

	status := http.StatusCreated
	if req.ID != "" && p.ID == req.ID {
		status = http.StatusOK
	}
	writeJSON(w, status, p)
}

// UpdateProductHandler godoc
// @Summary Overwrite a product, quantity included
// @Description Sets the quantity directly without writing a ledger entry.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "New values"
// @Success 200 {object} models.Product
// @Failure 400 {object} []inventory.ValidationError
// @Failure 403 {string} string "Forbidden"
// @Router /api/products/{id} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.ID = chi.URLParam(r, "id")

	p, err := s.svc.UpsertProduct(r.Context(), req.toService())
	if err != nil {
		writeError(w, "update product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProductHandler godoc
// @Summary Delete a product and its ledger entries
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 403 {string} string "Forbidden"
// @Router /api/products/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
