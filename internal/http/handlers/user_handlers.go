package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
)

// GetUsersHandler godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PublicUser
// @Failure 403 {string} string "Forbidden"
// @Router /api/users [get]
func (s *Server) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUserHandler godoc
// @Summary Create user with custom role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User to create"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} []inventory.ValidationError
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "User exists"
// @Router /api/users [post]
func (s *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	u, err := s.svc.CreateUser(r.Context(), inventory.UserRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, "create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Description The seed administrator is never removed.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {string} string "Forbidden"
// @Router /api/users/{id} [delete]
func (s *Server) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
