package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	rl "github.com/rogerio-castellano/stock-ledger/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

// LoginHandler godoc
// @Summary Login and receive a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Invalid credentials"
// @Failure 429 {string} string "Too many failed attempts"
// @Router /api/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	ip := rl.ClientIP(r)
	if s.guard != nil && s.guard.Banned(r.Context(), ip) {
		http.Error(w, "too many failed login attempts, try again later", http.StatusTooManyRequests)
		return
	}

	var creds UserLogin
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := s.svc.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) && s.guard != nil {
			s.guard.Strike(r.Context(), ip, r.URL.Path)
		}
		writeError(w, "login", err)
		return
	}
	if s.guard != nil {
		s.guard.Reset(r.Context(), ip)
	}

	token, err := s.gate.Issue(user.ID, user.Role)
	if err != nil {
		writeError(w, "issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{Token: token, User: user.Public()})
}

// ChangePasswordHandler godoc
// @Summary Change the password of the logged in user
// @Tags auth
// @Accept json
// @Security BearerAuth
// @Param passwords body ChangePasswordRequest true "current and new password"
// @Success 204
// @Failure 400 {object} []inventory.ValidationError
// @Failure 401 {string} string "Invalid credentials"
// @Router /api/me/password [post]
func (s *Server) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if err := s.svc.ChangePassword(r.Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, "change password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
