package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/stock-ledger/internal/http/ban"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} inventory.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /api/metrics/dashboard [get]
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, "dashboard metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, inventory.Dashboard(snap))
}

// ReconcileHandler godoc
// @Summary Products whose quantity differs from their ledger
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} inventory.Drift
// @Failure 403 {string} string "Forbidden"
// @Router /api/admin/reconcile [get]
func (s *Server) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, "reconcile", err)
		return
	}
	writeJSON(w, http.StatusOK, inventory.Reconcile(snap))
}

// GetBansHandler godoc
// @Summary Login bans recorded by the ban guard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ban.BanLogEntry
// @Failure 403 {string} string "Forbidden"
// @Failure 503 {string} string "Ban log unavailable"
// @Router /api/admin/bans [get]
func (s *Server) GetBansHandler(w http.ResponseWriter, r *http.Request) {
	if s.guard == nil {
		writeJSON(w, http.StatusOK, []ban.BanLogEntry{})
		return
	}
	entries, err := s.guard.Log(r.Context())
	if err != nil {
		http.Error(w, "ban log unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
