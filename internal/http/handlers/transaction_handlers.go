package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/stock-ledger/internal/auth"
)

// CreateTransactionHandler godoc
// @Summary Record an inbound or outbound stock movement
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body TransactionRequest true "Ledger entry"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} []inventory.ValidationError
// @Failure 404 {string} string "Product not found"
// @Router /api/transactions [post]
func (s *Server) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	t, err := s.svc.AppendTransaction(r.Context(), id.UserID, req.toService())
	if err != nil {
		writeError(w, "create transaction", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// GetTransactionsHandler godoc
// @Summary List ledger entries, most recent first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param product_id query string false "Only entries of this product"
// @Param since query string false "Entries from this timestamp (RFC3339)"
// @Param until query string false "Entries until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Transaction
// @Header 200 {integer} X-Total-Count "Number of matching entries before paging"
// @Failure 400 {string} string "Invalid input"
// @Router /api/transactions [get]
func (s *Server) GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		writeError(w, "list transactions", err)
		return
	}

	page, total := filter.apply(txs)
	writeJSON(w, http.StatusOK, page, http.Header{
		TotalCountHeader: {strconv.Itoa(total)},
	})
}

// ExportTransactionsHandler godoc
// @Summary Export ledger entries
// @Tags transactions
// @Produce text/csv, application/json
// @Security BearerAuth
// @Param format query string true "Export format (csv or json)"
// @Param product_id query string false "Only entries of this product"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Router /api/transactions/export [get]
func (s *Server) ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, err := parseTransactionFilter(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		writeError(w, "export transactions", err)
		return
	}
	txs, _ = filter.apply(txs)

	switch format {
	case "json":
		writeJSON(w, http.StatusOK, txs, http.Header{
			"Content-Disposition": {`attachment; filename="transactions.json"`},
		})

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "product_id", "type", "quantity", "note", "created_by", "created_at"})
		for _, t := range txs {
			note := ""
			if t.Note != nil {
				note = *t.Note
			}
			_ = cw.Write([]string{
				t.ID,
				t.ProductID,
				string(t.Kind),
				strconv.Itoa(t.Quantity),
				note,
				t.CreatedBy,
				t.CreatedAt.Format(time.RFC3339),
			})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			log.Printf("Failed to write CSV export: %v", err)
		}
	}
}
