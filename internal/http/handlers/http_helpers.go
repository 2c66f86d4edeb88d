package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

// readJSON decodes exactly one JSON value of at most one megabyte.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) {
	out, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// StatusFor maps a domain error onto its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repo.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repo.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repo.ErrProductNotFound), errors.Is(err, repo.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, repo.ErrDuplicateUsername), errors.Is(err, repo.ErrConstraint):
		return http.StatusConflict
	case errors.Is(err, repo.ErrConnectivity):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status of err. Validation failures carry the
// field list as JSON; everything else is plain text.
func writeError(w http.ResponseWriter, op string, err error) {
	var verrs inventory.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, verrs)
		return
	}

	status := StatusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		log.Printf("❌ %s: %v", op, err)
		msg = "internal error"
	case http.StatusServiceUnavailable:
		log.Printf("❌ %s: %v", op, err)
		msg = "storage unavailable"
	case http.StatusUnauthorized:
		msg = "invalid credentials"
	}
	http.Error(w, msg, status)
}
