package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

type transactionFilter struct {
	ProductID string
	Since     *time.Time
	Until     *time.Time
	Offset    int
	Limit     *int
}

// parseTimestamp accepts RFC3339 and undoes the '+' to space substitution
// query decoding applies to offsets such as 2025-07-03T17:44:03+02:00.
func parseTimestamp(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if len(v) == len(time.RFC3339) && v[len(v)-6] == ' ' {
		v = v[:len(v)-6] + "+" + v[len(v)-5:]
	}
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date format", name)
	}
	return &ts, nil
}

func parseTransactionFilter(r *http.Request, paginate bool) (transactionFilter, error) {
	q := r.URL.Query()
	f := transactionFilter{ProductID: q.Get("product_id")}

	var err error
	if f.Since, err = parseTimestamp("since", q.Get("since")); err != nil {
		return f, err
	}
	if f.Until, err = parseTimestamp("until", q.Get("until")); err != nil {
		return f, err
	}
	if !paginate {
		return f, nil
	}

	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, errors.New("invalid limit format")
		}
		if v <= 0 {
			return f, errors.New("limit must be greater than zero")
		}
		f.Limit = &v
	}
	if s := q.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, errors.New("invalid offset format")
		}
		if v < 0 {
			return f, errors.New("offset must be zero or positive")
		}
		f.Offset = v
	}
	return f, nil
}

// apply keeps the matching entries in their original order and returns the
// requested page together with the number of matches.
func (f transactionFilter) apply(txs []models.Transaction) ([]models.Transaction, int) {
	matched := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.ProductID != "" && t.ProductID != f.ProductID {
			continue
		}
		if f.Since != nil && t.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && t.CreatedAt.After(*f.Until) {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	start := min(f.Offset, total)
	end := total
	if f.Limit != nil && *f.Limit < total-start {
		end = start + *f.Limit
	}
	return matched[start:end], total
}
