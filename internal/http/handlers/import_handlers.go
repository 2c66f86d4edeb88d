package handlers

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
)

const maxImportSize = 10 << 20

// parseCSV reads rows with the columns name, sku and quantity in any order.
// sku and quantity may be absent. Rows that cannot be parsed are reported with
// their line number, the header being line 1.
func parseCSV(r io.Reader) ([]inventory.ProductRequest, []inventory.RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, nil, errors.New("CSV header must contain a name column")
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []inventory.ProductRequest
	var rowErrs []inventory.RowError
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := inventory.ProductRequest{Name: field(record, "name")}
		if sku := field(record, "sku"); sku != "" {
			row.SKU = &sku
		}
		if q := field(record, "quantity"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				rowErrs = append(rowErrs, inventory.RowError{Line: line, Reason: fmt.Sprintf("invalid quantity %q", q)})
				// Keep line numbers aligned with the service's own row errors.
				rows = append(rows, inventory.ProductRequest{})
				continue
			}
			row.Quantity = n
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, sku, quantity. Every valid row creates a product.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 403 {string} string "Forbidden"
// @Router /api/products/import [post]
func (s *Server) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, parseErrs, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported, rowErrs, err := s.svc.ImportProducts(r.Context(), rows, 2)
	if err != nil {
		writeError(w, "import products", err)
		return
	}

	writeJSON(w, http.StatusOK, ImportProductsResult{
		Imported: imported,
		Errors:   mergeRowErrors(parseErrs, rowErrs),
	})
}

// mergeRowErrors keeps the parse error of a line and drops the validation
// error the placeholder row produced for it.
func mergeRowErrors(parseErrs, rowErrs []inventory.RowError) []inventory.RowError {
	seen := make(map[int]bool, len(parseErrs))
	out := make([]inventory.RowError, 0, len(parseErrs)+len(rowErrs))
	for _, e := range parseErrs {
		seen[e.Line] = true
		out = append(out, e)
	}
	for _, e := range rowErrs {
		if !seen[e.Line] {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b inventory.RowError) int { return cmp.Compare(a.Line, b.Line) })
	return out
}
