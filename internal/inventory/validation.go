package inventory

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/stock-ledger/internal/models"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

var quantityRange = fmt.Sprintf("Quantity must be between %d and %d", models.MinQuantity, models.MaxQuantity)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationErrors is returned when a request is rejected before reaching
// storage. It matches repo.ErrInvalidInput with errors.Is.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + ": " + e.Description
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return repo.ErrInvalidInput
}

func ValidateProduct(p ProductRequest) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Description: "Name is required"})
	}
	if p.Quantity > models.MaxQuantity || p.Quantity < models.MinQuantity {
		errs = append(errs, ValidationError{Field: "quantity", Description: quantityRange})
	}
	return errs
}

func ValidateTransaction(t TransactionRequest) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(t.ProductID) == "" {
		errs = append(errs, ValidationError{Field: "productId", Description: "Product id is required"})
	}
	if !t.Kind.Valid() {
		errs = append(errs, ValidationError{Field: "type", Description: "Type must be INBOUND or OUTBOUND"})
	}
	if t.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity must be greater than zero"})
	} else if t.Quantity > models.MaxQuantity {
		errs = append(errs, ValidationError{Field: "quantity", Description: quantityRange})
	}
	return errs
}

func ValidateUser(u UserRequest) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(u.Username) == "" {
		errs = append(errs, ValidationError{Field: "username", Description: "Username is required"})
	}
	if u.Password == "" {
		errs = append(errs, ValidationError{Field: "password", Description: "Password is required"})
	}
	if !u.Role.Valid() {
		errs = append(errs, ValidationError{Field: "role", Description: "Role must be admin or user"})
	}
	return errs
}
