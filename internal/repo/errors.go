package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the root of every validation failure.
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidInput)
	ErrInvalidKind     = fmt.Errorf("%w: unknown transaction kind", ErrInvalidInput)
	// ErrQuantityOutOfRange is returned when a quantity or the result of
	// applying a transaction does not fit the stored range.
	ErrQuantityOutOfRange = fmt.Errorf("%w: quantity out of range", ErrInvalidInput)

	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials never says whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConnectivity means the storage medium could not be reached.
	ErrConnectivity = errors.New("storage unreachable")
	// ErrConstraint means an integrity rule rejected the change; it was rolled back.
	ErrConstraint = errors.New("constraint violation")
)
