package handlers

import (
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

type ProductRequest struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	SKU      *string `json:"sku,omitempty"`
	Quantity int     `json:"quantity"`
}

type TransactionRequest struct {
	ProductID string                 `json:"productId"`
	Type      models.TransactionKind `json:"type"`
	Quantity  int                    `json:"quantity"`
	Note      *string                `json:"note,omitempty"`
}

type UserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ImportProductsResult struct {
	Imported int                  `json:"imported"`
	Errors   []inventory.RowError `json:"errors"`
}

// TotalCountHeader carries the number of matches of a paged list.
const TotalCountHeader = "X-Total-Count"

func (p ProductRequest) toService() inventory.ProductRequest {
	return inventory.ProductRequest{ID: p.ID, Name: p.Name, SKU: p.SKU, Quantity: p.Quantity}
}

func (t TransactionRequest) toService() inventory.TransactionRequest {
	return inventory.TransactionRequest{ProductID: t.ProductID, Kind: t.Type, Quantity: t.Quantity, Note: t.Note}
}
