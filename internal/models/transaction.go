package models

import "time"

type TransactionKind string

const (
	Inbound  TransactionKind = "INBOUND"
	Outbound TransactionKind = "OUTBOUND"
)

func (k TransactionKind) Valid() bool {
	return k == Inbound || k == Outbound
}

// Delta is the signed quantity change a transaction of this kind applies.
func (k TransactionKind) Delta(quantity int) int {
	if k == Outbound {
		return -quantity
	}
	return quantity
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Kind      TransactionKind `json:"type"`
	Quantity  int             `json:"quantity"`
	Note      *string         `json:"note,omitempty"`
	CreatedBy string          `json:"createdBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
