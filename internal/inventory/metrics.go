package inventory

import "github.com/rogerio-castellano/stock-ledger/internal/models"

type MostMovedProduct struct {
	ProductID        string `json:"productId,omitempty"`
	Name             string `json:"name"`
	TransactionCount int    `json:"transactionCount"`
}

type Metrics struct {
	TotalProducts     int              `json:"totalProducts"`
	TotalTransactions int              `json:"totalTransactions"`
	UnitsIn           int              `json:"unitsIn"`
	UnitsOut          int              `json:"unitsOut"`
	NegativeStock     int              `json:"negativeStockCount"`
	MostMovedProduct  MostMovedProduct `json:"mostMovedProduct"`
}

// Dashboard summarizes a snapshot.
func Dashboard(snap models.Snapshot) Metrics {
	m := Metrics{
		TotalProducts:     len(snap.Products),
		TotalTransactions: len(snap.Transactions),
	}

	counts := make(map[string]int)
	for _, t := range snap.Transactions {
		counts[t.ProductID]++
		switch t.Kind {
		case models.Inbound:
			m.UnitsIn += t.Quantity
		case models.Outbound:
			m.UnitsOut += t.Quantity
		}
	}

	// Products are in creation order, so ties go to the oldest product.
	for _, p := range snap.Products {
		if p.Quantity < 0 {
			m.NegativeStock++
		}
		if c := counts[p.ID]; c > m.MostMovedProduct.TransactionCount {
			m.MostMovedProduct = MostMovedProduct{ProductID: p.ID, Name: p.Name, TransactionCount: c}
		}
	}

	return m
}

// Drift is a product whose stored quantity does not match its ledger.
type Drift struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	LedgerQuantity int    `json:"ledgerQuantity"`
}

// LedgerQuantities returns sum(INBOUND) - sum(OUTBOUND) per product id.
func LedgerQuantities(transactions []models.Transaction) map[string]int {
	sums := make(map[string]int)
	for _, t := range transactions {
		sums[t.ProductID] += t.Kind.Delta(t.Quantity)
	}
	return sums
}

// Reconcile lists the products whose quantity differs from their ledger. Any
// product set through the administrative override with a non-zero quantity
// shows up here.
func Reconcile(snap models.Snapshot) []Drift {
	sums := LedgerQuantities(snap.Transactions)

	drifts := []Drift{}
	for _, p := range snap.Products {
		if sums[p.ID] != p.Quantity {
			drifts = append(drifts, Drift{
				ProductID:      p.ID,
				Name:           p.Name,
				Quantity:       p.Quantity,
				LedgerQuantity: sums[p.ID],
			})
		}
	}
	return drifts
}
