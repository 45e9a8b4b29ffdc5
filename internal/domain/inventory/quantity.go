package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Quantity resultado de reproducir el libro de un Item.
// Raw puede ser negativo si el libro es incoherente; Value nunca lo es.
type Quantity struct {
	Value   decimal.Decimal
	Raw     decimal.Decimal
	Clamped bool
	// AnchoredAt fecha del recuento que fija la cantidad; cero si no hay recuento.
	AnchoredAt time.Time
}

// ReplayQuantity reproduce el libro de movimientos desde el último recuento de stock.
//
// Orden: (Date, CreatedAt, ID). El último INVENTORY/PHYSICAL_COUNT fija la cantidad;
// las transacciones posteriores suman (IN) o restan (USED, PERISHED, OTHER).
// Sin recuento se parte de cero desde la primera transacción.
func ReplayQuantity(txs []*entity.QtyTransaction) Quantity {
	ordered := make([]*entity.QtyTransaction, 0, len(txs))
	for _, t := range txs {
		if t != nil {
			ordered = append(ordered, t)
		}
	}
	sortTransactions(ordered)

	anchor := -1
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].IsStockCount() {
			anchor = i
			break
		}
	}

	qty := decimal.Zero
	var anchoredAt time.Time
	if anchor >= 0 {
		qty = ordered[anchor].Value
		anchoredAt = ordered[anchor].Date
	}
	for _, t := range ordered[anchor+1:] {
		switch {
		case t.Type == entity.TxIn:
			qty = qty.Add(t.Value)
		case t.IsOutgoing():
			qty = qty.Sub(t.Value)
		}
	}

	if qty.IsNegative() {
		return Quantity{Value: decimal.Zero, Raw: qty, Clamped: true, AnchoredAt: anchoredAt}
	}
	return Quantity{Value: qty, Raw: qty, AnchoredAt: anchoredAt}
}

func sortTransactions(txs []*entity.QtyTransaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
