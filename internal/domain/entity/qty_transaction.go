package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de cantidad. Los códigos se conservan para compatibilidad de paquetes.
const (
	TxInventory     = 1  // recuento de stock
	TxIn            = 2  // entrada
	TxUsed          = 4  // consumo
	TxPerished      = 8  // caducado / destruido
	TxPhysicalCount = 16 // recuento físico
	TxOther         = 32 // pérdida, donación...
)

// QtyTransaction es una entrada del libro de movimientos de un Item (solo se agregan).
type QtyTransaction struct {
	ID        string
	ItemID    string
	Type      int
	Value     decimal.Decimal
	Date      time.Time
	CreatedBy string
	Remark    string
	CreatedAt time.Time
}

// IsStockCount indica si la transacción fija la cantidad absoluta.
func (t *QtyTransaction) IsStockCount() bool {
	return t.Type == TxInventory || t.Type == TxPhysicalCount
}

// IsOutgoing indica si la transacción descuenta stock.
func (t *QtyTransaction) IsOutgoing() bool {
	return t.Type == TxUsed || t.Type == TxPerished || t.Type == TxOther
}

// ValidTxType indica si el código de tipo es conocido.
func ValidTxType(t int) bool {
	switch t {
	case TxInventory, TxIn, TxUsed, TxPerished, TxPhysicalCount, TxOther:
		return true
	}
	return false
}
