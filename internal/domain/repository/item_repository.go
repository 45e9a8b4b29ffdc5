package repository

import (
	"context"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// ItemRepository define el puerto para las unidades físicas en stock.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	ListByDomain(ctx context.Context, domain string) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}

// QtyTransactionRepository define el puerto del libro de movimientos (solo inserción).
type QtyTransactionRepository interface {
	Create(ctx context.Context, tx *entity.QtyTransaction) error
	ListByItem(ctx context.Context, itemID string) ([]*entity.QtyTransaction, error)
	// ListByItems agrupa las transacciones por ItemID.
	ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.QtyTransaction, error)
}
