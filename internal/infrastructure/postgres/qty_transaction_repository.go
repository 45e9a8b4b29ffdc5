package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var _ repository.QtyTransactionRepository = (*QtyTransactionRepo)(nil)

const qtyTxColumns = `id, item_id, type, value, date, created_by, remark, created_at`

// QtyTransactionRepo libro de movimientos sobre PostgreSQL (usable con pool o tx). Solo inserción.
type QtyTransactionRepo struct {
	q Querier
}

// NewQtyTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQtyTransactionRepository(q Querier) *QtyTransactionRepo {
	return &QtyTransactionRepo{q: q}
}

// Create persiste una transacción de cantidad.
func (r *QtyTransactionRepo) Create(ctx context.Context, t *entity.QtyTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `INSERT INTO qty_transactions (` + qtyTxColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ItemID, t.Type, t.Value, t.Date, nullable(t.CreatedBy), t.Remark, t.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create qty transaction: %w", err)
	}
	return nil
}

// ListByItem lista el libro de una unidad en orden de reproducción.
func (r *QtyTransactionRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.QtyTransaction, error) {
	query := `SELECT ` + qtyTxColumns + ` FROM qty_transactions WHERE item_id = $1 ORDER BY date, created_at, id`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.QtyTransaction
	for rows.Next() {
		t, err := scanQtyTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan qty transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListByItems carga los libros de varias unidades en una sola consulta, agrupados por ItemID.
func (r *QtyTransactionRepo) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.QtyTransaction, error) {
	out := make(map[string][]*entity.QtyTransaction, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + qtyTxColumns + ` FROM qty_transactions WHERE item_id = ANY($1::uuid[]) ORDER BY item_id, date, created_at, id`
	rows, err := r.q.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list by items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanQtyTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan qty transaction: %w", err)
		}
		out[t.ItemID] = append(out[t.ItemID], t)
	}
	return out, rows.Err()
}

func scanQtyTx(row pgx.Row) (*entity.QtyTransaction, error) {
	var t entity.QtyTransaction
	var createdBy *string
	if err := row.Scan(&t.ID, &t.ItemID, &t.Type, &t.Value, &t.Date, &createdBy, &t.Remark, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.CreatedBy = deref(createdBy)
	return &t, nil
}
