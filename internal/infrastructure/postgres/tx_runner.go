package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Botiquin-api/internal/application/allowance"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and allowance.AllowanceTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ allowance.AllowanceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	txRepo repository.QtyTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewQtyTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAllowance inicia una transacción con los repos de dotaciones y catálogo (para Import).
func (r *TxRunner) RunAllowance(ctx context.Context, fn func(
	allowanceRepo repository.AllowanceRepository,
	reqQtyRepo repository.ReqQtyRepository,
	moleculeRepo repository.MoleculeRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	allowanceRepo := NewAllowanceRepository(tx)
	reqQtyRepo := NewReqQtyRepository(tx)
	moleculeRepo := NewMoleculeRepository(tx)
	equipmentRepo := NewEquipmentRepository(tx)

	if err := fn(allowanceRepo, reqQtyRepo, moleculeRepo, equipmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
