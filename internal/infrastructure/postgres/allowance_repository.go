package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var (
	_ repository.AllowanceRepository = (*AllowanceRepo)(nil)
	_ repository.ReqQtyRepository    = (*ReqQtyRepo)(nil)
)

const allowanceColumns = `id, name, author, version, date, additional, active, created_at, updated_at`

// AllowanceRepo implementación de AllowanceRepository (usable con pool o tx).
type AllowanceRepo struct {
	q Querier
}

// NewAllowanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllowanceRepository(q Querier) *AllowanceRepo {
	return &AllowanceRepo{q: q}
}

// Create persiste una dotación. (name, author) duplicado → ErrDuplicate.
func (r *AllowanceRepo) Create(ctx context.Context, a *entity.Allowance) error {
	query := `INSERT INTO allowances (` + allowanceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Author, a.Version, a.Date, a.Additional, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert allowance: %w", err)
	}
	return nil
}

// GetByID obtiene una dotación; nil si no existe.
func (r *AllowanceRepo) GetByID(ctx context.Context, id string) (*entity.Allowance, error) {
	return r.findOne(ctx, `SELECT `+allowanceColumns+` FROM allowances WHERE id = $1`, id)
}

// GetByNameAndAuthor busca por la clave natural de los paquetes.
func (r *AllowanceRepo) GetByNameAndAuthor(ctx context.Context, name, author string) (*entity.Allowance, error) {
	return r.findOne(ctx, `SELECT `+allowanceColumns+` FROM allowances WHERE name = $1 AND author = $2`, name, author)
}

func (r *AllowanceRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Allowance, error) {
	a, err := scanAllowance(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allowance: %w", err)
	}
	return a, nil
}

// Update actualiza una dotación.
func (r *AllowanceRepo) Update(ctx context.Context, a *entity.Allowance) error {
	query := `
		UPDATE allowances SET name = $2, author = $3, version = $4, date = $5,
			additional = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, a.ID, a.Name, a.Author, a.Version, a.Date, a.Additional, a.Active, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update allowance: %w", err)
	}
	return nil
}

// List lista todas las dotaciones por nombre.
func (r *AllowanceRepo) List(ctx context.Context) ([]*entity.Allowance, error) {
	rows, err := r.q.Query(ctx, `SELECT `+allowanceColumns+` FROM allowances ORDER BY name, author`)
	if err != nil {
		return nil, fmt.Errorf("list allowances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Allowance
	for rows.Next() {
		a, err := scanAllowance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allowance: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina la dotación; sus filas se borran en cascada.
func (r *AllowanceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM allowances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete allowance: %w", err)
	}
	return nil
}

func scanAllowance(row pgx.Row) (*entity.Allowance, error) {
	var a entity.Allowance
	err := row.Scan(&a.ID, &a.Name, &a.Author, &a.Version, &a.Date, &a.Additional, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ── Filas de requerimiento ───────────────────────────────────────────────────

const reqQtyColumns = `id, domain, allowance_id, base_kind, base_id, required_quantity`

// ReqQtyRepo implementación de ReqQtyRepository (usable con pool o tx).
type ReqQtyRepo struct {
	q Querier
}

// NewReqQtyRepository construye el adaptador.
func NewReqQtyRepository(q Querier) *ReqQtyRepo {
	return &ReqQtyRepo{q: q}
}

// ListByDomain lista las filas de un dominio de todas las dotaciones.
func (r *ReqQtyRepo) ListByDomain(ctx context.Context, domainName string) ([]*entity.ReqQty, error) {
	return r.list(ctx, `SELECT `+reqQtyColumns+` FROM req_qtys WHERE domain = $1`, domainName)
}

// ListByAllowance lista las filas de una dotación.
func (r *ReqQtyRepo) ListByAllowance(ctx context.Context, allowanceID string) ([]*entity.ReqQty, error) {
	return r.list(ctx, `SELECT `+reqQtyColumns+` FROM req_qtys WHERE allowance_id = $1`, allowanceID)
}

func (r *ReqQtyRepo) list(ctx context.Context, query string, arg any) ([]*entity.ReqQty, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list req_qtys: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReqQty
	for rows.Next() {
		var q entity.ReqQty
		if err := rows.Scan(&q.ID, &q.Domain, &q.AllowanceID, &q.BaseKind, &q.BaseID, &q.RequiredQuantity); err != nil {
			return nil, fmt.Errorf("scan req_qty: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza la cantidad de la fila (domain, allowance, base_kind, base_id).
func (r *ReqQtyRepo) Upsert(ctx context.Context, row *entity.ReqQty) error {
	query := `
		INSERT INTO req_qtys (` + reqQtyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (domain, allowance_id, base_kind, base_id)
		DO UPDATE SET required_quantity = EXCLUDED.required_quantity`
	_, err := r.q.Exec(ctx, query, row.ID, row.Domain, row.AllowanceID, row.BaseKind, row.BaseID, row.RequiredQuantity)
	if err != nil {
		return fmt.Errorf("upsert req_qty: %w", err)
	}
	return nil
}

// ReplaceForAllowance borra las filas de la dotación e inserta rows.
// Llamar dentro de una transacción: con el pool el borrado y las inserciones no son atómicos.
func (r *ReqQtyRepo) ReplaceForAllowance(ctx context.Context, allowanceID string, rows []*entity.ReqQty) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM req_qtys WHERE allowance_id = $1`, allowanceID); err != nil {
		return fmt.Errorf("clear req_qtys: %w", err)
	}
	for _, row := range rows {
		row.AllowanceID = allowanceID
		if err := r.Upsert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina una fila.
func (r *ReqQtyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM req_qtys WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete req_qty: %w", err)
	}
	return nil
}
