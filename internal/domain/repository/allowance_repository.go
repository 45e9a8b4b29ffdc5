package repository

import (
	"context"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// AllowanceRepository define el puerto de persistencia para dotaciones (DIP).
type AllowanceRepository interface {
	Create(ctx context.Context, a *entity.Allowance) error
	GetByID(ctx context.Context, id string) (*entity.Allowance, error)
	GetByNameAndAuthor(ctx context.Context, name, author string) (*entity.Allowance, error)
	Update(ctx context.Context, a *entity.Allowance) error
	List(ctx context.Context) ([]*entity.Allowance, error)
	Delete(ctx context.Context, id string) error
}

// ReqQtyRepository define el puerto para las filas de cantidad requerida.
type ReqQtyRepository interface {
	ListByDomain(ctx context.Context, domain string) ([]*entity.ReqQty, error)
	ListByAllowance(ctx context.Context, allowanceID string) ([]*entity.ReqQty, error)
	// Upsert inserta o actualiza la fila (domain, allowance, base_kind, base_id).
	Upsert(ctx context.Context, row *entity.ReqQty) error
	// ReplaceForAllowance borra todas las filas de la dotación e inserta rows.
	ReplaceForAllowance(ctx context.Context, allowanceID string, rows []*entity.ReqQty) error
	Delete(ctx context.Context, id string) error
}
