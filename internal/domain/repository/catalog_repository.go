package repository

import (
	"context"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// MoleculeRepository define el puerto de persistencia para el catálogo de moléculas.
type MoleculeRepository interface {
	Create(ctx context.Context, m *entity.Molecule) error
	GetByID(ctx context.Context, id string) (*entity.Molecule, error)
	GetByName(ctx context.Context, name string) (*entity.Molecule, error)
	Update(ctx context.Context, m *entity.Molecule) error
	// ListAll devuelve el catálogo completo (a bordo son unos cientos de elementos).
	ListAll(ctx context.Context) ([]*entity.Molecule, error)
	Delete(ctx context.Context, id string) error
}

// EquipmentRepository define el puerto de persistencia para el catálogo de material.
type EquipmentRepository interface {
	Create(ctx context.Context, e *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	GetByName(ctx context.Context, name string) (*entity.Equipment, error)
	Update(ctx context.Context, e *entity.Equipment) error
	ListAll(ctx context.Context) ([]*entity.Equipment, error)
	Delete(ctx context.Context, id string) error
}
