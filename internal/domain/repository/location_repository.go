package repository

import (
	"context"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, l *entity.Location) error
	ListAll(ctx context.Context) ([]*entity.Location, error)
	Delete(ctx context.Context, id string) error
}

// ContainerRepository define el puerto para botiquines y bolsas de rescate.
type ContainerRepository interface {
	Create(ctx context.Context, c *entity.Container) error
	GetByID(ctx context.Context, id string) (*entity.Container, error)
	Update(ctx context.Context, c *entity.Container) error
	ListByKind(ctx context.Context, kind string) ([]*entity.Container, error)
	Delete(ctx context.Context, id string) error
}

// VesselRepository lee y guarda los ajustes del buque.
type VesselRepository interface {
	// Get devuelve nil (sin error) si todavía no hay ajustes guardados.
	Get(ctx context.Context) (*entity.Vessel, error)
	Save(ctx context.Context, v *entity.Vessel) error
}
