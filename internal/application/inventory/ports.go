package inventory

import (
	"context"

	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la comprobación de stock y la escritura en el libro sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		txRepo repository.QtyTransactionRepository,
	) error) error
}

// StatusCache guarda reportes de estado ya calculados.
// Las claves incluyen la generación de datos: Bump invalida todo lo anterior sin borrar claves.
type StatusCache interface {
	Generation(ctx context.Context) (int64, error)
	Bump(ctx context.Context) error
	// Get decodifica en dst; false si no existe.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Repositories puertos de lectura que necesita el cálculo de estado.
type Repositories struct {
	Allowances   repository.AllowanceRepository
	ReqQtys      repository.ReqQtyRepository
	Molecules    repository.MoleculeRepository
	Equipments   repository.EquipmentRepository
	Items        repository.ItemRepository
	Transactions repository.QtyTransactionRepository
	Locations    repository.LocationRepository
	Containers   repository.ContainerRepository
	Vessel       repository.VesselRepository
}

// noCache se usa cuando Redis no está configurado.
type noCache struct{}

func (noCache) Generation(context.Context) (int64, error) { return 0, nil }
func (noCache) Bump(context.Context) error { return nil }
func (noCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noCache) Set(context.Context, string, any) error { return nil }
