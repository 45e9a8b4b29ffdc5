package allowance

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AllowanceTxRunner ejecuta la importación de un paquete en una sola transacción.
type AllowanceTxRunner interface {
	RunAllowance(ctx context.Context, fn func(
		allowanceRepo repository.AllowanceRepository,
		reqQtyRepo repository.ReqQtyRepository,
		moleculeRepo repository.MoleculeRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}

// CacheInvalidator invalida los reportes de estado calculados.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// PackageCodec lee y escribe paquetes de dotación.
type PackageCodec interface {
	Encode(w io.Writer, p *Package) error
	Decode(r io.Reader) (*Package, error)
}

// Package contenido de un paquete de dotación. Los elementos se referencian por nombre
// para que el paquete sea portable entre buques.
type Package struct {
	Manifest     Manifest
	Requirements []PackageRow
}

// Manifest cabecera del paquete.
type Manifest struct {
	Name       string
	Author     string
	Version    int
	Date       time.Time
	Additional bool
}

// PackageRow una fila de cantidad requerida.
type PackageRow struct {
	Domain   string
	BaseKind string
	Name     string
	Group    string // se usa solo al crear el elemento en el catálogo
	Quantity decimal.Decimal
}
