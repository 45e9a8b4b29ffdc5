package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusFilter subconjunto de dotaciones a considerar. Vacío = dotaciones activas del buque.
type StatusFilter struct {
	AllowanceIDs []string `query:"allowance_id" validate:"omitempty,dive,uuid"`
}

// ContributionDTO aporte de una dotación al requerido de un elemento.
type ContributionDTO struct {
	AllowanceID   string          `json:"allowance_id"`
	AllowanceName string          `json:"allowance_name"`
	Additional    bool            `json:"additional"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// StockLineDTO unidad en stock dentro del estado de un elemento.
type StockLineDTO struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Packing      string          `json:"packing,omitempty"`
	ExpDate      *time.Time      `json:"exp_date,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Expiry       string          `json:"expiry"` // NONE, OK, WARNING, EXPIRED
	Nc           bool            `json:"nc"`
	LocationID   string          `json:"location_id,omitempty"`
	LocationPath string          `json:"location_path,omitempty"`
}

// ElementStatusDTO estado de un elemento de referencia frente a sus requerimientos.
type ElementStatusDTO struct {
	BaseKind        string            `json:"base_kind"`
	BaseID          string            `json:"base_id"`
	Name            string            `json:"name"`
	Group           string            `json:"group,omitempty"`
	Required        decimal.Decimal   `json:"required"`
	Current         decimal.Decimal   `json:"current"` // sin caducados
	ExpiredQuantity decimal.Decimal   `json:"expired_quantity"`
	Missing         decimal.Decimal   `json:"missing"`
	HasDateExpired  bool              `json:"has_date_expired"`
	HasDateWarning  bool              `json:"has_date_warning"`
	HasNc           bool              `json:"has_nc"`
	Shortage        bool              `json:"shortage"`
	Contributions   []ContributionDTO `json:"contributions"`
	Lines           []StockLineDTO    `json:"lines"`
}

// SummaryDTO conteos de un dominio o contenedor.
type SummaryDTO struct {
	Elements   int `json:"elements"`
	Shortages  int `json:"shortages"`
	Expired    int `json:"expired"`
	Warnings   int `json:"warnings"`
	NonConform int `json:"non_conform"`
}

// ContainerStatusDTO estado de un botiquín o bolsa de rescate.
type ContainerStatusDTO struct {
	ContainerID  string             `json:"container_id"` // vacío = elementos sin contenedor asignado
	Name         string             `json:"name"`
	LocationPath string             `json:"location_path,omitempty"`
	Elements     []ElementStatusDTO `json:"elements"`
	Summary      SummaryDTO         `json:"summary"`
}

// DomainStatusDTO respuesta de GET /api/inventory/status?domain=...
// Los dominios de contenedor (first_aid_kit, rescue_bag) llenan Containers; el resto Elements.
type DomainStatusDTO struct {
	Domain       string               `json:"domain"`
	AllowanceIDs []string             `json:"allowance_ids"`
	Elements     []ElementStatusDTO   `json:"elements,omitempty"`
	Containers   []ContainerStatusDTO `json:"containers,omitempty"`
	Summary      SummaryDTO           `json:"summary"`
	WarningDays  int                  `json:"warning_days"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// FullStatusDTO estado de todos los dominios.
type FullStatusDTO struct {
	Domains []DomainStatusDTO `json:"domains"`
	Summary SummaryDTO        `json:"summary"`
}

// RegisterTransactionRequest body para POST /api/inventory/transactions.
// Type: 1 INVENTORY, 2 IN, 4 USED, 8 PERISHED, 16 PHYSICAL_COUNT, 32 OTHER.
type RegisterTransactionRequest struct {
	ItemID string          `json:"item_id" validate:"required,uuid"`
	Type   int             `json:"type" validate:"required,oneof=1 2 4 8 16 32"`
	Value  decimal.Decimal `json:"value"`
	Date   *time.Time      `json:"date,omitempty"` // por defecto ahora
	Remark string          `json:"remark" validate:"max=500"`
}

// PerishItemRequest body opcional para POST /api/items/:id/perish.
type PerishItemRequest struct {
	Remark string `json:"remark" validate:"max=500"`
}

// TransactionResponse entrada del libro de movimientos.
type TransactionResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Type      int             `json:"type"`
	TypeName  string          `json:"type_name"`
	Value     decimal.Decimal `json:"value"`
	Date      time.Time       `json:"date"`
	CreatedBy string          `json:"created_by,omitempty"`
	Remark    string          `json:"remark,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ItemHistoryResponse libro de un item con la cantidad resultante.
type ItemHistoryResponse struct {
	ItemID       string                `json:"item_id"`
	Quantity     decimal.Decimal       `json:"quantity"`
	Clamped      bool                  `json:"clamped"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ShortageDTO elemento con faltante (lista de reposición).
type ShortageDTO struct {
	Priority      int             `json:"priority"` // 1 = primero de la lista
	Domain        string          `json:"domain"`
	ContainerID   string          `json:"container_id,omitempty"`
	ContainerName string          `json:"container_name,omitempty"`
	BaseKind      string          `json:"base_kind"`
	BaseID        string          `json:"base_id"`
	Name          string          `json:"name"`
	Group         string          `json:"group,omitempty"`
	Required      decimal.Decimal `json:"required"`
	Current       decimal.Decimal `json:"current"`
	Missing       decimal.Decimal `json:"missing"`
}

// ExpiringItemDTO unidad caducada o próxima a caducar.
type ExpiringItemDTO struct {
	ItemID       string          `json:"item_id"`
	Domain       string          `json:"domain"`
	BaseKind     string          `json:"base_kind"`
	BaseID       string          `json:"base_id"`
	Name         string          `json:"name"`
	ExpDate      time.Time       `json:"exp_date"`
	Quantity     decimal.Decimal `json:"quantity"`
	Expiry       string          `json:"expiry"`
	ContainerID  string          `json:"container_id,omitempty"`
	LocationPath string          `json:"location_path,omitempty"`
}
