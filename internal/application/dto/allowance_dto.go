package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceRequest entrada para crear/actualizar una dotación.
type AllowanceRequest struct {
	Name       string     `json:"name" validate:"required,min=1,max=200"`
	Author     string     `json:"author" validate:"required,min=1,max=200"`
	Version    int        `json:"version" validate:"min=0"`
	Date       *time.Time `json:"date"`
	Additional bool       `json:"additional"`
	Active     *bool      `json:"active"`
}

// AllowanceResponse salida de una dotación.
type AllowanceResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Author     string    `json:"author"`
	Version    int       `json:"version"`
	Date       time.Time `json:"date"`
	Additional bool      `json:"additional"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SetActiveRequest body de PATCH /api/allowances/:id/active.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// RequirementRowDTO una fila de cantidad requerida de una dotación.
type RequirementRowDTO struct {
	Domain           string          `json:"domain" validate:"required,oneof=molecule equipment first_aid_kit rescue_bag telemedical laboratory"`
	BaseKind         string          `json:"base_kind" validate:"required,oneof=molecule equipment"`
	BaseID           string          `json:"base_id" validate:"required,uuid"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
}

// SetRequirementsRequest body de PUT /api/allowances/:id/requirements (reemplaza todas las filas).
type SetRequirementsRequest struct {
	Rows []RequirementRowDTO `json:"rows" validate:"dive"`
}

// ImportResultDTO resultado de importar un paquete de dotación.
type ImportResultDTO struct {
	Allowance         AllowanceResponse `json:"allowance"`
	Created           bool              `json:"created"` // false = se actualizó una existente
	Rows              int               `json:"rows"`
	MoleculesCreated  int               `json:"molecules_created"`
	EquipmentsCreated int               `json:"equipments_created"`
}
