package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoleculeRequest entrada para crear/actualizar una molécula del catálogo.
type MoleculeRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	RouteOfAdmin string `json:"route_of_admin" validate:"max=100"`
	DosageForm   string `json:"dosage_form" validate:"max=100"`
	Composition  string `json:"composition" validate:"max=200"`
	MedicineList string `json:"medicine_list" validate:"max=50"`
	Group        string `json:"group" validate:"max=100"`
	Remark       string `json:"remark"`
}

// MoleculeResponse salida de una molécula.
type MoleculeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RouteOfAdmin string    `json:"route_of_admin,omitempty"`
	DosageForm   string    `json:"dosage_form,omitempty"`
	Composition  string    `json:"composition,omitempty"`
	MedicineList string    `json:"medicine_list,omitempty"`
	Group        string    `json:"group,omitempty"`
	Remark       string    `json:"remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EquipmentRequest entrada para crear/actualizar un material del catálogo.
type EquipmentRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Packaging  string `json:"packaging" validate:"max=100"`
	Group      string `json:"group" validate:"max=100"`
	Remark     string `json:"remark"`
	Consumable bool   `json:"consumable"`
	Perishable bool   `json:"perishable"`
}

// EquipmentResponse salida de un material.
type EquipmentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Packaging  string    `json:"packaging,omitempty"`
	Group      string    `json:"group,omitempty"`
	Remark     string    `json:"remark,omitempty"`
	Consumable bool      `json:"consumable"`
	Perishable bool      `json:"perishable"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateItemRequest entrada para dar de alta una unidad en stock.
// InitialQuantity > 0 registra un recuento INVENTORY inicial.
type CreateItemRequest struct {
	Domain          string           `json:"domain" validate:"required,oneof=molecule equipment first_aid_kit rescue_bag telemedical laboratory"`
	BaseKind        string           `json:"base_kind" validate:"required,oneof=molecule equipment"`
	BaseID          string           `json:"base_id" validate:"required,uuid"`
	Name            string           `json:"name" validate:"max=200"`
	Packing         string           `json:"packing" validate:"max=100"`
	ExpDate         *time.Time       `json:"exp_date"`
	LocationID      string           `json:"location_id" validate:"omitempty,uuid"`
	ContainerID     string           `json:"container_id" validate:"omitempty,uuid"`
	NcMolecule      string           `json:"nc_molecule"`
	NcComposition   string           `json:"nc_composition"`
	NcPackaging     string           `json:"nc_packaging"`
	NcShape         string           `json:"nc_shape"`
	Remark          string           `json:"remark"`
	InitialQuantity *decimal.Decimal `json:"initial_quantity,omitempty"`
}

// UpdateItemRequest entrada para actualizar una unidad (dominio y referencia no cambian).
type UpdateItemRequest struct {
	Name          *string    `json:"name" validate:"omitempty,max=200"`
	Packing       *string    `json:"packing" validate:"omitempty,max=100"`
	ExpDate       *time.Time `json:"exp_date"`
	ClearExpDate  bool       `json:"clear_exp_date"`
	LocationID    *string    `json:"location_id"`
	ContainerID   *string    `json:"container_id"`
	NcMolecule    *string    `json:"nc_molecule"`
	NcComposition *string    `json:"nc_composition"`
	NcPackaging   *string    `json:"nc_packaging"`
	NcShape       *string    `json:"nc_shape"`
	Remark        *string    `json:"remark"`
}

// ItemResponse salida de una unidad con su cantidad reproducida.
type ItemResponse struct {
	ID            string          `json:"id"`
	Domain        string          `json:"domain"`
	BaseKind      string          `json:"base_kind"`
	BaseID        string          `json:"base_id"`
	Name          string          `json:"name"`
	Packing       string          `json:"packing,omitempty"`
	ExpDate       *time.Time      `json:"exp_date,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	ContainerID   string          `json:"container_id,omitempty"`
	NcMolecule    string          `json:"nc_molecule,omitempty"`
	NcComposition string          `json:"nc_composition,omitempty"`
	NcPackaging   string          `json:"nc_packaging,omitempty"`
	NcShape       string          `json:"nc_shape,omitempty"`
	Nc            bool            `json:"nc"`
	Remark        string          `json:"remark,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
