package entity

import "time"

// Tipos de elemento de referencia.
const (
	BaseKindMolecule  = "molecule"
	BaseKindEquipment = "equipment"
)

// ValidBaseKind indica si k es un tipo de elemento de referencia conocido.
func ValidBaseKind(k string) bool {
	return k == BaseKindMolecule || k == BaseKindEquipment
}

// Molecule es un medicamento genérico del catálogo (DCI + forma + vía).
type Molecule struct {
	ID           string
	Name         string
	RouteOfAdmin string
	DosageForm   string
	Composition  string
	MedicineList string // lista reglamentaria (I, II, estupefaciente...)
	Group        string
	Remark       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Equipment es un material genérico del catálogo.
type Equipment struct {
	ID         string
	Name       string
	Packaging  string
	Group      string
	Remark     string
	Consumable bool
	Perishable bool // sin fecha de caducidad si es false
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
