package entity

import "github.com/shopspring/decimal"

// Dominios de requerimiento.
const (
	DomainMolecule    = "molecule"
	DomainEquipment   = "equipment"
	DomainFirstAidKit = "first_aid_kit"
	DomainRescueBag   = "rescue_bag"
	DomainTelemedical = "telemedical"
	DomainLaboratory  = "laboratory"
)

// Domains lista los dominios en el orden en que se presentan los reportes.
var Domains = []string{
	DomainMolecule,
	DomainEquipment,
	DomainFirstAidKit,
	DomainRescueBag,
	DomainTelemedical,
	DomainLaboratory,
}

// ValidDomain indica si d es un dominio conocido.
func ValidDomain(d string) bool {
	for _, x := range Domains {
		if x == d {
			return true
		}
	}
	return false
}

// IsContainerDomain indica si los requerimientos del dominio aplican a cada contenedor
// (botiquín o bolsa de rescate) en lugar de a la farmacia principal.
func IsContainerDomain(d string) bool {
	return d == DomainFirstAidKit || d == DomainRescueBag
}

// AcceptsBaseKind indica si un dominio puede referenciar elementos de ese tipo.
func AcceptsBaseKind(domain, baseKind string) bool {
	switch domain {
	case DomainMolecule:
		return baseKind == BaseKindMolecule
	case DomainEquipment, DomainTelemedical, DomainLaboratory:
		return baseKind == BaseKindEquipment
	case DomainFirstAidKit, DomainRescueBag:
		return ValidBaseKind(baseKind)
	}
	return false
}

// ReqQty vincula un elemento de referencia con una dotación y su cantidad requerida.
type ReqQty struct {
	ID               string
	Domain           string
	AllowanceID      string
	BaseKind         string
	BaseID           string
	RequiredQuantity decimal.Decimal
}
