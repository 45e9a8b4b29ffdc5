// Package inventory contiene el motor de cálculo del estado de la farmacia de a bordo:
// agregación de requerimientos por dotación, reproducción del libro de movimientos,
// clasificación de caducidades y construcción del estado por elemento.
//
// Todas las funciones son puras: no acceden a la base de datos ni al reloj.
package inventory

import (
	"sort"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Contribution aporte de una dotación al requerimiento de un elemento.
type Contribution struct {
	AllowanceID   string
	AllowanceName string
	Additional    bool
	Quantity      decimal.Decimal
}

// ElementKey identifica un elemento de referencia (molécula o material).
type ElementKey struct {
	BaseKind string
	BaseID   string
}

// Requirement cantidad requerida de un elemento y el detalle por dotación.
type Requirement struct {
	Key           ElementKey
	Required      decimal.Decimal
	Contributions []Contribution
}

// RequiredQuantity aplica la regla de dotaciones:
//
//	requerido = Σ(adicionales) + max(0, max(estándar))
//
// Un valor negativo cuenta como cero: una fila nunca reduce el requerimiento.
func RequiredQuantity(contribs []Contribution) decimal.Decimal {
	additional := decimal.Zero
	maxStandard := decimal.Zero
	for _, c := range contribs {
		q := c.Quantity
		if q.IsNegative() {
			q = decimal.Zero
		}
		if c.Additional {
			additional = additional.Add(q)
			continue
		}
		if q.GreaterThan(maxStandard) {
			maxStandard = q
		}
	}
	return additional.Add(maxStandard)
}

// AggregateRequirements agrupa las filas de un dominio por elemento y calcula el requerido.
// allowances contiene solo las dotaciones a considerar: las filas de cualquier otra
// dotación, o de otro dominio, se ignoran.
func AggregateRequirements(domain string, rows []*entity.ReqQty, allowances map[string]*entity.Allowance) map[ElementKey]Requirement {
	grouped := make(map[ElementKey][]Contribution)
	for _, r := range rows {
		if r == nil || r.Domain != domain {
			continue
		}
		a, ok := allowances[r.AllowanceID]
		if !ok {
			continue
		}
		key := ElementKey{BaseKind: r.BaseKind, BaseID: r.BaseID}
		grouped[key] = append(grouped[key], Contribution{
			AllowanceID:   a.ID,
			AllowanceName: a.Name,
			Additional:    a.Additional,
			Quantity:      r.RequiredQuantity,
		})
	}

	out := make(map[ElementKey]Requirement, len(grouped))
	for key, contribs := range grouped {
		sort.SliceStable(contribs, func(i, j int) bool {
			if contribs[i].AllowanceName != contribs[j].AllowanceName {
				return contribs[i].AllowanceName < contribs[j].AllowanceName
			}
			return contribs[i].AllowanceID < contribs[j].AllowanceID
		})
		out[key] = Requirement{
			Key:           key,
			Required:      RequiredQuantity(contribs),
			Contributions: contribs,
		}
	}
	return out
}

// SelectAllowances devuelve el conjunto de dotaciones a considerar.
// Sin ids explícitos se usan las activas; con ids se usan exactamente esas (activas o no).
func SelectAllowances(all []*entity.Allowance, ids []string) map[string]*entity.Allowance {
	out := make(map[string]*entity.Allowance)
	if len(ids) == 0 {
		for _, a := range all {
			if a != nil && a.Active {
				out[a.ID] = a
			}
		}
		return out
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, a := range all {
		if a == nil {
			continue
		}
		if _, ok := wanted[a.ID]; ok {
			out[a.ID] = a
		}
	}
	return out
}
