package inventory_test

import (
	"testing"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRequiredQuantity(t *testing.T) {
	tests := []struct {
		name     string
		contribs []inventory.Contribution
		want     int64
	}{
		{name: "sin filas", want: 0},
		{
			name: "solo estándar toma el máximo",
			contribs: []inventory.Contribution{
				{Quantity: d(10)}, {Quantity: d(25)}, {Quantity: d(5)},
			},
			want: 25,
		},
		{
			name: "solo adicionales se suman",
			contribs: []inventory.Contribution{
				{Additional: true, Quantity: d(3)}, {Additional: true, Quantity: d(4)},
			},
			want: 7,
		},
		{
			name: "adicionales más máximo estándar",
			contribs: []inventory.Contribution{
				{Quantity: d(10)}, {Quantity: d(20)},
				{Additional: true, Quantity: d(2)}, {Additional: true, Quantity: d(5)},
			},
			want: 27,
		},
		{
			name: "negativos cuentan como cero",
			contribs: []inventory.Contribution{
				{Quantity: d(-10)}, {Additional: true, Quantity: d(-3)}, {Additional: true, Quantity: d(1)},
			},
			want: 1,
		},
		{
			name: "estándar en cero no resta",
			contribs: []inventory.Contribution{
				{Quantity: d(0)}, {Additional: true, Quantity: d(6)},
			},
			want: 6,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.RequiredQuantity(tc.contribs)
			assert.True(t, d(tc.want).Equal(got), "esperado %d, obtenido %s", tc.want, got)
		})
	}
}

func TestAggregateRequirements_FiltraDominioYDotacion(t *testing.T) {
	base := &entity.Allowance{ID: "a1", Name: "Dotación A"}
	offshore := &entity.Allowance{ID: "a2", Name: "Dotación B"}
	extra := &entity.Allowance{ID: "a3", Name: "Pasajeros", Additional: true}
	allowances := map[string]*entity.Allowance{"a1": base, "a2": offshore, "a3": extra}

	rows := []*entity.ReqQty{
		{Domain: entity.DomainMolecule, AllowanceID: "a1", BaseKind: entity.BaseKindMolecule, BaseID: "paracetamol", RequiredQuantity: d(100)},
		{Domain: entity.DomainMolecule, AllowanceID: "a2", BaseKind: entity.BaseKindMolecule, BaseID: "paracetamol", RequiredQuantity: d(60)},
		{Domain: entity.DomainMolecule, AllowanceID: "a3", BaseKind: entity.BaseKindMolecule, BaseID: "paracetamol", RequiredQuantity: d(20)},
		{Domain: entity.DomainMolecule, AllowanceID: "a1", BaseKind: entity.BaseKindMolecule, BaseID: "morfina", RequiredQuantity: d(10)},
		// otro dominio
		{Domain: entity.DomainEquipment, AllowanceID: "a1", BaseKind: entity.BaseKindEquipment, BaseID: "jeringa", RequiredQuantity: d(50)},
		// dotación fuera del filtro
		{Domain: entity.DomainMolecule, AllowanceID: "zz", BaseKind: entity.BaseKindMolecule, BaseID: "morfina", RequiredQuantity: d(999)},
		nil,
	}

	got := inventory.AggregateRequirements(entity.DomainMolecule, rows, allowances)
	require.Len(t, got, 2)

	para := got[inventory.ElementKey{BaseKind: entity.BaseKindMolecule, BaseID: "paracetamol"}]
	assert.True(t, d(120).Equal(para.Required), "100 (máx estándar) + 20 (adicional)")
	require.Len(t, para.Contributions, 3)
	assert.Equal(t, "Dotación A", para.Contributions[0].AllowanceName, "ordenadas por nombre de dotación")
	assert.True(t, para.Contributions[2].Additional)

	morf := got[inventory.ElementKey{BaseKind: entity.BaseKindMolecule, BaseID: "morfina"}]
	assert.True(t, d(10).Equal(morf.Required))
}

func TestSelectAllowances(t *testing.T) {
	all := []*entity.Allowance{
		{ID: "a1", Active: true},
		{ID: "a2", Active: false},
		{ID: "a3", Active: true},
	}

	active := inventory.SelectAllowances(all, nil)
	assert.Len(t, active, 2)
	assert.Contains(t, active, "a1")
	assert.Contains(t, active, "a3")

	explicit := inventory.SelectAllowances(all, []string{"a2", "desconocida"})
	assert.Len(t, explicit, 1)
	assert.Contains(t, explicit, "a2", "un filtro explícito incluye dotaciones inactivas")
}
