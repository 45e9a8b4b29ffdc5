package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memLocations struct{ m map[string]*entity.Location }

func (r *memLocations) Create(_ context.Context, l *entity.Location) error {
	r.m[l.ID] = l
	return nil
}
func (r *memLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.m[id], nil
}
func (r *memLocations) Update(_ context.Context, l *entity.Location) error {
	r.m[l.ID] = l
	return nil
}
func (r *memLocations) ListAll(context.Context) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(r.m))
	for _, l := range r.m {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memLocations) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type memMolecules struct{ m map[string]*entity.Molecule }

func (r *memMolecules) Create(_ context.Context, x *entity.Molecule) error {
	r.m[x.ID] = x
	return nil
}
func (r *memMolecules) GetByID(_ context.Context, id string) (*entity.Molecule, error) {
	return r.m[id], nil
}
func (r *memMolecules) GetByName(_ context.Context, name string) (*entity.Molecule, error) {
	for _, x := range r.m {
		if strings.EqualFold(x.Name, name) {
			return x, nil
		}
	}
	return nil, nil
}
func (r *memMolecules) Update(_ context.Context, x *entity.Molecule) error {
	r.m[x.ID] = x
	return nil
}
func (r *memMolecules) ListAll(context.Context) ([]*entity.Molecule, error) {
	var out []*entity.Molecule
	for _, x := range r.m {
		out = append(out, x)
	}
	return out, nil
}
func (r *memMolecules) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type memEquipments struct{ m map[string]*entity.Equipment }

func (r *memEquipments) Create(_ context.Context, x *entity.Equipment) error {
	r.m[x.ID] = x
	return nil
}
func (r *memEquipments) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	return r.m[id], nil
}
func (r *memEquipments) GetByName(_ context.Context, name string) (*entity.Equipment, error) {
	for _, x := range r.m {
		if strings.EqualFold(x.Name, name) {
			return x, nil
		}
	}
	return nil, nil
}
func (r *memEquipments) Update(_ context.Context, x *entity.Equipment) error {
	r.m[x.ID] = x
	return nil
}
func (r *memEquipments) ListAll(context.Context) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, x := range r.m {
		out = append(out, x)
	}
	return out, nil
}
func (r *memEquipments) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type memContainers struct{ m map[string]*entity.Container }

func (r *memContainers) Create(_ context.Context, c *entity.Container) error {
	r.m[c.ID] = c
	return nil
}
func (r *memContainers) GetByID(_ context.Context, id string) (*entity.Container, error) {
	return r.m[id], nil
}
func (r *memContainers) Update(_ context.Context, c *entity.Container) error {
	r.m[c.ID] = c
	return nil
}
func (r *memContainers) ListByKind(_ context.Context, kind string) ([]*entity.Container, error) {
	var out []*entity.Container
	for _, c := range r.m {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *memContainers) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type memItems struct{ m map[string]*entity.Item }

func (r *memItems) Create(_ context.Context, it *entity.Item) error {
	r.m[it.ID] = it
	return nil
}
func (r *memItems) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return r.m[id], nil
}
func (r *memItems) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}
func (r *memItems) Update(_ context.Context, it *entity.Item) error {
	r.m[it.ID] = it
	return nil
}
func (r *memItems) ListByDomain(_ context.Context, d string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.m {
		if it.Domain == d {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *memItems) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type memTxs struct{ list []*entity.QtyTransaction }

func (r *memTxs) Create(_ context.Context, t *entity.QtyTransaction) error {
	r.list = append(r.list, t)
	return nil
}
func (r *memTxs) ListByItem(_ context.Context, id string) ([]*entity.QtyTransaction, error) {
	var out []*entity.QtyTransaction
	for _, t := range r.list {
		if t.ItemID == id {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTxs) ListByItems(_ context.Context, ids []string) (map[string][]*entity.QtyTransaction, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := map[string][]*entity.QtyTransaction{}
	for _, t := range r.list {
		if want[t.ItemID] {
			out[t.ItemID] = append(out[t.ItemID], t)
		}
	}
	return out, nil
}

type memVessel struct{ v *entity.Vessel }

func (r *memVessel) Get(context.Context) (*entity.Vessel, error) { return r.v, nil }
func (r *memVessel) Save(_ context.Context, v *entity.Vessel) error {
	r.v = v
	return nil
}

type runner struct {
	items *memItems
	txs   *memTxs
}

func (r runner) Run(_ context.Context, fn func(repository.ItemRepository, repository.QtyTransactionRepository) error) error {
	return fn(r.items, r.txs)
}

type bumps struct{ n int }

func (b *bumps) Bump(context.Context) error {
	b.n++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLocation_RutasYCiclos(t *testing.T) {
	repo := &memLocations{m: map[string]*entity.Location{}}
	b := &bumps{}
	uc := usecase.NewLocationUseCase(repo, b, nil)
	ctx := context.Background()

	hosp, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Hospital"})
	require.NoError(t, err)
	arm, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Armario A", ParentID: hosp.ID})
	require.NoError(t, err)
	est, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Estante 2", ParentID: arm.ID})
	require.NoError(t, err)
	assert.Equal(t, "Hospital > Armario A > Estante 2", est.Path)

	_, err = uc.Create(ctx, dto.CreateLocationRequest{Name: "X", ParentID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, hosp.ID, dto.UpdateLocationRequest{ParentID: &est.ID})
	assert.ErrorIs(t, err, domain.ErrCycle)
	_, err = uc.Update(ctx, hosp.ID, dto.UpdateLocationRequest{ParentID: &hosp.ID})
	assert.ErrorIs(t, err, domain.ErrCycle)

	root := ""
	moved, err := uc.Update(ctx, est.ID, dto.UpdateLocationRequest{ParentID: &root})
	require.NoError(t, err)
	assert.Equal(t, "Estante 2", moved.Path)
	assert.Equal(t, 1, b.n)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Estante 2", list[0].Path)
	assert.Equal(t, "Hospital", list[1].Path)
	assert.Equal(t, "Hospital > Armario A", list[2].Path)

	missing, err := uc.Update(ctx, "nope", dto.UpdateLocationRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_NombreUnico(t *testing.T) {
	mols := &memMolecules{m: map[string]*entity.Molecule{}}
	eqs := &memEquipments{m: map[string]*entity.Equipment{}}
	uc := usecase.NewCatalogUseCase(mols, eqs, nil, nil)
	ctx := context.Background()

	p, err := uc.CreateMolecule(ctx, dto.MoleculeRequest{Name: "Paracetamol", Group: "Analgésicos"})
	require.NoError(t, err)
	_, err = uc.CreateMolecule(ctx, dto.MoleculeRequest{Name: "PARACETAMOL"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	m, err := uc.CreateMolecule(ctx, dto.MoleculeRequest{Name: "Morfina", Group: "Analgésicos"})
	require.NoError(t, err)
	_, err = uc.UpdateMolecule(ctx, m.ID, dto.MoleculeRequest{Name: "paracetamol"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Cambiar solo la capitalización del propio nombre está permitido.
	upd, err := uc.UpdateMolecule(ctx, p.ID, dto.MoleculeRequest{Name: "paracetamol", Group: "Analgésicos"})
	require.NoError(t, err)
	assert.Equal(t, "paracetamol", upd.Name)

	list, err := uc.ListMolecules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Morfina", list[0].Name)

	_, err = uc.CreateEquipment(ctx, dto.EquipmentRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Unidades
// ──────────────────────────────────────────────────────────────────────────────

type itemFixture struct {
	uc    *usecase.ItemUseCase
	items *memItems
	txs   *memTxs
	bumps *bumps
}

func newItemFixture() itemFixture {
	items := &memItems{m: map[string]*entity.Item{}}
	txs := &memTxs{}
	b := &bumps{}
	repos := usecase.ItemRepositories{
		Items:        items,
		Transactions: txs,
		Molecules: &memMolecules{m: map[string]*entity.Molecule{
			"m1": {ID: "m1", Name: "Paracetamol"},
		}},
		Equipments: &memEquipments{m: map[string]*entity.Equipment{
			"e1": {ID: "e1", Name: "Tijeras", Perishable: false},
			"e2": {ID: "e2", Name: "Jeringa", Perishable: true},
		}},
		Containers: &memContainers{m: map[string]*entity.Container{
			"k1": {ID: "k1", Kind: entity.ContainerFirstAidKit, Name: "Botiquín puente"},
			"b1": {ID: "b1", Kind: entity.ContainerRescueBag, Name: "Bolsa 1"},
		}},
		Locations: &memLocations{m: map[string]*entity.Location{
			"l1": {ID: "l1", Name: "Hospital"},
		}},
	}
	return itemFixture{
		uc:    usecase.NewItemUseCase(repos, runner{items, txs}, b, nil),
		items: items,
		txs:   txs,
		bumps: b,
	}
}

func TestItem_CreateConCantidadInicial(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	exp := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	qty := decimal.NewFromInt(24)

	got, err := f.uc.Create(ctx, "u1", dto.CreateItemRequest{
		Domain:          entity.DomainMolecule,
		BaseKind:        entity.BaseKindMolecule,
		BaseID:          "m1",
		ExpDate:         &exp,
		LocationID:      "l1",
		NcPackaging:     "blíster distinto",
		InitialQuantity: &qty,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", got.Name, "sin nombre comercial se usa el de la referencia")
	assert.True(t, got.Quantity.Equal(qty))
	assert.True(t, got.Nc)
	assert.Equal(t, 1, f.bumps.n)

	require.Len(t, f.txs.list, 1)
	assert.Equal(t, entity.TxInventory, f.txs.list[0].Type)
	assert.Equal(t, "u1", f.txs.list[0].CreatedBy)

	again, err := f.uc.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, again.Quantity.Equal(qty))

	list, err := f.uc.List(ctx, entity.DomainMolecule, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.Equal(qty))
}

func TestItem_Validaciones(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	exp := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	neg := decimal.NewFromInt(-1)

	tests := []struct {
		name string
		in   dto.CreateItemRequest
		want error
	}{
		{"dominio desconocido", dto.CreateItemRequest{Domain: "x", BaseKind: entity.BaseKindMolecule, BaseID: "m1"}, domain.ErrInvalidInput},
		{"tipo no aceptado", dto.CreateItemRequest{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindEquipment, BaseID: "e1"}, domain.ErrInvalidInput},
		{"referencia inexistente", dto.CreateItemRequest{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m9"}, domain.ErrNotFound},
		{"caducidad en material no perecedero", dto.CreateItemRequest{Domain: entity.DomainEquipment, BaseKind: entity.BaseKindEquipment, BaseID: "e1", ExpDate: &exp}, domain.ErrInvalidInput},
		{"cantidad inicial negativa", dto.CreateItemRequest{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1", InitialQuantity: &neg}, domain.ErrInvalidInput},
		{"contenedor fuera de botiquín", dto.CreateItemRequest{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1", ContainerID: "k1"}, domain.ErrInvalidInput},
		{"contenedor de otro tipo", dto.CreateItemRequest{Domain: entity.DomainFirstAidKit, BaseKind: entity.BaseKindMolecule, BaseID: "m1", ContainerID: "b1"}, domain.ErrInvalidInput},
		{"ubicación inexistente", dto.CreateItemRequest{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1", LocationID: "l9"}, domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, "u1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.items.m)

	ok, err := f.uc.Create(ctx, "u1", dto.CreateItemRequest{
		Domain: entity.DomainFirstAidKit, BaseKind: entity.BaseKindEquipment, BaseID: "e2", ContainerID: "k1", ExpDate: &exp,
	})
	require.NoError(t, err)
	assert.True(t, ok.Quantity.IsZero())
	assert.Empty(t, f.txs.list, "sin cantidad inicial no hay recuento")
}

func TestItem_Update(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	exp := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	it, err := f.uc.Create(ctx, "u1", dto.CreateItemRequest{
		Domain: entity.DomainFirstAidKit, BaseKind: entity.BaseKindMolecule, BaseID: "m1", ContainerID: "k1", ExpDate: &exp,
	})
	require.NoError(t, err)

	wrong := "b1"
	_, err = f.uc.Update(ctx, it.ID, dto.UpdateItemRequest{ContainerID: &wrong})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	none := ""
	got, err := f.uc.Update(ctx, it.ID, dto.UpdateItemRequest{ContainerID: &none, ClearExpDate: true})
	require.NoError(t, err)
	assert.Empty(t, got.ContainerID)
	assert.Nil(t, got.ExpDate)

	missing, err := f.uc.Update(ctx, "nope", dto.UpdateItemRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contenedores y buque
// ──────────────────────────────────────────────────────────────────────────────

func TestContainer_ListPorTipo(t *testing.T) {
	repo := &memContainers{m: map[string]*entity.Container{}}
	locs := &memLocations{m: map[string]*entity.Location{"l1": {ID: "l1", Name: "Puente"}}}
	uc := usecase.NewContainerUseCase(repo, locs, nil, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateContainerRequest{Kind: entity.ContainerFirstAidKit, Name: "Zeta", LocationID: "l1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateContainerRequest{Kind: entity.ContainerFirstAidKit, Name: "Alfa"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateContainerRequest{Kind: entity.ContainerRescueBag, Name: "Bolsa"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateContainerRequest{Kind: entity.DomainLaboratory, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	kits, err := uc.List(ctx, entity.ContainerFirstAidKit)
	require.NoError(t, err)
	require.Len(t, kits, 2)
	assert.Equal(t, "Alfa", kits[0].Name)
	assert.Equal(t, "Puente", kits[1].LocationPath)

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestVessel_ValoresPorDefecto(t *testing.T) {
	repo := &memVessel{}
	b := &bumps{}
	uc := usecase.NewVesselUseCase(repo, 60, b, nil)
	ctx := context.Background()

	v, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, v.ExpiryWarningDays)

	saved, err := uc.Save(ctx, dto.VesselRequest{Name: "Esperanza"})
	require.NoError(t, err)
	assert.Equal(t, 60, saved.ExpiryWarningDays, "sin ventana se conserva la actual")

	days := 30
	saved, err = uc.Save(ctx, dto.VesselRequest{Name: "Esperanza", ExpiryWarningDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 30, saved.ExpiryWarningDays)
	assert.Equal(t, 2, b.n)

	_, err = uc.Save(ctx, dto.VesselRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
