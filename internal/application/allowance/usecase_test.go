package allowance_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Botiquin-api/internal/application/allowance"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/allowancepkg"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	allowances map[string]*entity.Allowance
	rows       map[string][]*entity.ReqQty // por allowance
	molecules  map[string]*entity.Molecule
	equipments map[string]*entity.Equipment
}

func newMemDB() *memDB {
	return &memDB{
		allowances: map[string]*entity.Allowance{},
		rows:       map[string][]*entity.ReqQty{},
		molecules:  map[string]*entity.Molecule{},
		equipments: map[string]*entity.Equipment{},
	}
}

type allowanceRepo struct{ db *memDB }

func (r allowanceRepo) Create(_ context.Context, a *entity.Allowance) error {
	cp := *a
	r.db.allowances[a.ID] = &cp
	return nil
}
func (r allowanceRepo) GetByID(_ context.Context, id string) (*entity.Allowance, error) {
	if a, ok := r.db.allowances[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}
func (r allowanceRepo) GetByNameAndAuthor(_ context.Context, name, author string) (*entity.Allowance, error) {
	for _, a := range r.db.allowances {
		if a.Name == name && a.Author == author {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
func (r allowanceRepo) Update(_ context.Context, a *entity.Allowance) error {
	cp := *a
	r.db.allowances[a.ID] = &cp
	return nil
}
func (r allowanceRepo) List(context.Context) ([]*entity.Allowance, error) {
	var out []*entity.Allowance
	for _, a := range r.db.allowances {
		out = append(out, a)
	}
	return out, nil
}
func (r allowanceRepo) Delete(_ context.Context, id string) error {
	delete(r.db.allowances, id)
	delete(r.db.rows, id)
	return nil
}

type reqQtyRepo struct{ db *memDB }

func (r reqQtyRepo) ListByDomain(context.Context, string) ([]*entity.ReqQty, error) {
	return nil, nil
}
func (r reqQtyRepo) ListByAllowance(_ context.Context, id string) ([]*entity.ReqQty, error) {
	return append([]*entity.ReqQty(nil), r.db.rows[id]...), nil
}
func (r reqQtyRepo) Upsert(_ context.Context, row *entity.ReqQty) error {
	r.db.rows[row.AllowanceID] = append(r.db.rows[row.AllowanceID], row)
	return nil
}
func (r reqQtyRepo) ReplaceForAllowance(_ context.Context, id string, rows []*entity.ReqQty) error {
	r.db.rows[id] = rows
	return nil
}
func (r reqQtyRepo) Delete(context.Context, string) error { return nil }

type moleculeRepo struct{ db *memDB }

func (r moleculeRepo) Create(_ context.Context, m *entity.Molecule) error {
	r.db.molecules[m.ID] = m
	return nil
}
func (r moleculeRepo) GetByID(_ context.Context, id string) (*entity.Molecule, error) {
	return r.db.molecules[id], nil
}
func (r moleculeRepo) GetByName(_ context.Context, name string) (*entity.Molecule, error) {
	for _, m := range r.db.molecules {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return nil, nil
}
func (r moleculeRepo) Update(context.Context, *entity.Molecule) error { return nil }
func (r moleculeRepo) ListAll(context.Context) ([]*entity.Molecule, error) {
	var out []*entity.Molecule
	for _, m := range r.db.molecules {
		out = append(out, m)
	}
	return out, nil
}
func (r moleculeRepo) Delete(context.Context, string) error { return nil }

type equipmentRepo struct{ db *memDB }

func (r equipmentRepo) Create(_ context.Context, e *entity.Equipment) error {
	r.db.equipments[e.ID] = e
	return nil
}
func (r equipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	return r.db.equipments[id], nil
}
func (r equipmentRepo) GetByName(_ context.Context, name string) (*entity.Equipment, error) {
	for _, e := range r.db.equipments {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return nil, nil
}
func (r equipmentRepo) Update(context.Context, *entity.Equipment) error { return nil }
func (r equipmentRepo) ListAll(context.Context) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, e := range r.db.equipments {
		out = append(out, e)
	}
	return out, nil
}
func (r equipmentRepo) Delete(context.Context, string) error { return nil }

type txRunner struct{ db *memDB }

func (t txRunner) RunAllowance(_ context.Context, fn func(
	repository.AllowanceRepository,
	repository.ReqQtyRepository,
	repository.MoleculeRepository,
	repository.EquipmentRepository,
) error) error {
	return fn(allowanceRepo{t.db}, reqQtyRepo{t.db}, moleculeRepo{t.db}, equipmentRepo{t.db})
}

type bumpCounter struct{ n int }

func (b *bumpCounter) Bump(context.Context) error {
	b.n++
	return nil
}

func newUC(db *memDB) (*allowance.UseCase, *bumpCounter) {
	bumps := &bumpCounter{}
	uc := allowance.NewUseCase(
		allowanceRepo{db}, reqQtyRepo{db}, moleculeRepo{db}, equipmentRepo{db},
		txRunner{db}, allowancepkg.Codec{}, bumps, logger.Nop(),
	)
	return uc, bumps
}

func boolPtr(b bool) *bool { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DuplicadoPorNombreYAutor(t *testing.T) {
	uc, bumps := newUC(newMemDB())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.AllowanceRequest{Name: "Base", Author: "Sanidad", Version: 1})
	require.NoError(t, err)
	assert.True(t, a.Active, "activa por defecto")
	assert.Equal(t, 1, bumps.n)

	_, err = uc.Create(ctx, dto.AllowanceRequest{Name: " Base ", Author: "Sanidad"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.AllowanceRequest{Name: "Base", Author: "Otro", Active: boolPtr(false)})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.AllowanceRequest{Name: "", Author: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetActive(t *testing.T) {
	uc, bumps := newUC(newMemDB())
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.AllowanceRequest{Name: "Base", Author: "Sanidad"})
	require.NoError(t, err)

	got, err := uc.SetActive(ctx, a.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 2, bumps.n)

	_, err = uc.SetActive(ctx, "nope", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetRequirements(t *testing.T) {
	db := newMemDB()
	db.molecules["m1"] = &entity.Molecule{ID: "m1", Name: "Paracetamol"}
	db.equipments["e1"] = &entity.Equipment{ID: "e1", Name: "Jeringa"}
	uc, _ := newUC(db)
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.AllowanceRequest{Name: "Base", Author: "Sanidad"})
	require.NoError(t, err)

	err = uc.SetRequirements(ctx, a.ID, dto.SetRequirementsRequest{Rows: []dto.RequirementRowDTO{
		{Domain: entity.DomainEquipment, BaseKind: entity.BaseKindEquipment, BaseID: "e1", RequiredQuantity: decimal.NewFromInt(4)},
		{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1", RequiredQuantity: decimal.NewFromInt(100)},
		{Domain: entity.DomainRescueBag, BaseKind: entity.BaseKindMolecule, BaseID: "m1", RequiredQuantity: decimal.NewFromInt(2)},
	}})
	require.NoError(t, err)

	rows, err := uc.Requirements(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, entity.DomainMolecule, rows[0].Domain, "ordenadas por dominio")
	assert.Equal(t, entity.DomainEquipment, rows[1].Domain)
	assert.Equal(t, entity.DomainRescueBag, rows[2].Domain)

	tests := []struct {
		name string
		row  dto.RequirementRowDTO
		want error
	}{
		{"tipo no aceptado por el dominio", dto.RequirementRowDTO{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindEquipment, BaseID: "e1"}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.RequirementRowDTO{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1", RequiredQuantity: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"elemento inexistente", dto.RequirementRowDTO{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m9"}, domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.SetRequirements(ctx, a.ID, dto.SetRequirementsRequest{Rows: []dto.RequirementRowDTO{tc.row}})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	dup := dto.RequirementRowDTO{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1"}
	err = uc.SetRequirements(ctx, a.ID, dto.SetRequirementsRequest{Rows: []dto.RequirementRowDTO{dup, dup}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rows, err = uc.Requirements(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "un reemplazo fallido no toca las filas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquetes
// ──────────────────────────────────────────────────────────────────────────────

func TestExportImport_EnOtroBuque(t *testing.T) {
	src := newMemDB()
	src.molecules["m1"] = &entity.Molecule{ID: "m1", Name: "Paracetamol", Group: "Analgésicos"}
	src.equipments["e1"] = &entity.Equipment{ID: "e1", Name: "Jeringa 5ml"}
	ucSrc, _ := newUC(src)
	ctx := context.Background()

	a, err := ucSrc.Create(ctx, dto.AllowanceRequest{
		Name: "Offshore", Author: "Armador", Version: 2, Additional: true,
		Date: func() *time.Time { d := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); return &d }(),
	})
	require.NoError(t, err)
	require.NoError(t, ucSrc.SetRequirements(ctx, a.ID, dto.SetRequirementsRequest{Rows: []dto.RequirementRowDTO{
		{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, BaseID: "m1", RequiredQuantity: decimal.NewFromInt(40)},
		{Domain: entity.DomainLaboratory, BaseKind: entity.BaseKindEquipment, BaseID: "e1", RequiredQuantity: decimal.NewFromInt(10)},
	}}))

	var pkg bytes.Buffer
	exported, err := ucSrc.Export(ctx, a.ID, &pkg)
	require.NoError(t, err)
	assert.Equal(t, "Offshore", exported.Name)

	// Buque destino: ya conoce el paracetamol (con otra capitalización), no la jeringa.
	dst := newMemDB()
	dst.molecules["x1"] = &entity.Molecule{ID: "x1", Name: "PARACETAMOL"}
	ucDst, bumps := newUC(dst)

	res, err := ucDst.Import(ctx, &pkg)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 0, res.MoleculesCreated)
	assert.Equal(t, 1, res.EquipmentsCreated)
	assert.Equal(t, 2, res.Allowance.Version)
	assert.True(t, res.Allowance.Additional)
	assert.True(t, res.Allowance.Active)
	assert.Equal(t, 1, bumps.n)

	rows := dst.rows[res.Allowance.ID]
	require.Len(t, rows, 2)
	var molRow *entity.ReqQty
	for _, r := range rows {
		if r.BaseKind == entity.BaseKindMolecule {
			molRow = r
		}
	}
	require.NotNil(t, molRow)
	assert.Equal(t, "x1", molRow.BaseID, "se reutiliza el elemento existente por nombre")
}

func TestImport_VersionesYReemplazo(t *testing.T) {
	db := newMemDB()
	uc, _ := newUC(db)
	ctx := context.Background()

	encode := func(version int, rows ...allowance.PackageRow) *bytes.Buffer {
		var buf bytes.Buffer
		require.NoError(t, allowancepkg.Codec{}.Encode(&buf, &allowance.Package{
			Manifest:     allowance.Manifest{Name: "Base", Author: "Sanidad", Version: version},
			Requirements: rows,
		}))
		return &buf
	}
	row := func(name string, qty int64) allowance.PackageRow {
		return allowance.PackageRow{Domain: entity.DomainMolecule, BaseKind: entity.BaseKindMolecule, Name: name, Quantity: decimal.NewFromInt(qty)}
	}

	first, err := uc.Import(ctx, encode(3, row("Morfina", 10), row("Adrenalina", 5)))
	require.NoError(t, err)
	assert.Equal(t, 2, first.MoleculesCreated)

	// Desactivada por el usuario: la reimportación conserva el estado.
	_, err = uc.SetActive(ctx, first.Allowance.ID, false)
	require.NoError(t, err)

	again, err := uc.Import(ctx, encode(3, row("Morfina", 20)))
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.Allowance.ID, again.Allowance.ID)
	assert.False(t, again.Allowance.Active)
	require.Len(t, db.rows[first.Allowance.ID], 1, "las filas se reemplazan")
	assert.True(t, decimal.NewFromInt(20).Equal(db.rows[first.Allowance.ID][0].RequiredQuantity))

	_, err = uc.Import(ctx, encode(2, row("Morfina", 1)))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Import(ctx, encode(4, row("Morfina", 1), row("morfina", 2)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fila duplicada")

	_, err = uc.Import(ctx, bytes.NewBufferString("basura"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_Inexistente(t *testing.T) {
	uc, _ := newUC(newMemDB())
	var buf bytes.Buffer
	_, err := uc.Export(context.Background(), "nope", &buf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
