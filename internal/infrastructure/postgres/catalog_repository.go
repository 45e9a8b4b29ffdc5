package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var (
	_ repository.MoleculeRepository  = (*MoleculeRepo)(nil)
	_ repository.EquipmentRepository = (*EquipmentRepo)(nil)
)

const moleculeColumns = `id, name, route_of_admin, dosage_form, composition, medicine_list, group_name, remark, created_at, updated_at`

// MoleculeRepo implementación de MoleculeRepository (usable con pool o tx).
type MoleculeRepo struct {
	q Querier
}

// NewMoleculeRepository construye el adaptador.
func NewMoleculeRepository(q Querier) *MoleculeRepo {
	return &MoleculeRepo{q: q}
}

// Create persiste una molécula. Nombre duplicado (sin mayúsculas) → ErrDuplicate.
func (r *MoleculeRepo) Create(ctx context.Context, m *entity.Molecule) error {
	query := `INSERT INTO molecules (` + moleculeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.RouteOfAdmin, m.DosageForm, m.Composition, m.MedicineList, m.Group, m.Remark,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert molecule: %w", err)
	}
	return nil
}

// GetByID obtiene una molécula; nil si no existe.
func (r *MoleculeRepo) GetByID(ctx context.Context, id string) (*entity.Molecule, error) {
	return r.findOne(ctx, `SELECT `+moleculeColumns+` FROM molecules WHERE id = $1`, id)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *MoleculeRepo) GetByName(ctx context.Context, name string) (*entity.Molecule, error) {
	return r.findOne(ctx, `SELECT `+moleculeColumns+` FROM molecules WHERE lower(name) = lower($1)`, name)
}

func (r *MoleculeRepo) findOne(ctx context.Context, query string, arg any) (*entity.Molecule, error) {
	m, err := scanMolecule(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get molecule: %w", err)
	}
	return m, nil
}

// Update actualiza una molécula.
func (r *MoleculeRepo) Update(ctx context.Context, m *entity.Molecule) error {
	query := `
		UPDATE molecules SET name = $2, route_of_admin = $3, dosage_form = $4, composition = $5,
			medicine_list = $6, group_name = $7, remark = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.RouteOfAdmin, m.DosageForm, m.Composition, m.MedicineList, m.Group, m.Remark, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update molecule: %w", err)
	}
	return nil
}

// ListAll devuelve el catálogo completo.
func (r *MoleculeRepo) ListAll(ctx context.Context) ([]*entity.Molecule, error) {
	rows, err := r.q.Query(ctx, `SELECT `+moleculeColumns+` FROM molecules ORDER BY group_name, name`)
	if err != nil {
		return nil, fmt.Errorf("list molecules: %w", err)
	}
	defer rows.Close()
	var list []*entity.Molecule
	for rows.Next() {
		m, err := scanMolecule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan molecule: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina una molécula. Con unidades o filas que la referencian → ErrConflict.
func (r *MoleculeRepo) Delete(ctx context.Context, id string) error {
	return deleteCatalogEntry(ctx, r.q, "molecules", entity.BaseKindMolecule, id)
}

func scanMolecule(row pgx.Row) (*entity.Molecule, error) {
	var m entity.Molecule
	err := row.Scan(&m.ID, &m.Name, &m.RouteOfAdmin, &m.DosageForm, &m.Composition, &m.MedicineList,
		&m.Group, &m.Remark, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ── Material ─────────────────────────────────────────────────────────────────

const equipmentColumns = `id, name, packaging, group_name, remark, consumable, perishable, created_at, updated_at`

// EquipmentRepo implementación de EquipmentRepository (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador.
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// Create persiste un material. Nombre duplicado → ErrDuplicate.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	query := `INSERT INTO equipments (` + equipmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Packaging, e.Group, e.Remark, e.Consumable, e.Perishable, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un material; nil si no existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.findOne(ctx, `SELECT `+equipmentColumns+` FROM equipments WHERE id = $1`, id)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *EquipmentRepo) GetByName(ctx context.Context, name string) (*entity.Equipment, error) {
	return r.findOne(ctx, `SELECT `+equipmentColumns+` FROM equipments WHERE lower(name) = lower($1)`, name)
}

func (r *EquipmentRepo) findOne(ctx context.Context, query string, arg any) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return e, nil
}

// Update actualiza un material.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	query := `
		UPDATE equipments SET name = $2, packaging = $3, group_name = $4, remark = $5,
			consumable = $6, perishable = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, e.ID, e.Name, e.Packaging, e.Group, e.Remark, e.Consumable, e.Perishable, e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// ListAll devuelve el catálogo completo de material.
func (r *EquipmentRepo) ListAll(ctx context.Context) ([]*entity.Equipment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+equipmentColumns+` FROM equipments ORDER BY group_name, name`)
	if err != nil {
		return nil, fmt.Errorf("list equipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina un material. Con unidades o filas que lo referencian → ErrConflict.
func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	return deleteCatalogEntry(ctx, r.q, "equipments", entity.BaseKindEquipment, id)
}

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Packaging, &e.Group, &e.Remark, &e.Consumable, &e.Perishable,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// deleteCatalogEntry borra una referencia si nada la usa. base_id no tiene FK
// (apunta a dos tablas), así que la comprobación se hace en la misma sentencia.
func deleteCatalogEntry(ctx context.Context, q Querier, table, baseKind, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1
		AND NOT EXISTS (SELECT 1 FROM items WHERE base_kind = $2 AND base_id = $1)
		AND NOT EXISTS (SELECT 1 FROM req_qtys WHERE base_kind = $2 AND base_id = $1)`, table)
	tag, err := q.Exec(ctx, query, id, baseKind)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if exists {
		return domain.ErrConflict
	}
	return nil
}
