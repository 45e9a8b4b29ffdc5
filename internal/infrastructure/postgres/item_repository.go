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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, domain, base_kind, base_id, name, packing, exp_date, location_id, container_id,
	nc_molecule, nc_composition, nc_packaging, nc_shape, remark, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste una unidad.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Domain, it.BaseKind, it.BaseID, it.Name, it.Packing, it.ExpDate,
		nullable(it.LocationID), nullable(it.ContainerID),
		it.NcMolecule, it.NcComposition, it.NcPackaging, it.NcShape, it.Remark,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.findOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene la unidad y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.findOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) findOne(ctx context.Context, query, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update actualiza los datos descriptivos de la unidad.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, packing = $3, exp_date = $4, location_id = $5, container_id = $6,
			nc_molecule = $7, nc_composition = $8, nc_packaging = $9, nc_shape = $10, remark = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Packing, it.ExpDate, nullable(it.LocationID), nullable(it.ContainerID),
		it.NcMolecule, it.NcComposition, it.NcPackaging, it.NcShape, it.Remark, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByDomain lista las unidades de un dominio.
func (r *ItemRepo) ListByDomain(ctx context.Context, domainName string) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE domain = $1 ORDER BY name, id`, domainName)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Delete elimina la unidad; su libro se borra en cascada.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var locationID, containerID *string
	err := row.Scan(
		&it.ID, &it.Domain, &it.BaseKind, &it.BaseID, &it.Name, &it.Packing, &it.ExpDate,
		&locationID, &containerID,
		&it.NcMolecule, &it.NcComposition, &it.NcPackaging, &it.NcShape, &it.Remark,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.LocationID = deref(locationID)
	it.ContainerID = deref(containerID)
	return &it, nil
}
