package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var (
	_ repository.LocationRepository  = (*LocationRepo)(nil)
	_ repository.ContainerRepository = (*ContainerRepo)(nil)
	_ repository.VesselRepository    = (*VesselRepo)(nil)
)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, parent_id, is_rescue_bag, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, nullable(l.ParentID), l.IsRescueBag, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT id, name, parent_id, is_rescue_bag, created_at, updated_at FROM locations WHERE id = $1`
	l, err := scanLocation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// Update actualiza una ubicación.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `UPDATE locations SET name = $2, parent_id = $3, is_rescue_bag = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, nullable(l.ParentID), l.IsRescueBag, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// ListAll lista todas las ubicaciones (el árbol se resuelve en memoria).
func (r *LocationRepo) ListAll(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, parent_id, is_rescue_bag, created_at, updated_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	var parentID *string
	if err := row.Scan(&l.ID, &l.Name, &parentID, &l.IsRescueBag, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.ParentID = deref(parentID)
	return &l, nil
}

// ── Contenedores ─────────────────────────────────────────────────────────────

// ContainerRepo implementación de ContainerRepository sobre PostgreSQL.
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador.
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

// Create persiste un contenedor.
func (r *ContainerRepo) Create(ctx context.Context, c *entity.Container) error {
	query := `
		INSERT INTO containers (id, kind, name, location_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Kind, c.Name, nullable(c.LocationID), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert container: %w", err)
	}
	return nil
}

// GetByID obtiene un contenedor; nil si no existe.
func (r *ContainerRepo) GetByID(ctx context.Context, id string) (*entity.Container, error) {
	query := `SELECT id, kind, name, location_id, created_at, updated_at FROM containers WHERE id = $1`
	c, err := scanContainer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container: %w", err)
	}
	return c, nil
}

// Update actualiza nombre y ubicación.
func (r *ContainerRepo) Update(ctx context.Context, c *entity.Container) error {
	query := `UPDATE containers SET name = $2, location_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, nullable(c.LocationID), c.UpdatedAt); err != nil {
		return fmt.Errorf("update container: %w", err)
	}
	return nil
}

// ListByKind lista los contenedores de un tipo.
func (r *ContainerRepo) ListByKind(ctx context.Context, kind string) ([]*entity.Container, error) {
	query := `SELECT id, kind, name, location_id, created_at, updated_at FROM containers WHERE kind = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina un contenedor; sus unidades quedan sin contenedor.
func (r *ContainerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM containers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	return nil
}

func scanContainer(row pgx.Row) (*entity.Container, error) {
	var c entity.Container
	var locationID *string
	if err := row.Scan(&c.ID, &c.Kind, &c.Name, &locationID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.LocationID = deref(locationID)
	return &c, nil
}

// ── Buque ────────────────────────────────────────────────────────────────────

// VesselRepo guarda la única fila de ajustes del buque.
type VesselRepo struct {
	q Querier
}

// NewVesselRepository construye el adaptador.
func NewVesselRepository(q Querier) *VesselRepo {
	return &VesselRepo{q: q}
}

// Get devuelve los ajustes; nil si todavía no se guardaron.
func (r *VesselRepo) Get(ctx context.Context) (*entity.Vessel, error) {
	query := `SELECT name, imo, call_sign, flag, expiry_warning_days, updated_at FROM vessel WHERE id = 1`
	var v entity.Vessel
	err := r.q.QueryRow(ctx, query).Scan(&v.Name, &v.IMO, &v.CallSign, &v.Flag, &v.ExpiryWarningDays, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vessel: %w", err)
	}
	return &v, nil
}

// Save inserta o reemplaza los ajustes.
func (r *VesselRepo) Save(ctx context.Context, v *entity.Vessel) error {
	query := `
		INSERT INTO vessel (id, name, imo, call_sign, flag, expiry_warning_days, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, imo = EXCLUDED.imo, call_sign = EXCLUDED.call_sign,
			flag = EXCLUDED.flag, expiry_warning_days = EXCLUDED.expiry_warning_days, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, v.Name, v.IMO, v.CallSign, v.Flag, v.ExpiryWarningDays, v.UpdatedAt); err != nil {
		return fmt.Errorf("save vessel: %w", err)
	}
	return nil
}
