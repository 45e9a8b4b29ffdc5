package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// CatalogUseCase casos de uso CRUD para el catálogo de referencia (moléculas y material).
// El nombre es único dentro de cada catálogo, sin distinguir mayúsculas.
type CatalogUseCase struct {
	molecules  repository.MoleculeRepository
	equipments repository.EquipmentRepository
	cache      CacheInvalidator
	log        *logger.Logger
}

// NewCatalogUseCase construye el caso de uso. cache puede ser nil.
func NewCatalogUseCase(molecules repository.MoleculeRepository, equipments repository.EquipmentRepository, cache CacheInvalidator, log *logger.Logger) *CatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase{molecules: molecules, equipments: equipments, cache: cache, log: log.Component("catalog")}
}

// ── Moléculas ────────────────────────────────────────────────────────────────

// CreateMolecule crea una molécula. Devuelve ErrDuplicate si el nombre ya existe.
func (uc *CatalogUseCase) CreateMolecule(ctx context.Context, in dto.MoleculeRequest) (*dto.MoleculeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.molecules.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.Molecule{ID: uuid.New().String(), CreatedAt: now}
	applyMolecule(m, in, name, now)
	if err := uc.molecules.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMoleculeResponse(m), nil
}

// GetMolecule obtiene una molécula por ID.
func (uc *CatalogUseCase) GetMolecule(ctx context.Context, id string) (*dto.MoleculeResponse, error) {
	m, err := uc.molecules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMoleculeResponse(m), nil
}

// UpdateMolecule reemplaza los datos de una molécula; nil si no existe.
func (uc *CatalogUseCase) UpdateMolecule(ctx context.Context, id string, in dto.MoleculeRequest) (*dto.MoleculeResponse, error) {
	m, err := uc.molecules.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !strings.EqualFold(name, m.Name) {
		other, err := uc.molecules.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != m.ID {
			return nil, domain.ErrDuplicate
		}
	}
	applyMolecule(m, in, name, time.Now())
	if err := uc.molecules.Update(ctx, m); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return toMoleculeResponse(m), nil
}

// ListMolecules lista el catálogo ordenado por grupo y nombre.
func (uc *CatalogUseCase) ListMolecules(ctx context.Context) ([]dto.MoleculeResponse, error) {
	list, err := uc.molecules.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Group != list[j].Group {
			return list[i].Group < list[j].Group
		}
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	out := make([]dto.MoleculeResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMoleculeResponse(m))
	}
	return out, nil
}

// DeleteMolecule elimina una molécula. La BD rechaza el borrado si hay unidades que la referencian.
func (uc *CatalogUseCase) DeleteMolecule(ctx context.Context, id string) error {
	if err := uc.molecules.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

// ── Material ─────────────────────────────────────────────────────────────────

// CreateEquipment crea un material. Devuelve ErrDuplicate si el nombre ya existe.
func (uc *CatalogUseCase) CreateEquipment(ctx context.Context, in dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.equipments.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	e := &entity.Equipment{ID: uuid.New().String(), CreatedAt: now}
	applyEquipment(e, in, name, now)
	if err := uc.equipments.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEquipmentResponse(e), nil
}

// GetEquipment obtiene un material por ID.
func (uc *CatalogUseCase) GetEquipment(ctx context.Context, id string) (*dto.EquipmentResponse, error) {
	e, err := uc.equipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEquipmentResponse(e), nil
}

// UpdateEquipment reemplaza los datos de un material; nil si no existe.
func (uc *CatalogUseCase) UpdateEquipment(ctx context.Context, id string, in dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	e, err := uc.equipments.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !strings.EqualFold(name, e.Name) {
		other, err := uc.equipments.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != e.ID {
			return nil, domain.ErrDuplicate
		}
	}
	applyEquipment(e, in, name, time.Now())
	if err := uc.equipments.Update(ctx, e); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return toEquipmentResponse(e), nil
}

// ListEquipments lista el catálogo de material ordenado por grupo y nombre.
func (uc *CatalogUseCase) ListEquipments(ctx context.Context) ([]dto.EquipmentResponse, error) {
	list, err := uc.equipments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Group != list[j].Group {
			return list[i].Group < list[j].Group
		}
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	out := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEquipmentResponse(e))
	}
	return out, nil
}

// DeleteEquipment elimina un material.
func (uc *CatalogUseCase) DeleteEquipment(ctx context.Context, id string) error {
	if err := uc.equipments.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

func applyMolecule(m *entity.Molecule, in dto.MoleculeRequest, name string, now time.Time) {
	m.Name = name
	m.RouteOfAdmin = in.RouteOfAdmin
	m.DosageForm = in.DosageForm
	m.Composition = in.Composition
	m.MedicineList = in.MedicineList
	m.Group = in.Group
	m.Remark = in.Remark
	m.UpdatedAt = now
}

func applyEquipment(e *entity.Equipment, in dto.EquipmentRequest, name string, now time.Time) {
	e.Name = name
	e.Packaging = in.Packaging
	e.Group = in.Group
	e.Remark = in.Remark
	e.Consumable = in.Consumable
	e.Perishable = in.Perishable
	e.UpdatedAt = now
}

func toMoleculeResponse(m *entity.Molecule) *dto.MoleculeResponse {
	if m == nil {
		return nil
	}
	return &dto.MoleculeResponse{
		ID:           m.ID,
		Name:         m.Name,
		RouteOfAdmin: m.RouteOfAdmin,
		DosageForm:   m.DosageForm,
		Composition:  m.Composition,
		MedicineList: m.MedicineList,
		Group:        m.Group,
		Remark:       m.Remark,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:         e.ID,
		Name:       e.Name,
		Packaging:  e.Packaging,
		Group:      e.Group,
		Remark:     e.Remark,
		Consumable: e.Consumable,
		Perishable: e.Perishable,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
