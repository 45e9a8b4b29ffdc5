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
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// LocationUseCase casos de uso CRUD para ubicaciones (árbol vía ParentID).
type LocationUseCase struct {
	repo  repository.LocationRepository
	cache CacheInvalidator
	log   *logger.Logger
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, cache CacheInvalidator, log *logger.Logger) *LocationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LocationUseCase{repo: repo, cache: cache, log: log.Component("location")}
}

// Create crea una ubicación. El padre, si se indica, debe existir.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	loc := &entity.Location{
		ID:          uuid.New().String(),
		Name:        name,
		ParentID:    in.ParentID,
		IsRescueBag: in.IsRescueBag,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc, inventory.LocationPaths(all)), nil
}

// GetByID obtiene una ubicación con su ruta completa; nil si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range all {
		if l.ID == id {
			return toLocationResponse(l, inventory.LocationPaths(all)), nil
		}
	}
	return nil, nil
}

// Update actualiza una ubicación; nil si no existe.
// Mover una ubicación bajo sí misma o bajo un descendiente devuelve ErrCycle.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var loc *entity.Location
	byID := make(map[string]*entity.Location, len(all))
	for _, l := range all {
		byID[l.ID] = l
		if l.ID == id {
			loc = l
		}
	}
	if loc == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		loc.Name = name
	}
	if in.ParentID != nil {
		parentID := strings.TrimSpace(*in.ParentID)
		if parentID != "" && byID[parentID] == nil {
			return nil, domain.ErrNotFound
		}
		if inventory.CreatesCycle(all, id, parentID) {
			return nil, domain.ErrCycle
		}
		loc.ParentID = parentID
	}
	if in.IsRescueBag != nil {
		loc.IsRescueBag = *in.IsRescueBag
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return toLocationResponse(loc, inventory.LocationPaths(all)), nil
}

// List lista todas las ubicaciones ordenadas por ruta.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	paths := inventory.LocationPaths(all)
	out := make([]dto.LocationResponse, 0, len(all))
	for _, l := range all {
		out = append(out, *toLocationResponse(l, paths))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Delete elimina una ubicación. Las hijas quedan en la raíz (ON DELETE SET NULL).
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

func toLocationResponse(l *entity.Location, paths map[string]string) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		ParentID:    l.ParentID,
		Path:        paths[l.ID],
		IsRescueBag: l.IsRescueBag,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
