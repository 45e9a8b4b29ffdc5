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

// ContainerUseCase casos de uso CRUD para botiquines y bolsas de rescate.
type ContainerUseCase struct {
	repo      repository.ContainerRepository
	locations repository.LocationRepository
	cache     CacheInvalidator
	log       *logger.Logger
}

// NewContainerUseCase construye el caso de uso.
func NewContainerUseCase(repo repository.ContainerRepository, locations repository.LocationRepository, cache CacheInvalidator, log *logger.Logger) *ContainerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ContainerUseCase{repo: repo, locations: locations, cache: cache, log: log.Component("container")}
}

// Create crea un contenedor.
func (uc *ContainerUseCase) Create(ctx context.Context, in dto.CreateContainerRequest) (*dto.ContainerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.IsContainerDomain(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	paths, err := uc.paths(ctx)
	if err != nil {
		return nil, err
	}
	if in.LocationID != "" {
		if _, ok := paths[in.LocationID]; !ok {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	c := &entity.Container{
		ID:         uuid.New().String(),
		Kind:       in.Kind,
		Name:       name,
		LocationID: in.LocationID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return toContainerResponse(c, paths), nil
}

// GetByID obtiene un contenedor; nil si no existe.
func (uc *ContainerUseCase) GetByID(ctx context.Context, id string) (*dto.ContainerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	paths, err := uc.paths(ctx)
	if err != nil {
		return nil, err
	}
	return toContainerResponse(c, paths), nil
}

// Update actualiza nombre o ubicación; nil si no existe.
func (uc *ContainerUseCase) Update(ctx context.Context, id string, in dto.UpdateContainerRequest) (*dto.ContainerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	paths, err := uc.paths(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = name
	}
	if in.LocationID != nil {
		if *in.LocationID != "" {
			if _, ok := paths[*in.LocationID]; !ok {
				return nil, domain.ErrNotFound
			}
		}
		c.LocationID = *in.LocationID
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return toContainerResponse(c, paths), nil
}

// List lista los contenedores de un tipo, o de ambos si kind es vacío.
func (uc *ContainerUseCase) List(ctx context.Context, kind string) ([]dto.ContainerResponse, error) {
	kinds := []string{entity.ContainerFirstAidKit, entity.ContainerRescueBag}
	if kind != "" {
		if !entity.IsContainerDomain(kind) {
			return nil, domain.ErrInvalidInput
		}
		kinds = []string{kind}
	}
	paths, err := uc.paths(ctx)
	if err != nil {
		return nil, err
	}
	var out []dto.ContainerResponse
	for _, k := range kinds {
		list, err := uc.repo.ListByKind(ctx, k)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		for _, c := range list {
			out = append(out, *toContainerResponse(c, paths))
		}
	}
	return out, nil
}

// Delete elimina un contenedor. Sus unidades pasan al grupo "Sin contenedor".
func (uc *ContainerUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

func (uc *ContainerUseCase) paths(ctx context.Context) (map[string]string, error) {
	locs, err := uc.locations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.LocationPaths(locs), nil
}

func toContainerResponse(c *entity.Container, paths map[string]string) *dto.ContainerResponse {
	if c == nil {
		return nil
	}
	return &dto.ContainerResponse{
		ID:           c.ID,
		Kind:         c.Kind,
		Name:         c.Name,
		LocationID:   c.LocationID,
		LocationPath: paths[c.LocationID],
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
