package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// StatusReader fuente del estado completo (StatusUseCase).
type StatusReader interface {
	FullStatus(ctx context.Context, filter dto.StatusFilter) (*dto.FullStatusDTO, error)
}

// ShortageUseCase genera la lista de reposición: elementos con faltante en todos los dominios.
type ShortageUseCase struct {
	status StatusReader
}

// NewShortageUseCase construye el caso de uso de reposición.
func NewShortageUseCase(status StatusReader) *ShortageUseCase {
	return &ShortageUseCase{status: status}
}

// ListShortages devuelve los elementos con Missing > 0 ordenados por dominio, luego mayor
// faltante y luego nombre, con prioridad 1..n.
func (uc *ShortageUseCase) ListShortages(ctx context.Context, filter dto.StatusFilter) ([]dto.ShortageDTO, error) {
	full, err := uc.status.FullStatus(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := []dto.ShortageDTO{}
	add := func(domainName, containerID, containerName string, elements []dto.ElementStatusDTO) {
		for _, e := range elements {
			if !e.Shortage {
				continue
			}
			out = append(out, dto.ShortageDTO{
				Domain:        domainName,
				ContainerID:   containerID,
				ContainerName: containerName,
				BaseKind:      e.BaseKind,
				BaseID:        e.BaseID,
				Name:          e.Name,
				Group:         e.Group,
				Required:      e.Required,
				Current:       e.Current,
				Missing:       e.Missing,
			})
		}
	}
	for _, d := range full.Domains {
		add(d.Domain, "", "", d.Elements)
		for _, c := range d.Containers {
			add(d.Domain, c.ContainerID, c.Name, c.Elements)
		}
	}

	order := make(map[string]int, len(entity.Domains))
	for i, d := range entity.Domains {
		order[d] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order[a.Domain] != order[b.Domain] {
			return order[a.Domain] < order[b.Domain]
		}
		if !a.Missing.Equal(b.Missing) {
			return a.Missing.GreaterThan(b.Missing)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ContainerName < b.ContainerName
	})

	// Prioridad (1 = primero de la lista)
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
