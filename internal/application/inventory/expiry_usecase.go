package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"golang.org/x/sync/errgroup"
)

// ExpiryUseCase lista las unidades con stock caducadas o próximas a caducar.
type ExpiryUseCase struct {
	repos       Repositories
	warningDays int
	now         func() time.Time
}

// NewExpiryUseCase construye el caso de uso.
func NewExpiryUseCase(repos Repositories, warningDays int) *ExpiryUseCase {
	return &ExpiryUseCase{repos: repos, warningDays: warningDays, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *ExpiryUseCase) WithClock(now func() time.Time) *ExpiryUseCase {
	uc.now = now
	return uc
}

// ExpiryQuery días de ventana (nil = ajuste del buque) o fecha límite explícita.
// Con Before se listan las unidades que caducan antes de esa fecha (excluida).
type ExpiryQuery struct {
	Days   *int
	Before *time.Time
}

// ListExpiring recorre todos los dominios y devuelve las unidades con cantidad > 0
// en EXPIRED o WARNING, ordenadas por fecha de caducidad.
func (uc *ExpiryUseCase) ListExpiring(ctx context.Context, q ExpiryQuery) ([]dto.ExpiringItemDTO, error) {
	if q.Days != nil && *q.Days < 0 {
		return nil, domain.ErrInvalidInput
	}
	today := uc.now()

	var (
		vessel *entity.Vessel
		locs   []*entity.Location
		items  []*entity.Item
	)
	perDomain := make([][]*entity.Item, len(entity.Domains))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vessel, err = uc.repos.Vessel.Get(gctx)
		return err
	})
	g.Go(func() (err error) {
		locs, err = uc.repos.Locations.ListAll(gctx)
		return err
	})
	for i, d := range entity.Domains {
		i, d := i, d
		g.Go(func() (err error) {
			perDomain[i], err = uc.repos.Items.ListByDomain(gctx, d)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, list := range perDomain {
		for _, it := range list {
			if it.ExpDate != nil {
				items = append(items, it)
			}
		}
	}
	if len(items) == 0 {
		return []dto.ExpiringItemDTO{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	txs, err := uc.repos.Transactions.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	warningDays := uc.warningDays
	if vessel != nil {
		warningDays = vessel.ExpiryWarningDays
	}
	if q.Days != nil {
		warningDays = *q.Days
	}
	paths := inventory.LocationPaths(locs)

	out := []dto.ExpiringItemDTO{}
	for _, it := range items {
		status := inventory.ClassifyExpiry(it.ExpDate, today, warningDays)
		if q.Before != nil {
			if !it.ExpDate.Before(*q.Before) {
				continue
			}
		} else if status != inventory.ExpiryExpired && status != inventory.ExpiryWarning {
			continue
		}
		qty := inventory.ReplayQuantity(txs[it.ID])
		if !qty.Value.IsPositive() {
			continue
		}
		out = append(out, dto.ExpiringItemDTO{
			ItemID:       it.ID,
			Domain:       it.Domain,
			BaseKind:     it.BaseKind,
			BaseID:       it.BaseID,
			Name:         it.Name,
			ExpDate:      *it.ExpDate,
			Quantity:     qty.Value,
			Expiry:       string(status),
			ContainerID:  it.ContainerID,
			LocationPath: paths[it.LocationID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ExpDate.Equal(out[j].ExpDate) {
			return out[i].ExpDate.Before(out[j].ExpDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
