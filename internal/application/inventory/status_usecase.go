package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusUseCase calcula el estado de la farmacia frente a las dotaciones.
type StatusUseCase struct {
	repos       Repositories
	cache       StatusCache
	log         *logger.Logger
	warningDays int
	lang        language.Tag
	now         func() time.Time
}

// NewStatusUseCase construye el caso de uso. cache puede ser nil (sin caché).
// warningDays se usa mientras el buque no tenga ajustes propios.
func NewStatusUseCase(repos Repositories, cache StatusCache, log *logger.Logger, warningDays int) *StatusUseCase {
	if cache == nil {
		cache = noCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StatusUseCase{
		repos:       repos,
		cache:       cache,
		log:         log.Component("inventory_status"),
		warningDays: warningDays,
		lang:        language.Spanish,
		now:         time.Now,
	}
}

// WithClock fija el reloj (tests y reportes a fecha).
func (uc *StatusUseCase) WithClock(now func() time.Time) *StatusUseCase {
	uc.now = now
	return uc
}

// WithLanguage fija el idioma de ordenación de nombres.
func (uc *StatusUseCase) WithLanguage(tag language.Tag) *StatusUseCase {
	uc.lang = tag
	return uc
}

// FullStatus calcula los seis dominios en paralelo.
func (uc *StatusUseCase) FullStatus(ctx context.Context, filter dto.StatusFilter) (*dto.FullStatusDTO, error) {
	out := make([]dto.DomainStatusDTO, len(entity.Domains))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range entity.Domains {
		i, d := i, d
		g.Go(func() error {
			st, err := uc.DomainStatus(gctx, d, filter)
			if err != nil {
				return err
			}
			out[i] = *st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total inventory.Summary
	for _, st := range out {
		total = total.Add(fromSummaryDTO(st.Summary))
	}
	return &dto.FullStatusDTO{Domains: out, Summary: toSummaryDTO(total)}, nil
}

// DomainStatus devuelve el estado de un dominio; primero consulta la caché.
func (uc *StatusUseCase) DomainStatus(ctx context.Context, domainName string, filter dto.StatusFilter) (*dto.DomainStatusDTO, error) {
	if !entity.ValidDomain(domainName) {
		return nil, domain.ErrInvalidInput
	}
	today := uc.now()

	key := ""
	if gen, err := uc.cache.Generation(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("caché no disponible, se calcula el estado")
	} else {
		key = statusKey(domainName, filter.AllowanceIDs, gen, today)
		var cached dto.DomainStatusDTO
		ok, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		} else if ok {
			return &cached, nil
		}
	}

	st, err := uc.compute(ctx, domainName, filter, today)
	if err != nil {
		return nil, err
	}
	if key != "" {
		if err := uc.cache.Set(ctx, key, st); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
		}
	}
	return st, nil
}

func statusKey(domainName string, allowanceIDs []string, gen int64, today time.Time) string {
	ids := append([]string(nil), allowanceIDs...)
	sort.Strings(ids)
	filter := "active"
	if len(ids) > 0 {
		filter = strings.Join(ids, ",")
	}
	return fmt.Sprintf("status:%d:%s:%s:%s", gen, today.Format("2006-01-02"), domainName, filter)
}

// domainData datos crudos de un dominio.
type domainData struct {
	allowances []*entity.Allowance
	rows       []*entity.ReqQty
	molecules  []*entity.Molecule
	equipments []*entity.Equipment
	items      []*entity.Item
	locations  []*entity.Location
	containers []*entity.Container
	vessel     *entity.Vessel
	txs        map[string][]*entity.QtyTransaction
}

func (uc *StatusUseCase) load(ctx context.Context, domainName string) (*domainData, error) {
	var data domainData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.allowances, err = uc.repos.Allowances.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.rows, err = uc.repos.ReqQtys.ListByDomain(gctx, domainName)
		return err
	})
	g.Go(func() (err error) {
		data.molecules, err = uc.repos.Molecules.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.equipments, err = uc.repos.Equipments.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.locations, err = uc.repos.Locations.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.vessel, err = uc.repos.Vessel.Get(gctx)
		return err
	})
	if entity.IsContainerDomain(domainName) {
		g.Go(func() (err error) {
			data.containers, err = uc.repos.Containers.ListByKind(gctx, domainName)
			return err
		})
	}
	g.Go(func() error {
		items, err := uc.repos.Items.ListByDomain(gctx, domainName)
		if err != nil {
			return err
		}
		data.items = items
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		data.txs, err = uc.repos.Transactions.ListByItems(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cargar dominio %s: %w", domainName, err)
	}
	return &data, nil
}

func (uc *StatusUseCase) compute(ctx context.Context, domainName string, filter dto.StatusFilter, today time.Time) (*dto.DomainStatusDTO, error) {
	data, err := uc.load(ctx, domainName)
	if err != nil {
		return nil, err
	}

	selected := inventory.SelectAllowances(data.allowances, filter.AllowanceIDs)
	reqs := inventory.AggregateRequirements(domainName, data.rows, selected)
	catalog := buildCatalog(data.molecules, data.equipments)
	paths := inventory.LocationPaths(data.locations)
	warningDays := uc.warningDays
	if data.vessel != nil {
		warningDays = data.vessel.ExpiryWarningDays
	}

	base := inventory.BuildInput{
		Catalog:       catalog,
		Requirements:  reqs,
		LocationPaths: paths,
		Today:         today,
		WarningDays:   warningDays,
		Language:      uc.lang,
		OnClamped: func(item *entity.Item, q inventory.Quantity) {
			uc.log.Warn().
				Str("item_id", item.ID).
				Str("domain", domainName).
				Str("raw_quantity", q.Raw.String()).
				Msg("cantidad negativa en el libro, se toma 0")
		},
	}

	out := &dto.DomainStatusDTO{
		Domain:       domainName,
		AllowanceIDs: sortedIDs(selected),
		WarningDays:  warningDays,
		GeneratedAt:  today,
	}

	if !entity.IsContainerDomain(domainName) {
		in := base
		in.Stock = stockFor(data.items, data.txs, func(*entity.Item) bool { return true })
		statuses := inventory.BuildElementStatuses(in)
		out.Elements = toElementDTOs(statuses)
		out.Summary = toSummaryDTO(inventory.Summarize(statuses))
		return out, nil
	}

	// Los requerimientos del dominio aplican a cada contenedor.
	known := make(map[string]bool, len(data.containers))
	var total inventory.Summary
	col := collate.New(uc.lang, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(data.containers, func(i, j int) bool {
		if c := col.CompareString(data.containers[i].Name, data.containers[j].Name); c != 0 {
			return c < 0
		}
		return data.containers[i].ID < data.containers[j].ID
	})
	for _, c := range data.containers {
		known[c.ID] = true
		in := base
		id := c.ID
		in.Stock = stockFor(data.items, data.txs, func(it *entity.Item) bool { return it.ContainerID == id })
		statuses := inventory.BuildElementStatuses(in)
		sum := inventory.Summarize(statuses)
		total = total.Add(sum)
		out.Containers = append(out.Containers, dto.ContainerStatusDTO{
			ContainerID:  c.ID,
			Name:         c.Name,
			LocationPath: paths[c.LocationID],
			Elements:     toElementDTOs(statuses),
			Summary:      toSummaryDTO(sum),
		})
	}

	// Elementos sin contenedor: se listan sin requerimientos.
	orphans := stockFor(data.items, data.txs, func(it *entity.Item) bool { return !known[it.ContainerID] })
	if len(orphans) > 0 {
		in := base
		in.Requirements = nil
		in.Stock = orphans
		statuses := inventory.BuildElementStatuses(in)
		if len(statuses) > 0 {
			sum := inventory.Summarize(statuses)
			total = total.Add(sum)
			out.Containers = append(out.Containers, dto.ContainerStatusDTO{
				Name:     "Sin contenedor",
				Elements: toElementDTOs(statuses),
				Summary:  toSummaryDTO(sum),
			})
		}
	}
	out.Summary = toSummaryDTO(total)
	return out, nil
}

func buildCatalog(mols []*entity.Molecule, eqs []*entity.Equipment) map[inventory.ElementKey]inventory.Element {
	out := make(map[inventory.ElementKey]inventory.Element, len(mols)+len(eqs))
	for _, m := range mols {
		k := inventory.ElementKey{BaseKind: entity.BaseKindMolecule, BaseID: m.ID}
		out[k] = inventory.Element{Key: k, Name: m.Name, Group: m.Group}
	}
	for _, e := range eqs {
		k := inventory.ElementKey{BaseKind: entity.BaseKindEquipment, BaseID: e.ID}
		out[k] = inventory.Element{Key: k, Name: e.Name, Group: e.Group}
	}
	return out
}

func stockFor(items []*entity.Item, txs map[string][]*entity.QtyTransaction, keep func(*entity.Item) bool) []inventory.StockInput {
	var out []inventory.StockInput
	for _, it := range items {
		if keep(it) {
			out = append(out, inventory.StockInput{Item: it, Transactions: txs[it.ID]})
		}
	}
	return out
}

func sortedIDs(m map[string]*entity.Allowance) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func toElementDTOs(statuses []inventory.ElementStatus) []dto.ElementStatusDTO {
	out := make([]dto.ElementStatusDTO, 0, len(statuses))
	for _, st := range statuses {
		e := dto.ElementStatusDTO{
			BaseKind:        st.Key.BaseKind,
			BaseID:          st.Key.BaseID,
			Name:            st.Name,
			Group:           st.Group,
			Required:        st.Required,
			Current:         st.Current,
			ExpiredQuantity: st.ExpiredQuantity,
			Missing:         st.Missing,
			HasDateExpired:  st.HasDateExpired,
			HasDateWarning:  st.HasDateWarning,
			HasNc:           st.HasNc,
			Shortage:        st.Shortage,
			Contributions:   make([]dto.ContributionDTO, 0, len(st.Contributions)),
			Lines:           make([]dto.StockLineDTO, 0, len(st.Lines)),
		}
		for _, c := range st.Contributions {
			e.Contributions = append(e.Contributions, dto.ContributionDTO{
				AllowanceID:   c.AllowanceID,
				AllowanceName: c.AllowanceName,
				Additional:    c.Additional,
				Quantity:      c.Quantity,
			})
		}
		for _, l := range st.Lines {
			e.Lines = append(e.Lines, dto.StockLineDTO{
				ItemID:       l.ItemID,
				Name:         l.Name,
				Packing:      l.Packing,
				ExpDate:      l.ExpDate,
				Quantity:     l.Quantity,
				Expiry:       string(l.Expiry),
				Nc:           l.Nc,
				LocationID:   l.LocationID,
				LocationPath: l.LocationPath,
			})
		}
		out = append(out, e)
	}
	return out
}

func toSummaryDTO(s inventory.Summary) dto.SummaryDTO {
	return dto.SummaryDTO{
		Elements:   s.Elements,
		Shortages:  s.Shortages,
		Expired:    s.Expired,
		Warnings:   s.Warnings,
		NonConform: s.NonConform,
	}
}

func fromSummaryDTO(s dto.SummaryDTO) inventory.Summary {
	return inventory.Summary{
		Elements:   s.Elements,
		Shortages:  s.Shortages,
		Expired:    s.Expired,
		Warnings:   s.Warnings,
		NonConform: s.NonConform,
	}
}
