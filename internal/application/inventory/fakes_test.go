package inventory_test

import (
	"context"
	"encoding/json"
	"sync"

	appinv "github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// store repositorios en memoria compartidos por los tests del paquete.
type store struct {
	mu         sync.Mutex
	allowances []*entity.Allowance
	rows       []*entity.ReqQty
	molecules  []*entity.Molecule
	equipments []*entity.Equipment
	items      []*entity.Item
	txs        []*entity.QtyTransaction
	locations  []*entity.Location
	containers []*entity.Container
	vessel     *entity.Vessel
}

func (s *store) repos() appinv.Repositories {
	return appinv.Repositories{
		Allowances:   allowanceRepo{s},
		ReqQtys:      reqQtyRepo{s},
		Molecules:    moleculeRepo{s},
		Equipments:   equipmentRepo{s},
		Items:        itemRepo{s},
		Transactions: txRepo{s},
		Locations:    locationRepo{s},
		Containers:   containerRepo{s},
		Vessel:       vesselRepo{s},
	}
}

// ─── Allowances / ReqQty ────────────────────────────────────────────────────

type allowanceRepo struct{ s *store }

func (r allowanceRepo) Create(_ context.Context, a *entity.Allowance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.allowances = append(r.s.allowances, a)
	return nil
}
func (r allowanceRepo) GetByID(_ context.Context, id string) (*entity.Allowance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.allowances {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}
func (r allowanceRepo) GetByNameAndAuthor(_ context.Context, name, author string) (*entity.Allowance, error) {
	return nil, nil
}
func (r allowanceRepo) Update(context.Context, *entity.Allowance) error { return nil }
func (r allowanceRepo) List(context.Context) ([]*entity.Allowance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Allowance(nil), r.s.allowances...), nil
}
func (r allowanceRepo) Delete(context.Context, string) error { return nil }

type reqQtyRepo struct{ s *store }

func (r reqQtyRepo) ListByDomain(_ context.Context, domain string) ([]*entity.ReqQty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ReqQty
	for _, row := range r.s.rows {
		if row.Domain == domain {
			out = append(out, row)
		}
	}
	return out, nil
}
func (r reqQtyRepo) ListByAllowance(context.Context, string) ([]*entity.ReqQty, error) {
	return nil, nil
}
func (r reqQtyRepo) Upsert(context.Context, *entity.ReqQty) error { return nil }
func (r reqQtyRepo) ReplaceForAllowance(context.Context, string, []*entity.ReqQty) error {
	return nil
}
func (r reqQtyRepo) Delete(context.Context, string) error { return nil }

// ─── Catálogo ───────────────────────────────────────────────────────────────

type moleculeRepo struct{ s *store }

func (r moleculeRepo) Create(context.Context, *entity.Molecule) error { return nil }
func (r moleculeRepo) GetByID(context.Context, string) (*entity.Molecule, error) {
	return nil, nil
}
func (r moleculeRepo) GetByName(context.Context, string) (*entity.Molecule, error) {
	return nil, nil
}
func (r moleculeRepo) Update(context.Context, *entity.Molecule) error { return nil }
func (r moleculeRepo) ListAll(context.Context) ([]*entity.Molecule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Molecule(nil), r.s.molecules...), nil
}
func (r moleculeRepo) Delete(context.Context, string) error { return nil }

type equipmentRepo struct{ s *store }

func (r equipmentRepo) Create(context.Context, *entity.Equipment) error { return nil }
func (r equipmentRepo) GetByID(context.Context, string) (*entity.Equipment, error) {
	return nil, nil
}
func (r equipmentRepo) GetByName(context.Context, string) (*entity.Equipment, error) {
	return nil, nil
}
func (r equipmentRepo) Update(context.Context, *entity.Equipment) error { return nil }
func (r equipmentRepo) ListAll(context.Context) ([]*entity.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Equipment(nil), r.s.equipments...), nil
}
func (r equipmentRepo) Delete(context.Context, string) error { return nil }

// ─── Items / libro ──────────────────────────────────────────────────────────

type itemRepo struct{ s *store }

func (r itemRepo) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items = append(r.s.items, it)
	return nil
}
func (r itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}
func (r itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}
func (r itemRepo) Update(context.Context, *entity.Item) error { return nil }
func (r itemRepo) ListByDomain(_ context.Context, domain string) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.Domain == domain {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r itemRepo) Delete(context.Context, string) error { return nil }

type txRepo struct{ s *store }

func (r txRepo) Create(_ context.Context, t *entity.QtyTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.txs = append(r.s.txs, t)
	return nil
}
func (r txRepo) ListByItem(_ context.Context, itemID string) ([]*entity.QtyTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.QtyTransaction
	for _, t := range r.s.txs {
		if t.ItemID == itemID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r txRepo) ListByItems(_ context.Context, ids []string) (map[string][]*entity.QtyTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[string][]*entity.QtyTransaction)
	for _, t := range r.s.txs {
		if want[t.ItemID] {
			out[t.ItemID] = append(out[t.ItemID], t)
		}
	}
	return out, nil
}

// ─── Ubicaciones / contenedores / buque ─────────────────────────────────────

type locationRepo struct{ s *store }

func (r locationRepo) Create(context.Context, *entity.Location) error { return nil }
func (r locationRepo) GetByID(context.Context, string) (*entity.Location, error) {
	return nil, nil
}
func (r locationRepo) Update(context.Context, *entity.Location) error { return nil }
func (r locationRepo) ListAll(context.Context) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Location(nil), r.s.locations...), nil
}
func (r locationRepo) Delete(context.Context, string) error { return nil }

type containerRepo struct{ s *store }

func (r containerRepo) Create(context.Context, *entity.Container) error { return nil }
func (r containerRepo) GetByID(context.Context, string) (*entity.Container, error) {
	return nil, nil
}
func (r containerRepo) Update(context.Context, *entity.Container) error { return nil }
func (r containerRepo) ListByKind(_ context.Context, kind string) ([]*entity.Container, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Container
	for _, c := range r.s.containers {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r containerRepo) Delete(context.Context, string) error { return nil }

type vesselRepo struct{ s *store }

func (r vesselRepo) Get(context.Context) (*entity.Vessel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.vessel, nil
}
func (r vesselRepo) Save(_ context.Context, v *entity.Vessel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.vessel = v
	return nil
}

var (
	_ repository.AllowanceRepository      = allowanceRepo{}
	_ repository.ReqQtyRepository         = reqQtyRepo{}
	_ repository.MoleculeRepository       = moleculeRepo{}
	_ repository.EquipmentRepository      = equipmentRepo{}
	_ repository.ItemRepository           = itemRepo{}
	_ repository.QtyTransactionRepository = txRepo{}
	_ repository.LocationRepository       = locationRepo{}
	_ repository.ContainerRepository      = containerRepo{}
	_ repository.VesselRepository         = vesselRepo{}
)

// ─── TxRunner / caché ───────────────────────────────────────────────────────

type fakeTxRunner struct {
	s    *store
	runs int
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.QtyTransactionRepository) error) error {
	f.runs++
	// Rollback simple: se descartan las transacciones agregadas si fn falla.
	f.s.mu.Lock()
	before := len(f.s.txs)
	f.s.mu.Unlock()
	if err := fn(itemRepo{f.s}, txRepo{f.s}); err != nil {
		f.s.mu.Lock()
		f.s.txs = f.s.txs[:before]
		f.s.mu.Unlock()
		return err
	}
	return nil
}

type memCache struct {
	mu    sync.Mutex
	gen   int64
	data  map[string][]byte
	gets  int
	hits  int
	bumps int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}
func (c *memCache) Bump(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.bumps++
	return nil
}
func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}
func (c *memCache) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

var _ appinv.StatusCache = (*memCache)(nil)
var _ appinv.TxRunner = (*fakeTxRunner)(nil)
