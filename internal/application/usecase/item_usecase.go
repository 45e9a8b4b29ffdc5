package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	appinventory "github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// ItemRepositories puertos que necesita ItemUseCase.
type ItemRepositories struct {
	Items        repository.ItemRepository
	Transactions repository.QtyTransactionRepository
	Molecules    repository.MoleculeRepository
	Equipments   repository.EquipmentRepository
	Containers   repository.ContainerRepository
	Locations    repository.LocationRepository
}

// ItemUseCase casos de uso CRUD para unidades en stock.
// La cantidad no se edita aquí: se mueve con transacciones (RegisterTransactionUseCase).
type ItemUseCase struct {
	repos    ItemRepositories
	txRunner appinventory.TxRunner
	cache    CacheInvalidator
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repos ItemRepositories, txRunner appinventory.TxRunner, cache CacheInvalidator, log *logger.Logger) *ItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{repos: repos, txRunner: txRunner, cache: cache, log: log.Component("item")}
}

// Create da de alta una unidad. Si InitialQuantity viene informada se registra
// un recuento INVENTORY en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if !entity.ValidDomain(in.Domain) || !entity.AcceptsBaseKind(in.Domain, in.BaseKind) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity != nil && in.InitialQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	baseName, perishable, err := uc.reference(ctx, in.BaseKind, in.BaseID)
	if err != nil {
		return nil, err
	}
	if in.ExpDate != nil && !perishable {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkPlacement(ctx, in.Domain, in.ContainerID, in.LocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = baseName
	}
	item := &entity.Item{
		ID:            uuid.New().String(),
		Domain:        in.Domain,
		BaseKind:      in.BaseKind,
		BaseID:        in.BaseID,
		Name:          name,
		Packing:       in.Packing,
		ExpDate:       in.ExpDate,
		LocationID:    in.LocationID,
		ContainerID:   in.ContainerID,
		NcMolecule:    in.NcMolecule,
		NcComposition: in.NcComposition,
		NcPackaging:   in.NcPackaging,
		NcShape:       in.NcShape,
		Remark:        in.Remark,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var ledger []*entity.QtyTransaction
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.QtyTransactionRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if in.InitialQuantity == nil {
			return nil
		}
		t := &entity.QtyTransaction{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			Type:      entity.TxInventory,
			Value:     *in.InitialQuantity,
			Date:      now,
			CreatedBy: userID,
			Remark:    "alta",
			CreatedAt: now,
		}
		ledger = append(ledger, t)
		return txRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	uc.log.Info().Str("item_id", item.ID).Str("domain", item.Domain).Msg("unidad creada")
	return toItemResponse(item, ledger), nil
}

// GetByID obtiene una unidad con su cantidad actual; nil si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	txs, err := uc.repos.Transactions.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, txs), nil
}

// List lista las unidades de un dominio con su cantidad; containerID filtra por contenedor.
func (uc *ItemUseCase) List(ctx context.Context, domainName, containerID string) ([]dto.ItemResponse, error) {
	if !entity.ValidDomain(domainName) {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.repos.Items.ListByDomain(ctx, domainName)
	if err != nil {
		return nil, err
	}
	if containerID != "" {
		kept := items[:0]
		for _, it := range items {
			if it.ContainerID == containerID {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	byItem, err := uc.repos.Transactions.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it, byItem[it.ID]))
	}
	return out, nil
}

// Update actualiza los datos descriptivos de una unidad; nil si no existe.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			item.Name = name
		}
	}
	if in.Packing != nil {
		item.Packing = *in.Packing
	}
	switch {
	case in.ClearExpDate:
		item.ExpDate = nil
	case in.ExpDate != nil:
		_, perishable, err := uc.reference(ctx, item.BaseKind, item.BaseID)
		if err != nil {
			return nil, err
		}
		if !perishable {
			return nil, domain.ErrInvalidInput
		}
		item.ExpDate = in.ExpDate
	}
	containerID, locationID := item.ContainerID, item.LocationID
	if in.ContainerID != nil {
		containerID = *in.ContainerID
	}
	if in.LocationID != nil {
		locationID = *in.LocationID
	}
	if err := uc.checkPlacement(ctx, item.Domain, containerID, locationID); err != nil {
		return nil, err
	}
	item.ContainerID, item.LocationID = containerID, locationID
	if in.NcMolecule != nil {
		item.NcMolecule = *in.NcMolecule
	}
	if in.NcComposition != nil {
		item.NcComposition = *in.NcComposition
	}
	if in.NcPackaging != nil {
		item.NcPackaging = *in.NcPackaging
	}
	if in.NcShape != nil {
		item.NcShape = *in.NcShape
	}
	if in.Remark != nil {
		item.Remark = *in.Remark
	}
	item.UpdatedAt = time.Now()
	if err := uc.repos.Items.Update(ctx, item); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	txs, err := uc.repos.Transactions.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, txs), nil
}

// Delete elimina una unidad y su libro de movimientos.
// Para dar de baja stock caducado se usa PerishItem, que deja rastro.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repos.Items.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

// reference devuelve el nombre del elemento de referencia y si admite fecha de caducidad.
func (uc *ItemUseCase) reference(ctx context.Context, baseKind, baseID string) (string, bool, error) {
	switch baseKind {
	case entity.BaseKindMolecule:
		m, err := uc.repos.Molecules.GetByID(ctx, baseID)
		if err != nil {
			return "", false, err
		}
		if m == nil {
			return "", false, domain.ErrNotFound
		}
		return m.Name, true, nil
	case entity.BaseKindEquipment:
		e, err := uc.repos.Equipments.GetByID(ctx, baseID)
		if err != nil {
			return "", false, err
		}
		if e == nil {
			return "", false, domain.ErrNotFound
		}
		return e.Name, e.Perishable, nil
	}
	return "", false, domain.ErrInvalidInput
}

// checkPlacement valida contenedor y ubicación. Solo los dominios de botiquín y bolsa
// admiten contenedor, y debe ser de su mismo tipo.
func (uc *ItemUseCase) checkPlacement(ctx context.Context, domainName, containerID, locationID string) error {
	if containerID != "" {
		if !entity.IsContainerDomain(domainName) {
			return domain.ErrInvalidInput
		}
		c, err := uc.repos.Containers.GetByID(ctx, containerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Kind != domainName {
			return domain.ErrInvalidInput
		}
	}
	if locationID != "" {
		l, err := uc.repos.Locations.GetByID(ctx, locationID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toItemResponse(it *entity.Item, txs []*entity.QtyTransaction) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		Domain:        it.Domain,
		BaseKind:      it.BaseKind,
		BaseID:        it.BaseID,
		Name:          it.Name,
		Packing:       it.Packing,
		ExpDate:       it.ExpDate,
		LocationID:    it.LocationID,
		ContainerID:   it.ContainerID,
		NcMolecule:    it.NcMolecule,
		NcComposition: it.NcComposition,
		NcPackaging:   it.NcPackaging,
		NcShape:       it.NcShape,
		Nc:            it.HasNc(),
		Remark:        it.Remark,
		Quantity:      inventory.ReplayQuantity(txs).Value,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
