package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// maxClockSkew margen para fechas enviadas por clientes con el reloj adelantado.
const maxClockSkew = 5 * time.Minute

// RegisterTransactionUseCase registra movimientos de cantidad de forma transaccional
// con bloqueo de fila del Item (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterTransactionUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	txRepo   repository.QtyTransactionRepository
	cache    StatusCache
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterTransactionUseCase construye el caso de uso. cache puede ser nil.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	txRepo repository.QtyTransactionRepository,
	cache StatusCache,
	log *logger.Logger,
) *RegisterTransactionUseCase {
	if cache == nil {
		cache = noCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterTransactionUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		txRepo:   txRepo,
		cache:    cache,
		log:      log.Component("inventory_tx"),
		now:      time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *RegisterTransactionUseCase) WithClock(now func() time.Time) *RegisterTransactionUseCase {
	uc.now = now
	return uc
}

// TransactionInputDTO entrada para registrar un movimiento.
// Los recuentos (INVENTORY, PHYSICAL_COUNT) admiten Value = 0; el resto exige Value > 0.
type TransactionInputDTO struct {
	UserID string
	ItemID string
	Type   int
	Value  decimal.Decimal
	Date   *time.Time
	Remark string
}

// RegisterFromRequest adapta el request HTTP al caso de uso Register.
func (uc *RegisterTransactionUseCase) RegisterFromRequest(ctx context.Context, userID string, in dto.RegisterTransactionRequest) (*dto.TransactionResponse, error) {
	t, err := uc.Register(ctx, TransactionInputDTO{
		UserID: userID,
		ItemID: in.ItemID,
		Type:   in.Type,
		Value:  in.Value,
		Date:   in.Date,
		Remark: in.Remark,
	})
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(t)
	return &resp, nil
}

// Register inicia una transacción, bloquea el Item, comprueba que una salida no supere
// la cantidad reproducida y agrega la entrada al libro.
func (uc *RegisterTransactionUseCase) Register(ctx context.Context, input TransactionInputDTO) (*entity.QtyTransaction, error) {
	if input.ItemID == "" || !entity.ValidTxType(input.Type) || input.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.QtyTransaction{
		ID:        uuid.New().String(),
		ItemID:    input.ItemID,
		Type:      input.Type,
		Value:     input.Value,
		CreatedBy: input.UserID,
		Remark:    input.Remark,
	}
	if !t.IsStockCount() && !input.Value.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	t.CreatedAt = now
	t.Date = now
	if input.Date != nil {
		// Un recuento con fecha futura taparía todo lo registrado hasta entonces.
		if input.Date.After(now.Add(maxClockSkew)) {
			return nil, domain.ErrInvalidInput
		}
		t.Date = *input.Date
	}

	var anchoredAt time.Time
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.QtyTransactionRepository) error {
		if _, err := lockItem(ctx, itemRepo, input.ItemID); err != nil {
			return err
		}
		q, err := replay(ctx, txRepo, input.ItemID)
		if err != nil {
			return err
		}
		anchoredAt = q.AnchoredAt
		if t.IsOutgoing() && t.Value.GreaterThan(q.Value) {
			return domain.ErrInsufficientStock
		}
		return txRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	if !anchoredAt.IsZero() && t.Date.Before(anchoredAt) {
		uc.log.Warn().
			Str("item_id", t.ItemID).
			Time("date", t.Date).
			Time("anchored_at", anchoredAt).
			Msg("movimiento anterior al último recuento, no cambia la cantidad")
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("item_id", t.ItemID).Int("type", t.Type).Str("value", t.Value.String()).Msg("movimiento registrado")
	return t, nil
}

// PerishItem da de baja como PERISHED toda la cantidad actual del Item.
func (uc *RegisterTransactionUseCase) PerishItem(ctx context.Context, itemID, userID, remark string) (*entity.QtyTransaction, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var t *entity.QtyTransaction
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.QtyTransactionRepository) error {
		if _, err := lockItem(ctx, itemRepo, itemID); err != nil {
			return err
		}
		q, err := replay(ctx, txRepo, itemID)
		if err != nil {
			return err
		}
		if !q.Value.IsPositive() {
			return domain.ErrInsufficientStock
		}
		t = &entity.QtyTransaction{
			ID:        uuid.New().String(),
			ItemID:    itemID,
			Type:      entity.TxPerished,
			Value:     q.Value,
			Date:      now,
			CreatedBy: userID,
			Remark:    remark,
			CreatedAt: now,
		}
		return txRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("item_id", itemID).Str("value", t.Value.String()).Msg("item dado de baja")
	return t, nil
}

// History devuelve el libro del Item en orden de reproducción y la cantidad resultante.
func (uc *RegisterTransactionUseCase) History(ctx context.Context, itemID string) (*dto.ItemHistoryResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.txRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	q := inventory.ReplayQuantity(txs)
	resp := &dto.ItemHistoryResponse{
		ItemID:       itemID,
		Quantity:     q.Value,
		Clamped:      q.Clamped,
		Transactions: make([]dto.TransactionResponse, 0, len(txs)),
	}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(t))
	}
	return resp, nil
}

func (uc *RegisterTransactionUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de estado")
	}
}

func lockItem(ctx context.Context, itemRepo repository.ItemRepository, id string) (*entity.Item, error) {
	item, err := itemRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func replay(ctx context.Context, txRepo repository.QtyTransactionRepository, itemID string) (inventory.Quantity, error) {
	txs, err := txRepo.ListByItem(ctx, itemID)
	if err != nil {
		return inventory.Quantity{}, err
	}
	return inventory.ReplayQuantity(txs), nil
}

// TxTypeName nombre legible del tipo de movimiento.
func TxTypeName(t int) string {
	switch t {
	case entity.TxInventory:
		return "INVENTORY"
	case entity.TxIn:
		return "IN"
	case entity.TxUsed:
		return "USED"
	case entity.TxPerished:
		return "PERISHED"
	case entity.TxPhysicalCount:
		return "PHYSICAL_COUNT"
	case entity.TxOther:
		return "OTHER"
	}
	return "UNKNOWN"
}

// ToTransactionResponse mapea una entrada del libro a su DTO.
func ToTransactionResponse(t *entity.QtyTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		ItemID:    t.ItemID,
		Type:      t.Type,
		TypeName:  TxTypeName(t.Type),
		Value:     t.Value,
		Date:      t.Date,
		CreatedBy: t.CreatedBy,
		Remark:    t.Remark,
		CreatedAt: t.CreatedAt,
	}
}
