package allowance

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

// UseCase gestiona dotaciones, sus filas de requerimiento y los paquetes de intercambio.
type UseCase struct {
	allowances repository.AllowanceRepository
	reqQtys    repository.ReqQtyRepository
	molecules  repository.MoleculeRepository
	equipments repository.EquipmentRepository
	txRunner   AllowanceTxRunner
	codec      PackageCodec
	cache      CacheInvalidator
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(
	allowances repository.AllowanceRepository,
	reqQtys repository.ReqQtyRepository,
	molecules repository.MoleculeRepository,
	equipments repository.EquipmentRepository,
	txRunner AllowanceTxRunner,
	codec PackageCodec,
	cache CacheInvalidator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		allowances: allowances,
		reqQtys:    reqQtys,
		molecules:  molecules,
		equipments: equipments,
		txRunner:   txRunner,
		codec:      codec,
		cache:      cache,
		log:        log.Component("allowance"),
		now:        time.Now,
	}
}

// Create crea una dotación. (Name, Author) es único.
func (uc *UseCase) Create(ctx context.Context, in dto.AllowanceRequest) (*dto.AllowanceResponse, error) {
	name, author := strings.TrimSpace(in.Name), strings.TrimSpace(in.Author)
	if name == "" || author == "" || in.Version < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.allowances.GetByNameAndAuthor(ctx, name, author)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	a := &entity.Allowance{
		ID:         uuid.New().String(),
		Name:       name,
		Author:     author,
		Version:    in.Version,
		Date:       now,
		Additional: in.Additional,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Date != nil {
		a.Date = *in.Date
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	if err := uc.allowances.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toAllowanceResponse(a), nil
}

// GetByID obtiene una dotación; nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.AllowanceResponse, error) {
	a, err := uc.allowances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAllowanceResponse(a), nil
}

// List lista todas las dotaciones instaladas.
func (uc *UseCase) List(ctx context.Context) ([]dto.AllowanceResponse, error) {
	list, err := uc.allowances.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AllowanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAllowanceResponse(a))
	}
	return out, nil
}

// Update actualiza los datos de una dotación; nil si no existe.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.AllowanceRequest) (*dto.AllowanceResponse, error) {
	a, err := uc.allowances.GetByID(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	name, author := strings.TrimSpace(in.Name), strings.TrimSpace(in.Author)
	if name == "" || author == "" || in.Version < 0 {
		return nil, domain.ErrInvalidInput
	}
	if name != a.Name || author != a.Author {
		other, err := uc.allowances.GetByNameAndAuthor(ctx, name, author)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != a.ID {
			return nil, domain.ErrDuplicate
		}
	}
	a.Name = name
	a.Author = author
	a.Version = in.Version
	a.Additional = in.Additional
	if in.Date != nil {
		a.Date = *in.Date
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	a.UpdatedAt = uc.now()
	if err := uc.allowances.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toAllowanceResponse(a), nil
}

// SetActive incluye o excluye la dotación de los requerimientos del buque.
func (uc *UseCase) SetActive(ctx context.Context, id string, active bool) (*dto.AllowanceResponse, error) {
	a, err := uc.allowances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.Active == active {
		return toAllowanceResponse(a), nil
	}
	a.Active = active
	a.UpdatedAt = uc.now()
	if err := uc.allowances.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("allowance_id", id).Bool("active", active).Msg("dotación actualizada")
	return toAllowanceResponse(a), nil
}

// Delete elimina la dotación (sus filas se borran en cascada).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.allowances.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Requirements lista las filas de la dotación ordenadas por dominio y elemento.
func (uc *UseCase) Requirements(ctx context.Context, id string) ([]dto.RequirementRowDTO, error) {
	a, err := uc.allowances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.reqQtys.ListByAllowance(ctx, id)
	if err != nil {
		return nil, err
	}
	sortRows(rows)
	out := make([]dto.RequirementRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RequirementRowDTO{
			Domain:           r.Domain,
			BaseKind:         r.BaseKind,
			BaseID:           r.BaseID,
			RequiredQuantity: r.RequiredQuantity,
		})
	}
	return out, nil
}

// SetRequirements reemplaza todas las filas de la dotación.
// Cada elemento debe existir en el catálogo y ser aceptado por el dominio.
func (uc *UseCase) SetRequirements(ctx context.Context, id string, in dto.SetRequirementsRequest) error {
	a, err := uc.allowances.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}

	seen := make(map[string]bool, len(in.Rows))
	rows := make([]*entity.ReqQty, 0, len(in.Rows))
	for _, r := range in.Rows {
		if !entity.ValidDomain(r.Domain) || !entity.AcceptsBaseKind(r.Domain, r.BaseKind) || r.RequiredQuantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		key := r.Domain + "|" + r.BaseKind + "|" + r.BaseID
		if seen[key] {
			return domain.ErrInvalidInput
		}
		seen[key] = true
		if err := uc.requireElement(ctx, r.BaseKind, r.BaseID); err != nil {
			return err
		}
		rows = append(rows, &entity.ReqQty{
			ID:               uuid.New().String(),
			Domain:           r.Domain,
			AllowanceID:      id,
			BaseKind:         r.BaseKind,
			BaseID:           r.BaseID,
			RequiredQuantity: r.RequiredQuantity,
		})
	}
	err = uc.txRunner.RunAllowance(ctx, func(
		_ repository.AllowanceRepository,
		reqQtyRepo repository.ReqQtyRepository,
		_ repository.MoleculeRepository,
		_ repository.EquipmentRepository,
	) error {
		return reqQtyRepo.ReplaceForAllowance(ctx, id, rows)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *UseCase) requireElement(ctx context.Context, baseKind, baseID string) error {
	switch baseKind {
	case entity.BaseKindMolecule:
		m, err := uc.molecules.GetByID(ctx, baseID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
	case entity.BaseKindEquipment:
		e, err := uc.equipments.GetByID(ctx, baseID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *UseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de estado")
	}
}

func sortRows(rows []*entity.ReqQty) {
	order := make(map[string]int, len(entity.Domains))
	for i, d := range entity.Domains {
		order[d] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Domain != b.Domain {
			return order[a.Domain] < order[b.Domain]
		}
		if a.BaseKind != b.BaseKind {
			return a.BaseKind < b.BaseKind
		}
		return a.BaseID < b.BaseID
	})
}

func toAllowanceResponse(a *entity.Allowance) *dto.AllowanceResponse {
	if a == nil {
		return nil
	}
	return &dto.AllowanceResponse{
		ID:         a.ID,
		Name:       a.Name,
		Author:     a.Author,
		Version:    a.Version,
		Date:       a.Date,
		Additional: a.Additional,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
