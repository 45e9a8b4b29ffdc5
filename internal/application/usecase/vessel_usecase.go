package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// VesselUseCase lee y guarda los ajustes del buque.
type VesselUseCase struct {
	repo        repository.VesselRepository
	warningDays int
	cache       CacheInvalidator
	log         *logger.Logger
}

// NewVesselUseCase construye el caso de uso. warningDays es la ventana por defecto
// (EXPIRY_WARNING_DAYS) mientras no haya ajustes guardados.
func NewVesselUseCase(repo repository.VesselRepository, warningDays int, cache CacheInvalidator, log *logger.Logger) *VesselUseCase {
	if warningDays <= 0 {
		warningDays = entity.DefaultExpiryWarningDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &VesselUseCase{repo: repo, warningDays: warningDays, cache: cache, log: log.Component("vessel")}
}

// Get devuelve los ajustes guardados o los valores por defecto.
func (uc *VesselUseCase) Get(ctx context.Context) (*dto.VesselResponse, error) {
	v, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = &entity.Vessel{ExpiryWarningDays: uc.warningDays}
	}
	return toVesselResponse(v), nil
}

// Save reemplaza los ajustes. Sin ExpiryWarningDays se conserva la ventana actual.
func (uc *VesselUseCase) Save(ctx context.Context, in dto.VesselRequest) (*dto.VesselResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	days := uc.warningDays
	if current != nil {
		days = current.ExpiryWarningDays
	}
	if in.ExpiryWarningDays != nil {
		if *in.ExpiryWarningDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		days = *in.ExpiryWarningDays
	}
	v := &entity.Vessel{
		Name:              name,
		IMO:               strings.TrimSpace(in.IMO),
		CallSign:          strings.TrimSpace(in.CallSign),
		Flag:              strings.TrimSpace(in.Flag),
		ExpiryWarningDays: days,
		UpdatedAt:         time.Now(),
	}
	if err := uc.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return toVesselResponse(v), nil
}

func toVesselResponse(v *entity.Vessel) *dto.VesselResponse {
	return &dto.VesselResponse{
		Name:              v.Name,
		IMO:               v.IMO,
		CallSign:          v.CallSign,
		Flag:              v.Flag,
		ExpiryWarningDays: v.ExpiryWarningDays,
		UpdatedAt:         v.UpdatedAt,
	}
}
