// Package analytics contiene los casos de uso de resumen para el Dashboard del buque.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
)

// StatusReader fuente del estado completo de inventario (InventoryStatusUseCase).
type StatusReader interface {
	FullStatus(ctx context.Context, filter dto.StatusFilter) (*dto.FullStatusDTO, error)
}

// VesselReader fuente de los ajustes del buque.
type VesselReader interface {
	Get(ctx context.Context) (*dto.VesselResponse, error)
}

// DashboardUseCase genera el resumen por dominio y los totales del buque.
//
// No accede a repositorios: todo el cálculo se delega en el estado de inventario,
// que ya está en caché cuando el dashboard se refresca.
type DashboardUseCase struct {
	status StatusReader
	vessel VesselReader
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(status StatusReader, vessel VesselReader) *DashboardUseCase {
	return &DashboardUseCase{status: status, vessel: vessel, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO con las dotaciones activas.
//
// Dos llamadas en paralelo:
//  1. FullStatus  → resumen por dominio + totales
//  2. Vessel.Get  → nombre y ventana de aviso
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type statusResult struct {
		full *dto.FullStatusDTO
		err  error
	}
	type vesselResult struct {
		vessel *dto.VesselResponse
		err    error
	}

	statusCh := make(chan statusResult, 1)
	vesselCh := make(chan vesselResult, 1)

	go func() {
		full, err := uc.status.FullStatus(ctx, dto.StatusFilter{})
		statusCh <- statusResult{full, err}
	}()
	go func() {
		v, err := uc.vessel.Get(ctx)
		vesselCh <- vesselResult{v, err}
	}()

	st := <-statusCh
	vs := <-vesselCh

	if st.err != nil {
		return nil, fmt.Errorf("dashboard: estado de inventario: %w", st.err)
	}
	if vs.err != nil {
		return nil, fmt.Errorf("dashboard: ajustes del buque: %w", vs.err)
	}

	out := &dto.DashboardSummaryDTO{
		Totals:      st.full.Summary,
		Domains:     make([]dto.DomainSummaryDTO, 0, len(st.full.Domains)),
		GeneratedAt: uc.now(),
	}
	if vs.vessel != nil {
		out.VesselName = vs.vessel.Name
		out.WarningDays = vs.vessel.ExpiryWarningDays
	}
	for _, d := range st.full.Domains {
		out.Domains = append(out.Domains, dto.DomainSummaryDTO{Domain: d.Domain, Summary: d.Summary})
		if out.WarningDays == 0 {
			out.WarningDays = d.WarningDays
		}
	}
	return out, nil
}
