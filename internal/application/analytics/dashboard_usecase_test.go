package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Botiquin-api/internal/application/analytics"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type stubStatus struct {
	full   *dto.FullStatusDTO
	err    error
	filter dto.StatusFilter
}

func (s *stubStatus) FullStatus(_ context.Context, filter dto.StatusFilter) (*dto.FullStatusDTO, error) {
	s.filter = filter
	return s.full, s.err
}

type stubVessel struct {
	vessel *dto.VesselResponse
	err    error
}

func (s stubVessel) Get(context.Context) (*dto.VesselResponse, error) {
	return s.vessel, s.err
}

func fullStatus() *dto.FullStatusDTO {
	return &dto.FullStatusDTO{
		Domains: []dto.DomainStatusDTO{
			{Domain: "molecule", WarningDays: 90, Summary: dto.SummaryDTO{Elements: 4, Shortages: 2, Expired: 1}},
			{Domain: "equipment", WarningDays: 90, Summary: dto.SummaryDTO{Elements: 3, Warnings: 1}},
		},
		Summary: dto.SummaryDTO{Elements: 7, Shortages: 2, Expired: 1, Warnings: 1},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_DominiosYTotales(t *testing.T) {
	status := &stubStatus{full: fullStatus()}
	uc := analytics.NewDashboardUseCase(status, stubVessel{vessel: &dto.VesselResponse{Name: "Aurora", ExpiryWarningDays: 120}})

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Empty(t, status.filter.AllowanceIDs, "solo dotaciones activas")
	assert.Equal(t, "Aurora", out.VesselName)
	assert.Equal(t, 120, out.WarningDays)
	assert.Equal(t, dto.SummaryDTO{Elements: 7, Shortages: 2, Expired: 1, Warnings: 1}, out.Totals)
	require.Len(t, out.Domains, 2)
	assert.Equal(t, "molecule", out.Domains[0].Domain)
	assert.Equal(t, 2, out.Domains[0].Summary.Shortages)
	assert.Equal(t, "equipment", out.Domains[1].Domain)
	assert.Equal(t, 1, out.Domains[1].Summary.Warnings)
	assert.False(t, out.GeneratedAt.IsZero())
}

func TestGetSummary_SinAjustesDelBuque(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&stubStatus{full: fullStatus()}, stubVessel{})

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.VesselName)
	assert.Equal(t, 90, out.WarningDays, "se toma la ventana usada por el estado")
}

func TestGetSummary_Errores(t *testing.T) {
	boom := errors.New("boom")

	_, err := analytics.NewDashboardUseCase(&stubStatus{err: boom}, stubVessel{}).GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = analytics.NewDashboardUseCase(&stubStatus{full: fullStatus()}, stubVessel{err: boom}).GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}
