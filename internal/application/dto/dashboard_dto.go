package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Resumen por dominio y totales del buque.
type DashboardSummaryDTO struct {
	VesselName  string             `json:"vessel_name,omitempty"`
	Totals      SummaryDTO         `json:"totals"`
	Domains     []DomainSummaryDTO `json:"domains"`
	WarningDays int                `json:"warning_days"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// DomainSummaryDTO conteos de un dominio para el widget del dashboard.
type DomainSummaryDTO struct {
	Domain  string     `json:"domain"`
	Summary SummaryDTO `json:"summary"`
}
