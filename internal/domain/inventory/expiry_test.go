package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
)

func TestClassifyExpiry(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	at := func(y int, m time.Month, dd int) *time.Time {
		v := time.Date(y, m, dd, 23, 59, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name string
		exp  *time.Time
		days int
		want inventory.ExpiryStatus
	}{
		{name: "sin fecha", exp: nil, days: 90, want: inventory.ExpiryNone},
		{name: "ayer caducado", exp: at(2026, 3, 9), days: 90, want: inventory.ExpiryExpired},
		{name: "hoy aún no caduca, entra en aviso", exp: at(2026, 3, 10), days: 90, want: inventory.ExpiryWarning},
		{name: "último día de la ventana", exp: at(2026, 3, 20), days: 10, want: inventory.ExpiryWarning},
		{name: "un día después de la ventana", exp: at(2026, 3, 21), days: 10, want: inventory.ExpiryOK},
		{name: "ventana cero: hoy en aviso", exp: at(2026, 3, 10), days: 0, want: inventory.ExpiryWarning},
		{name: "ventana cero: mañana ok", exp: at(2026, 3, 11), days: 0, want: inventory.ExpiryOK},
		{name: "ventana negativa equivale a cero", exp: at(2026, 3, 11), days: -5, want: inventory.ExpiryOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ClassifyExpiry(tc.exp, today, tc.days))
		})
	}
}

func TestClassifyExpiry_IgnoraZonaHoraria(t *testing.T) {
	// 2026-03-10 01:00 en UTC+5 sigue siendo el día 10 en el calendario local.
	loc := time.FixedZone("UTC+5", 5*3600)
	exp := time.Date(2026, 3, 10, 1, 0, 0, 0, loc)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, inventory.ExpiryWarning, inventory.ClassifyExpiry(&exp, today, 0))
}
