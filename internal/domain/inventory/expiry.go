package inventory

import "time"

// ExpiryStatus clasificación de la fecha de caducidad de un Item.
type ExpiryStatus string

const (
	ExpiryNone    ExpiryStatus = "NONE"    // sin fecha (no perecedero)
	ExpiryOK      ExpiryStatus = "OK"
	ExpiryWarning ExpiryStatus = "WARNING" // caduca dentro de la ventana de aviso
	ExpiryExpired ExpiryStatus = "EXPIRED"
)

// ClassifyExpiry compara por fecha de calendario (se ignora la hora).
// Caducado si exp < hoy; aviso si exp <= hoy + warningDays.
func ClassifyExpiry(exp *time.Time, today time.Time, warningDays int) ExpiryStatus {
	if exp == nil {
		return ExpiryNone
	}
	if warningDays < 0 {
		warningDays = 0
	}
	e := civilDate(*exp)
	t := civilDate(today)
	switch {
	case e.Before(t):
		return ExpiryExpired
	case !e.After(t.AddDate(0, 0, warningDays)):
		return ExpiryWarning
	default:
		return ExpiryOK
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
