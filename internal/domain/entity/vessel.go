package entity

import "time"

// DefaultExpiryWarningDays ventana de aviso de caducidad si no se configura otra.
const DefaultExpiryWarningDays = 90

// Vessel ajustes del buque (una sola fila por instalación).
type Vessel struct {
	Name              string
	IMO               string
	CallSign          string
	Flag              string
	ExpiryWarningDays int
	UpdatedAt         time.Time
}
