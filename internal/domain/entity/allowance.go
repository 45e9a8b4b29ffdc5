package entity

import "time"

// Allowance representa una dotación reglamentaria (perfil de requerimientos de stock médico).
// Una dotación estándar aporta un candidato al máximo; una adicional suma sobre la base.
type Allowance struct {
	ID         string
	Name       string
	Author     string
	Version    int
	Date       time.Time
	Additional bool
	Active     bool // forma parte de las dotaciones usadas por el buque
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
