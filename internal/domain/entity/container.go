package entity

import "time"

// Tipos de contenedor.
const (
	ContainerFirstAidKit = DomainFirstAidKit
	ContainerRescueBag   = DomainRescueBag
)

// Container es un botiquín o una bolsa de rescate; los requerimientos de su dominio aplican a cada uno.
type Container struct {
	ID         string
	Kind       string
	Name       string
	LocationID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
