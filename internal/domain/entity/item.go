package entity

import "time"

// Item es una unidad física en stock: medicamento, artículo o elemento de botiquín/bolsa.
// La cantidad no se almacena; se obtiene reproduciendo sus QtyTransaction.
type Item struct {
	ID            string
	Domain        string
	BaseKind      string
	BaseID        string
	Name          string // nombre comercial
	Packing       string
	ExpDate       *time.Time
	LocationID    string
	ContainerID   string // vacío = farmacia principal
	NcMolecule    string
	NcComposition string
	NcPackaging   string
	NcShape       string
	Remark        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasNc indica si el elemento presenta alguna no conformidad respecto a su referencia.
func (i *Item) HasNc() bool {
	return i.NcMolecule != "" || i.NcComposition != "" || i.NcPackaging != "" || i.NcShape != ""
}
