package entity

import "time"

// Location representa un lugar de almacenamiento a bordo; forma un árbol vía ParentID.
type Location struct {
	ID          string
	Name        string
	ParentID    string
	IsRescueBag bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
