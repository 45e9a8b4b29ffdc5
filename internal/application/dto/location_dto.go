package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
	IsRescueBag bool   `json:"is_rescue_bag"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
// ParentID vacío ("") mueve la ubicación a la raíz.
type UpdateLocationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	ParentID    *string `json:"parent_id"`
	IsRescueBag *bool   `json:"is_rescue_bag"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ParentID    string    `json:"parent_id,omitempty"`
	Path        string    `json:"path"`
	IsRescueBag bool      `json:"is_rescue_bag"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateContainerRequest entrada para crear un botiquín o bolsa de rescate.
type CreateContainerRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=first_aid_kit rescue_bag"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	LocationID string `json:"location_id" validate:"omitempty,uuid"`
}

// UpdateContainerRequest entrada para actualizar un contenedor (el tipo no cambia).
type UpdateContainerRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	LocationID *string `json:"location_id"`
}

// ContainerResponse salida de un contenedor.
type ContainerResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	LocationID   string    `json:"location_id,omitempty"`
	LocationPath string    `json:"location_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VesselRequest entrada para PUT /api/vessel.
type VesselRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	IMO               string `json:"imo" validate:"omitempty,max=20"`
	CallSign          string `json:"call_sign" validate:"omitempty,max=20"`
	Flag              string `json:"flag" validate:"omitempty,max=100"`
	ExpiryWarningDays *int   `json:"expiry_warning_days" validate:"omitempty,min=0,max=3650"`
}

// VesselResponse ajustes del buque.
type VesselResponse struct {
	Name              string    `json:"name"`
	IMO               string    `json:"imo,omitempty"`
	CallSign          string    `json:"call_sign,omitempty"`
	Flag              string    `json:"flag,omitempty"`
	ExpiryWarningDays int       `json:"expiry_warning_days"`
	UpdatedAt         time.Time `json:"updated_at"`
}
