package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleMedic  = "medic"
	RoleViewer = "viewer"
)

// User representa un usuario de la aplicación a bordo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, medic, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
