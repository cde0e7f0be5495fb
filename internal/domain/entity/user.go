package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User usuario de la aplicación (autenticación del API).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | bodeguero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
