package entity

import "time"

// Roles válidos para User (perfiles del sistema).
const (
	RoleManager   = "gerente"
	RoleDataEntry = "digitador"
	RoleCashier   = "cajero"
)

// Estados de usuario.
const (
	UserStatusActive   = "Activo"
	UserStatusInactive = "Inactivo"
)

// User representa un empleado con acceso al sistema; pertenece a una sucursal.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // gerente, digitador, cajero
	BranchID     string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
