package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// ValidRole indica si el rol es uno de los permitidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleEmployee
}

// User representa un usuario del sistema (actor de movimientos, cliente de pedidos, autor de artículos).
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string // bcrypt hash
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
