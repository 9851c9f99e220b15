package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin            = "admin"
	RoleManager          = "manager"
	RoleCashier          = "cashier"
	RoleInventoryOfficer = "inventory_officer"
)

// User representa un usuario del sistema (cajero, gerente, administrador o encargado de inventario).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Phone        string
	Role         string // admin, manager, cashier, inventory_officer
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCashier, RoleInventoryOfficer:
		return true
	}
	return false
}
