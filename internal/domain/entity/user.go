package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleClerk   = "clerk"
)

// User representa un usuario del panel administrativo.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, clerk
	StoreID      int64  // tienda base; 0 = todas
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
