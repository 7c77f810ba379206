package entity

import "time"

// Store representa una tienda o sucursal donde se almacena inventario (multi-tienda).
type Store struct {
	ID        int64
	Code      string // código corto, ej. "ST-001"
	Name      string
	Location  string
	Manager   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
