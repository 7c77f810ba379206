package entity

import "time"

// Customer representa un cliente de la cadena (ventas).
type Customer struct {
	ID            int64
	Code          string
	Name          string
	Email         string
	Phone         string
	City          string
	LoyaltyPoints int64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
