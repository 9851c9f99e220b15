package entity

import "time"

// Customer representa un cliente registrado (opcional en los pedidos).
type Customer struct {
	ID            string
	Name          string
	Email         string // opcional, único si está presente
	Phone         string // opcional, único si está presente
	Address       string
	LoyaltyPoints int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
