package repository

import "github.com/tu-usuario/pos-backend/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(search string, limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
	// AddLoyaltyPoints suma puntos de fidelidad al completarse un pedido.
	AddLoyaltyPoints(id string, points int64) error
}
