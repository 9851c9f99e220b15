package repository

import "github.com/tu-usuario/pos-backend/internal/domain/entity"

// OrderFilter filtros de listado de pedidos.
type OrderFilter struct {
	Status     string
	CustomerID string
	Limit      int
	Offset     int
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// El pedido es dueño de sus líneas: se insertan juntas dentro de la misma
// transacción y el esquema las borra en cascada con el pedido.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetByNumber(orderNumber string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE); lo usan la
	// cancelación y la verificación de sobrepago para serializar por pedido.
	GetForUpdate(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	ItemsByOrder(orderID string) ([]*entity.OrderItem, error)
	List(filter OrderFilter) ([]*entity.Order, int, error)
	ListByCustomer(customerID string, limit int) ([]*entity.Order, error)
}
