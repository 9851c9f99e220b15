package repository

import "github.com/tu-usuario/pos-backend/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(id string) error
	List(limit, offset int) ([]*entity.User, error)
	// Deactivate marca el usuario como inactivo; no se borran usuarios
	// para preservar las referencias del ledger y de los pedidos.
	Deactivate(id string) error
}
