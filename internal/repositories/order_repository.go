package repositories

import "estilo/internal/models"

// OrderItemRequest names a product and a quantity to be reserved for an
// order. Items are processed in the order supplied by the caller.
type OrderItemRequest struct {
	ProductID uint
	Quantity  int
}

// OrderRepository defines the interface for order data access. Create is
// the transactional entry point that reserves stock and persists the order
// header and its items as one atomic unit.
type OrderRepository interface {
	Create(userID uint, status string, items []OrderItemRequest) (*models.Order, error)
	GetAll(skip, limit int) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
	Delete(id uint) error
}
