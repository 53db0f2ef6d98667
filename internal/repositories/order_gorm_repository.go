package repositories

import (
	"errors"
	"fmt"

	"estilo/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists an order header, its items and the matching stock
// decrements in a single transaction. The stock check and decrement of
// each product are one guarded UPDATE, so two concurrent orders cannot
// both pass the check against a stale count. Any failure rolls back every
// write, including stock decrements already applied for earlier items.
func (r *GORMOrderRepository) Create(userID uint, status string, items []OrderItemRequest) (*models.Order, error) {
	order := &models.Order{UserID: userID, Status: status}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order header: %w", err)
		}

		for _, req := range items {
			var product models.Product
			if err := tx.First(&product, req.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", req.ProductID, models.ErrProductNotFound)
				}
				return fmt.Errorf("failed to load product %d: %w", req.ProductID, err)
			}

			// Atomic compare-and-decrement: the row is only touched when
			// enough stock remains, which also keeps the counter from
			// ever going negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND current_stock >= ?", product.ID, req.Quantity).
				Update("current_stock", gorm.Expr("current_stock - ?", req.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock of product %d: %w", product.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d (requested %d, available %d): %w",
					product.ID, req.Quantity, product.CurrentStock, models.ErrInsufficientStock)
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  req.Quantity,
				Price:     product.Price, // snapshot, immutable thereafter
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetAll retrieves orders with skip/limit pagination, eagerly loading items
// and each item's product.
func (r *GORMOrderRepository) GetAll(skip, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Offset(skip).Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with items and products eagerly loaded.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items.Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus replaces the status field of an order verbatim.
func (r *GORMOrderRepository) UpdateStatus(id uint, status string) (*models.Order, error) {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetByID(id)
}

// Delete removes an order and its items in one transaction. Stock consumed
// by the order is not restored.
func (r *GORMOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Order{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to load order %d for deletion: %w", id, err)
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of order %d: %w", id, err)
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete order %d: %w", id, err)
		}
		return nil
	})
}
