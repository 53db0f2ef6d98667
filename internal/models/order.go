package models

import "time"

// DefaultOrderStatus is applied when an order is created without a status.
const DefaultOrderStatus = "PENDING"

// Order represents a customer order. An order always owns at least one
// item; an order with zero items is never persisted.
type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem is a line item of an order. Price is a snapshot of the product
// price at order time; later product price changes do not affect it.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty"`
}

// Total sums quantity times the captured price over all items. The value is
// informational and not persisted.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
