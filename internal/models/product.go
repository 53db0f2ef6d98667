package models

import "time"

// Product represents an item that can be sold. CurrentStock is the only
// contended mutable field; it is decremented inside the order-creation
// transaction and must never go negative.
type Product struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Description  string     `json:"description" gorm:"type:text;not null" validate:"required,min=3,max=500"`
	Category     string     `json:"category,omitempty" gorm:"type:text"`
	Section      string     `json:"section,omitempty" gorm:"type:text"`
	Price        float64    `json:"price" gorm:"type:numeric(10,2);not null" validate:"required,gt=0"`
	Barcode      *string    `json:"barcode,omitempty" gorm:"uniqueIndex;type:text"`
	InitialStock int        `json:"initial_stock" gorm:"not null" validate:"gte=0"`
	CurrentStock int        `json:"current_stock" gorm:"not null" validate:"gte=0"`
	ExpiringDate *time.Time `json:"expiring_date,omitempty" gorm:"type:date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Images []ProductImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ProductImage is exclusively owned by its product and removed with it.
type ProductImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null" validate:"required,url"`
	CreatedAt time.Time `json:"created_at"`
}
