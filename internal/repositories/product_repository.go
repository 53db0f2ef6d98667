package repositories

import "estilo/internal/models"

// ProductRepository defines the interface for product and product image
// data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetAll(skip, limit int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByBarcode(barcode string) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error

	AddImages(productID uint, urls []string) ([]models.ProductImage, error)
	GetImages(productID uint) ([]models.ProductImage, error)
	DeleteImage(imageID uint) error
}
