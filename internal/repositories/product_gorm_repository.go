package repositories

import (
	"errors"
	"fmt"

	"estilo/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetAll retrieves products with skip/limit pagination.
func (r *GORMProductRepository) GetAll(skip, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Images").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID, images included.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// GetByBarcode retrieves a product by its barcode.
func (r *GORMProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by barcode: %w", err)
	}
	return &product, nil
}

// Update saves changes to an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// Delete removes a product and its images in one transaction. The explicit
// image delete keeps the cascade working on storage engines that do not
// enforce the foreign key constraint.
func (r *GORMProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Product{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrProductNotFound
			}
			return fmt.Errorf("failed to load product %d for deletion: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete images of product %d: %w", id, err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, err)
		}
		return nil
	})
}

// AddImages attaches image URLs to a product. URLs already present on the
// product are skipped rather than duplicated.
func (r *GORMProductRepository) AddImages(productID uint, urls []string) ([]models.ProductImage, error) {
	var created []models.ProductImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, url := range urls {
			var count int64
			if err := tx.Model(&models.ProductImage{}).
				Where("product_id = ? AND url = ?", productID, url).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check image duplicate: %w", err)
			}
			if count > 0 {
				continue
			}
			image := models.ProductImage{ProductID: productID, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to create product image: %w", err)
			}
			created = append(created, image)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetImages lists all images of a product.
func (r *GORMProductRepository) GetImages(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to get images of product %d: %w", productID, err)
	}
	return images, nil
}

// DeleteImage removes a single product image by its ID.
func (r *GORMProductRepository) DeleteImage(imageID uint) error {
	res := r.db.Delete(&models.ProductImage{}, imageID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete image %d: %w", imageID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
