package services

import (
	"errors"
	"fmt"

	"estilo/internal/models"
	"estilo/internal/repositories"
)

// ProductService handles business logic related to products and their
// images. Mutations are admin-only and the role check runs before any
// storage access.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProduct creates a new product. The current stock starts at the
// initial stock.
func (s *ProductService) CreateProduct(user *models.User, product *models.Product) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	if err := s.checkDuplicateBarcode(product.Barcode, 0); err != nil {
		return err
	}
	product.CurrentStock = product.InitialStock
	return s.repo.Create(product)
}

// GetProducts retrieves products with skip/limit pagination.
func (s *ProductService) GetProducts(skip, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.GetAll(skip, limit)
}

// GetProductByID retrieves a single product with its images.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// UpdateProduct updates an existing product. Admin-only.
func (s *ProductService) UpdateProduct(user *models.User, product *models.Product) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	if err := s.checkDuplicateBarcode(product.Barcode, product.ID); err != nil {
		return err
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product and its images. Admin-only.
func (s *ProductService) DeleteProduct(user *models.User, id uint) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	return s.repo.Delete(id)
}

// AddProductImages attaches image URLs to an existing product, skipping
// URLs the product already has. Admin-only.
func (s *ProductService) AddProductImages(user *models.User, productID uint, urls []string) ([]models.ProductImage, error) {
	if !user.IsAdmin {
		return nil, models.ErrForbidden
	}
	if _, err := s.repo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.AddImages(productID, urls)
}

// GetProductImages lists all images of a product.
func (s *ProductService) GetProductImages(productID uint) ([]models.ProductImage, error) {
	if _, err := s.repo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.GetImages(productID)
}

// DeleteProductImage removes a single image. Admin-only.
func (s *ProductService) DeleteProductImage(user *models.User, imageID uint) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	return s.repo.DeleteImage(imageID)
}

// checkDuplicateBarcode fails with models.ErrDuplicateBarcode when another
// product already carries the barcode. excludeID skips the product being
// updated.
func (s *ProductService) checkDuplicateBarcode(barcode *string, excludeID uint) error {
	if barcode == nil || *barcode == "" {
		return nil
	}
	existing, err := s.repo.GetByBarcode(*barcode)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check barcode: %w", err)
	}
	if existing.ID != excludeID {
		return models.ErrDuplicateBarcode
	}
	return nil
}
