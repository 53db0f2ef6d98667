package handlers

import (
	"time"

	"estilo/internal/middleware"
	"estilo/internal/models"
	"estilo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products and product images.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Delete("/images/:imageId", h.HandleDeleteImage)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/images", h.HandleAddImages)
	productRoutes.Get("/:id/images", h.HandleGetImages)
}

// CreateProductRequest is the create-product request body.
type CreateProductRequest struct {
	Description  string     `json:"description" validate:"required,min=3,max=500"`
	Category     string     `json:"category"`
	Section      string     `json:"section"`
	Price        float64    `json:"price" validate:"required,gt=0"`
	Barcode      *string    `json:"barcode"`
	InitialStock int        `json:"initial_stock" validate:"gte=0"`
	ExpiringDate *time.Time `json:"expiring_date"`
}

// HandleCreateProduct creates a new product. Admin-only.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	product := &models.Product{
		Description:  req.Description,
		Category:     req.Category,
		Section:      req.Section,
		Price:        req.Price,
		Barcode:      req.Barcode,
		InitialStock: req.InitialStock,
		ExpiringDate: req.ExpiringDate,
	}
	if err := h.service.CreateProduct(middleware.CurrentUser(c), product); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProducts retrieves products with skip/limit pagination.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	products, err := h.service.GetProducts(skip, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product with its images.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// UpdateProductRequest carries a partial product update; only the fields
// present in the body are applied.
type UpdateProductRequest struct {
	Description  *string    `json:"description" validate:"omitempty,min=3,max=500"`
	Category     *string    `json:"category"`
	Section      *string    `json:"section"`
	Price        *float64   `json:"price" validate:"omitempty,gt=0"`
	Barcode      *string    `json:"barcode"`
	CurrentStock *int       `json:"current_stock" validate:"omitempty,gte=0"`
	ExpiringDate *time.Time `json:"expiring_date"`
}

// HandleUpdateProduct applies a partial update to a product. Admin-only.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return writeError(c, err)
	}

	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Section != nil {
		product.Section = *req.Section
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.CurrentStock != nil {
		product.CurrentStock = *req.CurrentStock
	}
	if req.ExpiringDate != nil {
		product.ExpiringDate = req.ExpiringDate
	}

	if err := h.service.UpdateProduct(middleware.CurrentUser(c), product); err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and its images. Admin-only.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteProduct(middleware.CurrentUser(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductImageRequest is one image of an add-images request.
type ProductImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// HandleAddImages attaches image URLs to a product, skipping duplicates.
// Admin-only.
func (h *ProductHandler) HandleAddImages(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	var reqs []ProductImageRequest
	if err := c.BodyParser(&reqs); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	urls := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if err := h.validate.Struct(req); err != nil {
			return validationError(c, fiber.StatusBadRequest, err)
		}
		urls = append(urls, req.URL)
	}

	images, err := h.service.AddProductImages(middleware.CurrentUser(c), id, urls)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(images)
}

// HandleGetImages lists all images of a product.
func (h *ProductHandler) HandleGetImages(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	images, err := h.service.GetProductImages(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(images)
}

// HandleDeleteImage removes a single product image. Admin-only.
func (h *ProductHandler) HandleDeleteImage(c *fiber.Ctx) error {
	id, err := paramID(c, "imageId")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteProductImage(middleware.CurrentUser(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
