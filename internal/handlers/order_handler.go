package handlers

import (
	"estilo/internal/middleware"
	"estilo/internal/repositories"
	"estilo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// OrderItemRequest is one line of a create-order request.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the create-order request body.
type CreateOrderRequest struct {
	Status string             `json:"status"`
	Items  []OrderItemRequest `json:"items" validate:"omitempty,dive"`
}

// HandleCreateOrder creates an order for the authenticated user, reserving
// stock for every item.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusUnprocessableEntity, err)
	}

	items := make([]repositories.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, repositories.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.service.CreateOrder(middleware.CurrentUser(c), req.Status, items)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves orders with skip/limit pagination.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	orders, err := h.service.GetOrders(skip, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves a single order with its items and products.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// UpdateOrderRequest is the update-order request body.
type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrder replaces the status of an order. Admin-only.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	order, err := h.service.UpdateOrderStatus(middleware.CurrentUser(c), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order and its items. Admin-only. Stock is
// not restored.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteOrder(middleware.CurrentUser(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
