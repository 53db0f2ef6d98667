package handlers

import (
	"estilo/internal/middleware"
	"estilo/internal/models"
	"estilo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	service  *services.ClientService
	validate *validator.Validate
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the client routes.
func (h *ClientHandler) RegisterRoutes(router fiber.Router) {
	clientRoutes := router.Group("/clients")
	clientRoutes.Post("/", h.HandleCreateClient)
	clientRoutes.Get("/", h.HandleGetClients)
	clientRoutes.Get("/:id", h.HandleGetClient)
	clientRoutes.Put("/:id", h.HandleUpdateClient)
	clientRoutes.Delete("/:id", h.HandleDeleteClient)
}

// CreateClientRequest is the create-client request body.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,min=3,max=100"`
	Email string `json:"email" validate:"required,email"`
	CPF   string `json:"cpf" validate:"required,len=11,numeric"`
}

// HandleCreateClient creates a new client. Admin-only.
func (h *ClientHandler) HandleCreateClient(c *fiber.Ctx) error {
	var req CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	client := &models.Client{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
	}
	if err := h.service.CreateClient(middleware.CurrentUser(c), client); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// HandleGetClients retrieves clients with skip/limit pagination.
func (h *ClientHandler) HandleGetClients(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	clients, err := h.service.GetClients(skip, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(clients)
}

// HandleGetClient retrieves a single client.
func (h *ClientHandler) HandleGetClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	client, err := h.service.GetClientByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(client)
}

// UpdateClientRequest carries a partial client update.
type UpdateClientRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=3,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	CPF   *string `json:"cpf" validate:"omitempty,len=11,numeric"`
}

// HandleUpdateClient applies a partial update to a client. Admin-only.
func (h *ClientHandler) HandleUpdateClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	var req UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	client, err := h.service.GetClientByID(id)
	if err != nil {
		return writeError(c, err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.CPF != nil {
		client.CPF = *req.CPF
	}

	if err := h.service.UpdateClient(middleware.CurrentUser(c), client); err != nil {
		return writeError(c, err)
	}
	return c.JSON(client)
}

// HandleDeleteClient removes a client. Admin-only.
func (h *ClientHandler) HandleDeleteClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteClient(middleware.CurrentUser(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
