package repositories

import "estilo/internal/models"

// ClientRepository defines the interface for client data access.
type ClientRepository interface {
	Create(client *models.Client) error
	GetAll(skip, limit int) ([]models.Client, error)
	GetByID(id uint) (*models.Client, error)
	GetByEmail(email string) (*models.Client, error)
	GetByCPF(cpf string) (*models.Client, error)
	Update(client *models.Client) error
	Delete(id uint) error
}
