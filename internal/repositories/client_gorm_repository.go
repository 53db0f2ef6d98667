package repositories

import (
	"errors"
	"fmt"

	"estilo/internal/models"

	"gorm.io/gorm"
)

// GORMClientRepository is a GORM implementation of ClientRepository.
type GORMClientRepository struct {
	db *gorm.DB
}

// NewGORMClientRepository creates a new instance of GORMClientRepository.
func NewGORMClientRepository(db *gorm.DB) *GORMClientRepository {
	return &GORMClientRepository{db: db}
}

// Create creates a new client in the database.
func (r *GORMClientRepository) Create(client *models.Client) error {
	if err := r.db.Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetAll retrieves clients with skip/limit pagination.
func (r *GORMClientRepository) GetAll(skip, limit int) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Offset(skip).Limit(limit).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

// GetByID retrieves a single client by its ID.
func (r *GORMClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID %d: %w", id, err)
	}
	return &client, nil
}

// GetByEmail retrieves a client by email.
func (r *GORMClientRepository) GetByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}
	return &client, nil
}

// GetByCPF retrieves a client by CPF.
func (r *GORMClientRepository) GetByCPF(cpf string) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "cpf = ?", cpf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by CPF: %w", err)
	}
	return &client, nil
}

// Update saves changes to an existing client.
func (r *GORMClientRepository) Update(client *models.Client) error {
	res := r.db.Save(client)
	if res.Error != nil {
		return fmt.Errorf("failed to update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a client by its ID.
func (r *GORMClientRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Client{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
