package services

import (
	"errors"
	"fmt"

	"estilo/internal/models"
	"estilo/internal/repositories"
)

// ClientService handles business logic related to client records.
// Mutations are admin-only.
type ClientService struct {
	repo repositories.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(repo repositories.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// CreateClient creates a new client owned by the current user. Duplicate
// email or CPF fails with models.ErrDuplicateClient.
func (s *ClientService) CreateClient(user *models.User, client *models.Client) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	if err := s.checkDuplicates(client, 0); err != nil {
		return err
	}
	client.CreatedBy = user.ID
	return s.repo.Create(client)
}

// GetClients retrieves clients with skip/limit pagination.
func (s *ClientService) GetClients(skip, limit int) ([]models.Client, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.GetAll(skip, limit)
}

// GetClientByID retrieves a single client by its ID.
func (s *ClientService) GetClientByID(id uint) (*models.Client, error) {
	return s.repo.GetByID(id)
}

// UpdateClient updates an existing client. Admin-only.
func (s *ClientService) UpdateClient(user *models.User, client *models.Client) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	if err := s.checkDuplicates(client, client.ID); err != nil {
		return err
	}
	return s.repo.Update(client)
}

// DeleteClient removes a client by its ID. Admin-only.
func (s *ClientService) DeleteClient(user *models.User, id uint) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}
	return s.repo.Delete(id)
}

// checkDuplicates fails when another client already uses the email or CPF.
func (s *ClientService) checkDuplicates(client *models.Client, excludeID uint) error {
	existing, err := s.repo.GetByEmail(client.Email)
	if err == nil && existing.ID != excludeID {
		return models.ErrDuplicateClient
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check client email: %w", err)
	}

	existing, err = s.repo.GetByCPF(client.CPF)
	if err == nil && existing.ID != excludeID {
		return models.ErrDuplicateClient
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check client CPF: %w", err)
	}
	return nil
}
