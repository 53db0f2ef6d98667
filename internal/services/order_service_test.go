package services_test

import (
	"testing"

	"estilo/internal/models"
	"estilo/internal/repositories"
	"estilo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(userID uint, status string, items []repositories.OrderItemRequest) (*models.Order, error) {
	args := m.Called(userID, status, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(skip, limit int) ([]models.Order, error) {
	args := m.Called(skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(id uint, status string) (*models.Order, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	_, err := service.CreateOrder(&models.User{ID: 1}, "", nil)
	assert.ErrorIs(t, err, models.ErrEmptyOrder)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestOrderService_CreateOrder_DefaultStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	events := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, events)

	items := []repositories.OrderItemRequest{{ProductID: 1, Quantity: 2}}
	created := &models.Order{
		ID:     1,
		UserID: 1,
		Status: models.DefaultOrderStatus,
		Items:  []models.OrderItem{{ProductID: 1, Quantity: 2, Price: 10.0}},
	}

	mockRepo.On("Create", uint(1), "PENDING", items).Return(created, nil).Once()
	events.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := service.CreateOrder(&models.User{ID: 1}, "", items)
	assert.NoError(t, err)
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, 20.0, order.Total())
	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestOrderService_CreateOrder_RepoFailureSkipsEvent(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	events := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, events)

	items := []repositories.OrderItemRequest{{ProductID: 9, Quantity: 1}}
	mockRepo.On("Create", uint(1), "PENDING", items).Return(nil, models.ErrProductNotFound).Once()

	_, err := service.CreateOrder(&models.User{ID: 1}, "", items)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	events.AssertNotCalled(t, "Publish")
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_Forbidden(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	// Non-admin fails before the repository is consulted, whether or not
	// the order exists.
	_, err := service.UpdateOrderStatus(&models.User{ID: 1}, 9999, "SHIPPED")
	assert.ErrorIs(t, err, models.ErrForbidden)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderService_UpdateOrderStatus_Admin(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	events := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, events)

	updated := &models.Order{ID: 1, Status: "SHIPPED"}
	mockRepo.On("UpdateStatus", uint(1), "SHIPPED").Return(updated, nil).Once()
	events.On("Publish", "order.status_updated", mock.Anything).Return(nil).Once()

	order, err := service.UpdateOrderStatus(&models.User{ID: 2, IsAdmin: true}, 1, "SHIPPED")
	assert.NoError(t, err)
	assert.Equal(t, "SHIPPED", order.Status)
	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	err := service.DeleteOrder(&models.User{ID: 1}, 1)
	assert.ErrorIs(t, err, models.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete")

	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	err = service.DeleteOrder(&models.User{ID: 2, IsAdmin: true}, 1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
