package services

import (
	"encoding/json"
	"log"

	"estilo/internal/models"
	"estilo/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes order lifecycle events to a message broker.
// Implemented by pkg/rabbitmq.Client. Publishing is best-effort: failures
// are logged and never surfaced to the HTTP caller.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles business logic related to orders. All role checks
// run before any side-effecting work.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil when no
// broker is configured.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
	}
}

// CreateOrder creates an order for the user, reserving stock for every
// item atomically. An empty item list fails with models.ErrEmptyOrder
// before any persistence write.
func (s *OrderService) CreateOrder(user *models.User, status string, items []repositories.OrderItemRequest) (*models.Order, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyOrder
	}
	if status == "" {
		status = models.DefaultOrderStatus
	}

	order, err := s.orderRepo.Create(user.ID, status, items)
	if err != nil {
		return nil, err
	}

	s.publish("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.Total(),
	})
	return order, nil
}

// GetOrders retrieves orders with skip/limit pagination.
func (s *OrderService) GetOrders(skip, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.orderRepo.GetAll(skip, limit)
}

// GetOrderByID retrieves a single order with its items and products.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus replaces the status of an order verbatim. Admin-only;
// non-admins fail with models.ErrForbidden whether or not the order exists.
func (s *OrderService) UpdateOrderStatus(user *models.User, id uint, status string) (*models.Order, error) {
	if !user.IsAdmin {
		return nil, models.ErrForbidden
	}

	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	s.publish("order.status_updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// DeleteOrder removes an order and its items. Admin-only. Stock consumed
// by the order is not restored.
func (s *OrderService) DeleteOrder(user *models.User, id uint) error {
	if !user.IsAdmin {
		return models.ErrForbidden
	}

	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}

	s.publish("order.deleted", map[string]interface{}{
		"order_id": id,
	})
	return nil
}

func (s *OrderService) publish(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	payload["event_id"] = uuid.New().String()

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
