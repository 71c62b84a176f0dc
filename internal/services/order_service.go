package services

import (
	"fmt"
	"log"
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles business logic related to orders, including building
// an order from a profile's persisted cart.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cart        *CartService
	mqClient    *rabbitmq.Client // RabbitMQ client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cart *CartService, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cart:        cart,
		mqClient:    mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves the orders placed by one user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder creates a new order from the requested items. Each item is
// checked against the catalog for existence and stock, and priced at the
// catalog's current price rather than whatever the request claims.
func (s *OrderService) CreateOrder(orderRequest models.Order) (*models.Order, error) {
	var totalAmount float64
	var processedItems []models.OrderItem

	for _, item := range orderRequest.Items {
		product, err := s.productRepo.GetByID(string(item.ProductID))
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", item.ProductID, err)
		}

		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)", product.Name, item.Quantity, product.Stock)
		}

		itemPrice := float64(product.Price) // Use price at the time of order creation
		processedItems = append(processedItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     itemPrice,
		})
		totalAmount += itemPrice * float64(item.Quantity)
	}

	newOrder := &models.Order{
		ID:          uuid.New().String(),
		UserID:      orderRequest.UserID,
		Items:       processedItems,
		TotalAmount: totalAmount,
		Status:      "pending", // Initial status
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(newOrder)

	return newOrder, nil
}

// CheckoutCart turns a profile's persisted cart into an order. The cart is
// cleared only after the order has been stored, so a failed checkout leaves
// the cart intact.
func (s *OrderService) CheckoutCart(profile, userID string) (*models.Order, error) {
	cartItems := s.cart.Items(profile)
	if len(cartItems) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	orderRequest := models.Order{UserID: userID}
	for _, item := range cartItems {
		orderRequest.Items = append(orderRequest.Items, models.OrderItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.CreateOrder(orderRequest)
	if err != nil {
		return nil, err
	}

	if err := s.cart.ClearCart(profile); err != nil {
		// The order is already placed; a stale cart is annoying but not fatal.
		log.Printf("Warning: failed to clear cart for profile %s after checkout: %v", profile, err)
	}

	return order, nil
}

// publishOrderCreated emits an order.created event. Publishing is best
// effort; the order is already durable when this runs.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	orderCreatedMessage := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}

	if err := s.mqClient.PublishOrderCreated(orderCreatedMessage); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.ID)
	}
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{"pending": true, "processing": true, "shipped": true, "delivered": true, "cancelled": true}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	return nil
}
