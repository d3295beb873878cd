package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"
	"github.com/jonyprachine123/test-2/internal/store"

	"github.com/google/uuid"
)

// CreateOrderRequest is the body of a storefront checkout
type CreateOrderRequest struct {
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	ProductID    FlexInt `json:"productId"`
	Quantity     FlexInt `json:"quantity"`
}

// UpdateOrderRequest is a partial order update; nil fields are left untouched
type UpdateOrderRequest struct {
	CustomerName *string  `json:"customerName"`
	Email        *string  `json:"email"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	ProductID    *FlexInt `json:"productId"`
	Quantity     *FlexInt `json:"quantity"`
	Status       *string  `json:"status"`
}

// StatusOnly reports whether the request carries a status and nothing else
func (r *UpdateOrderRequest) StatusOnly() bool {
	return r.Status != nil && r.CustomerName == nil && r.Email == nil && r.Phone == nil &&
		r.Address == nil && r.ProductID == nil && r.Quantity == nil
}

// OrderService handles checkout and order administration
type OrderService interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.Order, error)
	UpdateOrder(ctx context.Context, id string, req *UpdateOrderRequest) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// orderServiceImpl implements OrderService
type orderServiceImpl struct {
	orders   store.OrderStore
	products store.ProductStore
	log      *slog.Logger
	now      func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(orders store.OrderStore, products store.ProductStore, log *slog.Logger) OrderService {
	return &orderServiceImpl{
		orders:   orders,
		products: products,
		log:      log.With("component", "order_service"),
		now:      time.Now,
	}
}

// generateOrderID returns ORD followed by the unix time in milliseconds and a random suffix
func generateOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD%d%s", now.UnixMilli(), suffix)
}

// ListOrders returns all orders, newest first
func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns a single order
func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) lookupProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func checkPhone(phone string) error {
	if !ValidPhone(phone) {
		return &ValidationError{Message: "Invalid phone number format", Details: map[string]string{"phone": "must be a Bangladesh mobile number"}}
	}
	return nil
}

// checkEmail accepts an empty address; email is optional
func checkEmail(email string) error {
	if email != "" && !ValidEmail(email) {
		return &ValidationError{Message: "Invalid email format", Details: map[string]string{"email": "must be a valid email address"}}
	}
	return nil
}

// CreateOrder validates the checkout, prices it from the current product and stores it as Pending
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.Order, error) {
	missing := fieldErrors{}
	if strings.TrimSpace(req.CustomerName) == "" {
		missing.add("customerName", "Name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing.add("phone", "Phone is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		missing.add("address", "Address is required")
	}
	if req.ProductID <= 0 {
		missing.add("productId", "Product is required")
	}
	if req.Quantity <= 0 {
		missing.add("quantity", "Quantity must be at least 1")
	}
	if err := missing.err("Required fields missing"); err != nil {
		return nil, err
	}

	phone := NormalizePhone(req.Phone)
	if err := checkPhone(phone); err != nil {
		return nil, err
	}
	var email *string
	if e := strings.TrimSpace(req.Email); e != "" {
		if err := checkEmail(e); err != nil {
			return nil, err
		}
		email = &e
	}

	product, err := s.lookupProduct(ctx, uint(req.ProductID))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &model.Order{
		ID:           generateOrderID(now),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Email:        email,
		Phone:        phone,
		Address:      strings.TrimSpace(req.Address),
		ProductID:    product.ID,
		ProductTitle: product.Title,
		Quantity:     req.Quantity.Int(),
		TotalPrice:   model.OrderTotal(product.Price, product.Discount, req.Quantity.Int()),
		Status:       model.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.log.Info("Order placed", "id", order.ID, "product_id", order.ProductID, "quantity", order.Quantity)
	return order, nil
}

func parseStatus(raw string) (model.OrderStatus, error) {
	status, ok := model.ParseOrderStatus(strings.TrimSpace(raw))
	if !ok {
		return "", &ValidationError{Message: "Invalid status value", Details: map[string]string{"status": fmt.Sprintf("must be one of %v", model.OrderStatuses)}}
	}
	return status, nil
}

// UpdateOrderStatus moves the order to status. Any status may follow any other.
func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, id string, status string) (*model.Order, error) {
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, model.OrderPatch{Status: &parsed})
}

// UpdateOrder applies any subset of the order fields. A change of product or
// quantity reprices the order from the product's current price and discount.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id string, req *UpdateOrderRequest) (*model.Order, error) {
	var patch model.OrderPatch

	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return nil, &ValidationError{Message: "Name cannot be empty", Details: map[string]string{"customerName": "Name is required"}}
		}
		patch.CustomerName = &name
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, &ValidationError{Message: "Address cannot be empty", Details: map[string]string{"address": "Address is required"}}
		}
		patch.Address = &address
	}
	if req.Phone != nil {
		phone := NormalizePhone(*req.Phone)
		if err := checkPhone(phone); err != nil {
			return nil, err
		}
		patch.Phone = &phone
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := checkEmail(email); err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	if req.ProductID != nil {
		if *req.ProductID <= 0 {
			return nil, &ValidationError{Message: "Invalid product", Details: map[string]string{"productId": "Product is required"}}
		}
		productID := uint(*req.ProductID)
		patch.ProductID = &productID
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, &ValidationError{Message: "Invalid quantity", Details: map[string]string{"quantity": "Quantity must be at least 1"}}
		}
		quantity := req.Quantity.Int()
		patch.Quantity = &quantity
	}

	if patch.IsEmpty() {
		return nil, NewValidationError("No fields to update")
	}

	if patch.ProductID != nil || patch.Quantity != nil {
		current, err := s.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		productID, quantity := current.ProductID, current.Quantity
		if patch.ProductID != nil {
			productID = *patch.ProductID
		}
		if patch.Quantity != nil {
			quantity = *patch.Quantity
		}
		product, err := s.lookupProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		total := model.OrderTotal(product.Price, product.Discount, quantity)
		patch.TotalPrice = &total
		if patch.ProductID != nil {
			patch.ProductTitle = &product.Title
		}
	}

	return s.apply(ctx, id, patch)
}

func (s *orderServiceImpl) apply(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	order, err := s.orders.UpdateOrder(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// DeleteOrder removes an order
func (s *orderServiceImpl) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
