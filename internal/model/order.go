package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every accepted status. Any status may move to any other.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus returns the status named s, or false when s is not one of OrderStatuses
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// Order represents a customer order for a single product
type Order struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(40)"`
	CustomerName string          `json:"customerName" gorm:"type:varchar(255);not null"`
	Email        *string         `json:"email" gorm:"type:varchar(255)"`
	Phone        string          `json:"phone" gorm:"type:varchar(32);not null"`
	Address      string          `json:"address" gorm:"type:text;not null"`
	ProductID    uint            `json:"productId" gorm:"not null;index"`
	ProductTitle string          `json:"productTitle" gorm:"type:varchar(255)"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	TotalPrice   decimal.Decimal `json:"totalPrice" gorm:"type:decimal(14,2);not null"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	// Seq is the insertion sequence that orders rows sharing a CreatedAt
	Seq          int64           `json:"-" gorm:"not null;default:0;index"`
}

// OrderPatch carries the fields of a partial order update; nil means untouched
type OrderPatch struct {
	CustomerName *string
	Email        *string
	Phone        *string
	Address      *string
	ProductID    *uint
	ProductTitle *string
	Quantity     *int
	TotalPrice   *decimal.Decimal
	Status       *OrderStatus
}

// IsEmpty reports whether the patch changes nothing
func (p OrderPatch) IsEmpty() bool {
	return p.CustomerName == nil && p.Email == nil && p.Phone == nil && p.Address == nil &&
		p.ProductID == nil && p.ProductTitle == nil && p.Quantity == nil &&
		p.TotalPrice == nil && p.Status == nil
}
