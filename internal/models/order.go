package models

import "gorm.io/gorm"

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the immutable record of a completed purchase intent. TotalAmount
// and the item price snapshots are fixed at creation; Status and EmailSent
// are the only fields mutated afterwards.
type Order struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string      `json:"user_id" gorm:"index;type:varchar(36)"`
	DeliveryDetailsID string      `json:"delivery_details_id" gorm:"type:varchar(36)"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount       float64     `json:"total_amount"`
	Status            OrderStatus `json:"status" gorm:"type:varchar(16)"`
	EmailSent         bool        `json:"email_sent"`
	gorm.Model
}

// OrderItem is a denormalized copy of product id, size, quantity and unit
// price at order time. It is deliberately decoupled from Product.Price so
// historical orders are immune to later price changes.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Size      Size     `json:"size" gorm:"type:varchar(16)"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // Unit price at the time of order
	gorm.Model
}
