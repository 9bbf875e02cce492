// Package notifications defines the dispatch contract for customer emails.
// Dispatch is fire-and-forget from the order core's perspective: errors are
// logged by the caller and never affect a committed transaction.
package notifications

import "gerai/internal/models"

// ConfirmationItem is one purchased line in a confirmation message.
type ConfirmationItem struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
	Size     models.Size `json:"size"`
}

// OrderConfirmation is the payload of an order-confirmation message.
type OrderConfirmation struct {
	OrderID     string             `json:"order_id"`
	Items       []ConfirmationItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
}

// StatusUpdate is the payload of an order-status-change message.
type StatusUpdate struct {
	OrderID           string             `json:"order_id"`
	NewStatus         models.OrderStatus `json:"new_status"`
	TrackingNumber    string             `json:"tracking_number,omitempty"`
	EstimatedDelivery string             `json:"estimated_delivery,omitempty"`
}

// Notifier sends confirmation and status emails to a customer address.
type Notifier interface {
	SendOrderConfirmation(to string, c OrderConfirmation) error
	SendStatusUpdate(to string, u StatusUpdate) error
}
