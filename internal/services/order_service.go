package services

import (
	"context"
	"errors"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/notifications"
	"gerai/internal/repositories"
	"gerai/pkg/logger"

	"go.uber.org/zap"
)

// defaultOrderTxTimeout bounds the order transaction. It is generous on
// purpose: creating an order performs one product lookup and one stock
// decrement per line item before the commit.
const defaultOrderTxTimeout = 30 * time.Second

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string      `json:"product_id" validate:"required"`
	Quantity  int         `json:"quantity" validate:"required,gte=1"`
	Size      models.Size `json:"size" validate:"required,oneof=small medium large"`
}

// OrderService converts line items into immutable orders and manages the
// post-creation status lifecycle. All stock mutations happen inside a
// single transaction through the repositories' atomic conditional updates;
// notification dispatch runs detached after commit and never affects the
// committed write.
type OrderService struct {
	tx        repositories.TxRunner
	orders    repositories.OrderRepository
	users     repositories.UserRepository
	notifier  notifications.Notifier
	txTimeout time.Duration
}

// NewOrderService creates a new OrderService. notifier may be nil, in which
// case no emails are dispatched and orders keep emailSent=false.
func NewOrderService(tx repositories.TxRunner, orders repositories.OrderRepository, users repositories.UserRepository, notifier notifications.Notifier, txTimeout time.Duration) *OrderService {
	if txTimeout <= 0 {
		txTimeout = defaultOrderTxTimeout
	}
	return &OrderService{
		tx:        tx,
		orders:    orders,
		users:     users,
		notifier:  notifier,
		txTimeout: txTimeout,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}

// GetOrdersForUser retrieves one user's orders.
func (s *OrderService) GetOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.GetByUserID(ctx, userID)
}

// GetOrder retrieves a single order, restricted to its owner unless the
// actor is an admin.
func (s *OrderService) GetOrder(ctx context.Context, actorID, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !actor.IsAdmin {
			return nil, apperrors.Forbidden("order %s does not belong to user %s", orderID, actorID)
		}
	}
	return order, nil
}

// createdOrder carries the committed order plus everything the detached
// confirmation dispatch needs.
type createdOrder struct {
	order *models.Order
	email string
	items []notifications.ConfirmationItem
}

// CreateOrder turns the requested items into an immutable order as one
// atomic unit of work: user and delivery-details existence, per-item price
// snapshot, atomic stock decrement, and the order insert all commit
// together or not at all. After the commit a confirmation email is
// dispatched best-effort.
func (s *OrderService) CreateOrder(ctx context.Context, userID, deliveryDetailsID string, items []OrderItemRequest) (*models.Order, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var created createdOrder
	err := s.tx.RunInTx(ctx, func(r repositories.Repositories) error {
		var err error
		created, err = s.createOrderInTx(ctx, r, userID, deliveryDetailsID, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatchConfirmation(created)
	return created.order, nil
}

// Checkout creates an order from the user's cart and clears the cart in the
// same transaction. The cart row is reused: items are deleted and the
// isOrdered flag stays false, ready for the next purchase.
func (s *OrderService) Checkout(ctx context.Context, userID, deliveryDetailsID string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var created createdOrder
	err := s.tx.RunInTx(ctx, func(r repositories.Repositories) error {
		cart, err := r.Carts.GetByUserID(ctx, userID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validation("cart is empty")
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return apperrors.Validation("cart is empty")
		}

		items := make([]OrderItemRequest, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, OrderItemRequest{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Size:      item.Size,
			})
		}

		created, err = s.createOrderInTx(ctx, r, userID, deliveryDetailsID, items)
		if err != nil {
			return err
		}

		return r.Carts.ClearItems(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.dispatchConfirmation(created)
	return created.order, nil
}

// createOrderInTx performs the stock-checked order insert inside the given
// unit of work. Prices are re-resolved here at commit time; cart-time
// snapshots are never trusted for the final charge. Stock is decremented
// through the repository's conditional update, so concurrent orders against
// the last units cannot both succeed.
func (s *OrderService) createOrderInTx(ctx context.Context, r repositories.Repositories, userID, deliveryDetailsID string, items []OrderItemRequest) (createdOrder, error) {
	user, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return createdOrder{}, err
	}
	if _, err := r.Users.GetDeliveryDetails(ctx, deliveryDetailsID); err != nil {
		return createdOrder{}, err
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	confirmation := make([]notifications.ConfirmationItem, 0, len(items))
	var total float64

	for _, item := range items {
		product, err := r.Products.GetByID(ctx, item.ProductID)
		if err != nil {
			return createdOrder{}, err
		}
		price, ok := product.PriceFor(item.Size)
		if !ok {
			return createdOrder{}, apperrors.Conflict("price not found for %s (%s)", product.Name, item.Size)
		}
		if err := r.Products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return createdOrder{}, err
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     price.Value,
		})
		confirmation = append(confirmation, notifications.ConfirmationItem{
			Name:     product.Name,
			Quantity: item.Quantity,
			Price:    price.Value,
			Size:     item.Size,
		})
		total += price.Value * float64(item.Quantity)
	}

	order := &models.Order{
		UserID:            userID,
		DeliveryDetailsID: deliveryDetailsID,
		Items:             orderItems,
		TotalAmount:       round2(total),
		Status:            models.OrderStatusPending,
		EmailSent:         false,
	}
	if err := r.Orders.Create(ctx, order); err != nil {
		return createdOrder{}, err
	}

	return createdOrder{order: order, email: user.Email, items: confirmation}, nil
}

// UpdateOrderStatus transitions an order to newStatus. The status write is a
// conditional update keyed on the status the transaction observed, so two
// concurrent transitions from the same state cannot both win: the loser gets
// a conflict and its stock writes roll back. Entering cancelled claims the
// transition first and then restores stock for every item; leaving cancelled
// re-decrements stock through the conditional update and aborts the whole
// transition on insufficient stock, leaving the order cancelled. All stock
// writes share the status write's transaction. A shipped or delivered
// transition triggers a best-effort status email after commit.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actorID, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, apperrors.Validation("invalid order status %q", newStatus)
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var updated *models.Order
	var email string
	err := s.tx.RunInTx(ctx, func(r repositories.Repositories) error {
		actor, err := r.Users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && order.UserID != actorID {
			return apperrors.Forbidden("order %s does not belong to user %s", orderID, actorID)
		}

		if newStatus == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
			// Claim the transition before restoring stock: a concurrent
			// cancellation loses the conditional write and never reaches
			// the increments, so stock is restored exactly once.
			if err := r.Orders.UpdateStatus(ctx, orderID, order.Status, newStatus); err != nil {
				return err
			}
			for _, item := range order.Items {
				if err := r.Products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		} else if order.Status == models.OrderStatusCancelled && newStatus != models.OrderStatusCancelled {
			// Re-take the stock before the status write so an insufficient
			// stock conflict aborts with the order still cancelled.
			for _, item := range order.Items {
				if err := r.Products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			if err := r.Orders.UpdateStatus(ctx, orderID, order.Status, newStatus); err != nil {
				return err
			}
		} else {
			if err := r.Orders.UpdateStatus(ctx, orderID, order.Status, newStatus); err != nil {
				return err
			}
		}
		order.Status = newStatus
		updated = order

		if order.UserID == actorID {
			email = actor.Email
		} else if owner, err := r.Users.GetByID(ctx, order.UserID); err == nil {
			email = owner.Email
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == models.OrderStatusShipped || newStatus == models.OrderStatusDelivered {
		s.dispatchStatusUpdate(updated, email)
	}
	return updated, nil
}

// dispatchConfirmation sends the order-confirmation email detached from the
// caller. Failure is logged with the order id and cause for out-of-band
// follow-up; the order itself is already committed and keeps
// emailSent=false.
func (s *OrderService) dispatchConfirmation(created createdOrder) {
	if s.notifier == nil || created.order == nil {
		return
	}
	go func() {
		payload := notifications.OrderConfirmation{
			OrderID:     created.order.ID,
			Items:       created.items,
			TotalAmount: created.order.TotalAmount,
		}
		if err := s.notifier.SendOrderConfirmation(created.email, payload); err != nil {
			logger.Log.Error("order confirmation dispatch failed",
				zap.String("order_id", created.order.ID),
				zap.Error(err))
			return
		}
		if err := s.orders.MarkEmailSent(context.Background(), created.order.ID); err != nil {
			logger.Log.Warn("failed to record confirmation email flag",
				zap.String("order_id", created.order.ID),
				zap.Error(err))
		}
	}()
}

// dispatchStatusUpdate sends the status-change email detached from the
// caller, with the same never-fatal contract as the confirmation.
func (s *OrderService) dispatchStatusUpdate(order *models.Order, email string) {
	if s.notifier == nil || order == nil || email == "" {
		return
	}
	go func() {
		payload := notifications.StatusUpdate{
			OrderID:           order.ID,
			NewStatus:         order.Status,
			TrackingNumber:    "TRK-" + order.ID,
			EstimatedDelivery: time.Now().Add(3 * 24 * time.Hour).Format("Mon Jan 02 2006"),
		}
		if err := s.notifier.SendStatusUpdate(email, payload); err != nil {
			logger.Log.Error("status update dispatch failed",
				zap.String("order_id", order.ID),
				zap.String("status", string(order.Status)),
				zap.Error(err))
		}
	}()
}

func validateItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return apperrors.Validation("order must contain at least one item")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return apperrors.Validation("quantity must be at least 1 for product %s", item.ProductID)
		}
		if !item.Size.Valid() {
			return apperrors.Validation("unknown size %q", item.Size)
		}
	}
	return nil
}
