package services

import (
	"context"
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// CartService owns the mutable pre-purchase basket. Every operation takes
// the authenticated user's id explicitly and checks it against the owning
// cart before any mutation. Stock checks here are availability checks only,
// not reservations; enforcement happens at order creation.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	resolver *PriceResolver
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		resolver: NewPriceResolver(products),
	}
}

// GetCart returns the user's open cart with items, products and a computed
// total.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.computeTotal(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity units of (product, size) to the user's cart,
// creating the cart on first use. An existing line for the same product and
// size is merged: quantity summed and the advisory price refreshed to the
// current value.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, size models.Size, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	if !size.Valid() {
		return nil, apperrors.Validation("unknown size %q", size)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	price, ok := product.PriceFor(size)
	if !ok {
		return nil, apperrors.Conflict("price not found for %s (%s)", product.Name, size)
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		cart = &models.Cart{UserID: userID}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var existing *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID && cart.Items[i].Size == size {
			existing = &cart.Items[i]
			break
		}
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if product.Stock < newQuantity {
		return nil, apperrors.Conflict("insufficient stock for %s (requested: %d, available: %d)",
			product.Name, newQuantity, product.Stock)
	}

	if existing != nil {
		existing.Quantity = newQuantity
		existing.Price = price.Value
		if err := s.carts.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Size:      size,
			Quantity:  quantity,
			Price:     price.Value,
		}
		if err := s.carts.CreateItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity sets a line item's quantity after re-validating it
// against current stock.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, cartItemID string, newQuantity int) (*models.Cart, error) {
	if newQuantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	item, err := s.carts.GetItem(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if item.Cart == nil || item.Cart.UserID != userID {
		return nil, apperrors.Forbidden("cart item %s does not belong to user %s", cartItemID, userID)
	}

	product, err := s.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < newQuantity {
		return nil, apperrors.Conflict("insufficient stock for %s (requested: %d, available: %d)",
			product.Name, newQuantity, product.Stock)
	}

	item.Quantity = newQuantity
	if err := s.carts.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes a line item from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID string) (*models.Cart, error) {
	item, err := s.carts.GetItem(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if item.Cart == nil || item.Cart.UserID != userID {
		return nil, apperrors.Forbidden("cart item %s does not belong to user %s", cartItemID, userID)
	}

	if err := s.carts.DeleteItem(ctx, cartItemID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// computeTotal derives the cart total as the sum of price x quantity over
// all items, using the stored advisory price and falling back to a live
// resolution when no snapshot exists. A missing size price during the
// fallback is a data-integrity failure, not a user error, and is surfaced
// as such.
func (s *CartService) computeTotal(ctx context.Context, cart *models.Cart) error {
	var total float64
	for i := range cart.Items {
		item := &cart.Items[i]
		price := item.Price
		if price <= 0 {
			value, err := s.resolver.Resolve(ctx, item.ProductID, item.Size)
			if err != nil {
				return fmt.Errorf("cart %s has unpriceable item %s: %w", cart.ID, item.ID, err)
			}
			price = value
		}
		total += price * float64(item.Quantity)
	}
	cart.Total = round2(total)
	return nil
}
