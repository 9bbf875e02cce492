package services

import (
	"context"
	"math"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// PriceResolver returns the currently effective unit price of a product for
// a given size variant. Pure read, no side effects. Both the cart and the
// order core resolve through it; orders snapshot the resolved value at
// commit time and never re-read it.
type PriceResolver struct {
	products repositories.ProductRepository
}

// NewPriceResolver creates a new PriceResolver.
func NewPriceResolver(products repositories.ProductRepository) *PriceResolver {
	return &PriceResolver{
		products: products,
	}
}

// Resolve returns the unit price of the product for size. It fails with a
// not-found error when the product does not exist and a conflict when the
// product carries no price for the exact selected size.
func (pr *PriceResolver) Resolve(ctx context.Context, productID string, size models.Size) (float64, error) {
	product, err := pr.products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	price, ok := product.PriceFor(size)
	if !ok {
		return 0, apperrors.Conflict("price not found for %s (%s)", product.Name, size)
	}
	return price.Value, nil
}

// round2 rounds a monetary amount to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
