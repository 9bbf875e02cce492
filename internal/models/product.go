package models

import "gorm.io/gorm"

// Size is the variant dimension along which a product carries multiple prices.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Valid reports whether s is one of the known size variants.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Product represents a product in the store. Stock is the number of
// purchasable units remaining; it must never go negative after a committed
// transaction, so every stock mutation goes through the repository's
// conditional update rather than a read-modify-write.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Prices      []Price `json:"prices" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// PriceFor returns the price entry for the given size, if any.
func (p *Product) PriceFor(size Size) (Price, bool) {
	for _, pr := range p.Prices {
		if pr.Size == size {
			return pr, true
		}
	}
	return Price{}, false
}

// Price is a product's unit price for a single size variant. A product has
// at most one price per size.
type Price struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID  string  `json:"product_id" gorm:"index:idx_price_product_size,unique;type:varchar(36)"`
	Size       Size    `json:"size" gorm:"index:idx_price_product_size,unique;type:varchar(16)" validate:"required,oneof=small medium large"`
	Value      float64 `json:"value" validate:"required,gt=0"`
	gorm.Model
}
