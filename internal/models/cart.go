package models

import "gorm.io/gorm"

// Cart is a user's mutable pre-purchase basket. The unique index on UserID
// enforces one cart row per user; after checkout the row is reused with its
// items cleared rather than replaced, so IsOrdered stays false for the life
// of the row. The column is carried for schema compatibility only.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	IsOrdered  bool       `json:"is_ordered"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Total      float64    `json:"total" gorm:"-"` // Computed, never persisted
	gorm.Model
}

// CartItem is one line of a cart. Price is an advisory snapshot taken when
// the item was added or last merged; the charged price is always re-resolved
// at order creation, never read from here.
type CartItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string   `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Size      Size     `json:"size" gorm:"type:varchar(16)" validate:"required,oneof=small medium large"`
	Quantity  int      `json:"quantity" validate:"required,gte=1"`
	Price     float64  `json:"price"`
	Cart      *Cart    `json:"-" gorm:"foreignKey:CartID"`
	gorm.Model
}
