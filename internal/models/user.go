package models

import "gorm.io/gorm"

// User represents a user of the store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	IsAdmin    bool   `json:"is_admin"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// DeliveryDetails is a delivery address a user can attach to orders. Orders
// reference it by id; the order core only ever checks it exists.
type DeliveryDetails struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID  string `json:"user_id" gorm:"index;type:varchar(36)"`
	Address string `json:"address" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	Pincode int    `json:"pincode" validate:"required,gt=0"`
	Country string `json:"country" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,max=32"`
	gorm.Model
}
