// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	ShopID      uuid.UUID      `json:"shop_id" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	StockLevel  int            `json:"stock_level" gorm:"not null;default:0"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Thumbnail   string         `json:"thumbnail" gorm:"size:2048;not null"`

	// Populated on denormalized reads; nil when the owning shop no longer exists.
	Shop *Shop `json:"shop,omitempty" gorm:"foreignKey:ShopID;references:ID"`
}
