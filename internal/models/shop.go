// internal/models/shop.go
package models

type Shop struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Logo        string `json:"logo" gorm:"size:2048;not null"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:ShopID"`
}
