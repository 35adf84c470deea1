// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Moderatable
	Name        string     `json:"name" gorm:"size:200;not null"`
	Store       string     `json:"store" gorm:"size:100;not null;index"`
	Price       int        `json:"price" gorm:"not null"`
	Category    string     `json:"category" gorm:"size:50;not null;index"`
	ReleaseDate *time.Time `json:"release_date,omitempty" gorm:"type:date;index"`
	Description string     `json:"description,omitempty" gorm:"size:1000"`
	Ingredients string     `json:"ingredients,omitempty" gorm:"size:1000"`
	Barcode     string     `json:"barcode,omitempty" gorm:"size:50"`
	Location    string     `json:"location,omitempty" gorm:"size:200"`

	SubmittedByID uuid.UUID `json:"submitted_by_id" gorm:"type:uuid;index"`
	ViewsCount    int64     `json:"views_count" gorm:"not null;default:0"`

	// New is derived from the release date and never persisted.
	New bool `json:"is_new" gorm:"-"`

	// Relationships
	SubmittedBy *User          `json:"submitted_by,omitempty" gorm:"foreignKey:SubmittedByID"`
	ReviewedBy  *User          `json:"reviewed_by,omitempty" gorm:"foreignKey:ReviewedByID"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// IsNew reports whether the product was released within the last 7 days.
// Products without a release date, or dated in the future, are not new.
func (p *Product) IsNew() bool {
	if p.ReleaseDate == nil {
		return false
	}
	now := time.Now()
	return p.ReleaseDate.After(now.AddDate(0, 0, -7)) && !p.ReleaseDate.After(now)
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.New = p.IsNew()
	return nil
}

// ProductImage is exclusively owned by its product; deleting the product
// removes its images.
type ProductImage struct {
	BaseModel
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ImageURL     string    `json:"image_url" gorm:"size:500;not null"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
}
