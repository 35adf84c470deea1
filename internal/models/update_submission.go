// internal/models/update_submission.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductUpdateSubmission is a sparse diff proposed against an existing
// product. A nil field means "no change requested" for that field, which is
// distinct from proposing an empty value; the pointers carry that distinction
// through the JSON boundary.
type ProductUpdateSubmission struct {
	BaseModel
	Moderatable
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`

	Name        *string    `json:"name,omitempty" gorm:"size:200"`
	Store       *string    `json:"store,omitempty" gorm:"size:100"`
	Price       *int       `json:"price,omitempty"`
	Category    *string    `json:"category,omitempty" gorm:"size:50"`
	ReleaseDate *time.Time `json:"release_date,omitempty" gorm:"type:date"`
	Description *string    `json:"description,omitempty" gorm:"size:1000"`
	Ingredients *string    `json:"ingredients,omitempty" gorm:"size:1000"`
	Barcode     *string    `json:"barcode,omitempty" gorm:"size:50"`
	Location    *string    `json:"location,omitempty" gorm:"size:200"`

	SubmittedByID uuid.UUID `json:"submitted_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Product     *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	SubmittedBy *User    `json:"submitted_by,omitempty" gorm:"foreignKey:SubmittedByID"`
	ReviewedBy  *User    `json:"reviewed_by,omitempty" gorm:"foreignKey:ReviewedByID"`
}

// ApplyTo merges the set fields of the submission into the product. Unset
// fields are left untouched.
func (s *ProductUpdateSubmission) ApplyTo(p *Product) {
	if s.Name != nil {
		p.Name = *s.Name
	}
	if s.Store != nil {
		p.Store = *s.Store
	}
	if s.Price != nil {
		p.Price = *s.Price
	}
	if s.Category != nil {
		p.Category = *s.Category
	}
	if s.ReleaseDate != nil {
		p.ReleaseDate = s.ReleaseDate
	}
	if s.Description != nil {
		p.Description = *s.Description
	}
	if s.Ingredients != nil {
		p.Ingredients = *s.Ingredients
	}
	if s.Barcode != nil {
		p.Barcode = *s.Barcode
	}
	if s.Location != nil {
		p.Location = *s.Location
	}
}
