// internal/models/store.go
package models

import "github.com/google/uuid"

// Store is a convenience-store or brand record. It must be approved before
// products can be submitted against its name.
type Store struct {
	BaseModel
	Moderatable
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"size:500"`
	Website     string `json:"website" gorm:"size:200"`

	SubmittedByID uuid.UUID `json:"submitted_by_id" gorm:"type:uuid;index"`

	// Relationships
	SubmittedBy *User `json:"submitted_by,omitempty" gorm:"foreignKey:SubmittedByID"`
	ReviewedBy  *User `json:"reviewed_by,omitempty" gorm:"foreignKey:ReviewedByID"`
}
