// internal/models/upload_ticket.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadTicket is a short-lived, single-use capability binding a user to one
// reserved storage path. The actual binary upload happens out-of-band; the
// confirm step records the resulting public URL and burns the ticket.
type UploadTicket struct {
	BaseModel
	Token     string    `json:"token" gorm:"uniqueIndex;size:100;not null"`
	FilePath  string    `json:"file_path" gorm:"size:500;not null"`
	PublicURL string    `json:"public_url" gorm:"size:500"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	Used      bool      `json:"used" gorm:"not null;default:false"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (t *UploadTicket) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid holds iff the ticket is unused and unexpired. A redeemed ticket is
// never valid again regardless of time.
func (t *UploadTicket) IsValid() bool {
	return !t.Used && !t.IsExpired()
}

func (t *UploadTicket) MarkAsUsed() {
	t.Used = true
}
