// internal/models/moderation.go
package models

import "github.com/google/uuid"

// Moderatable carries the review lifecycle shared by every submission type:
// status, the reviewing admin and the rejection reason. Embed it in an
// entity to make it subject to the moderation queue.
type Moderatable struct {
	Status          ModerationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ReviewedByID    *uuid.UUID       `json:"reviewed_by_id,omitempty" gorm:"type:uuid"`
	RejectionReason string           `json:"rejection_reason,omitempty" gorm:"size:500"`
}

func (m *Moderatable) IsPending() bool {
	return m.Status == ModerationStatusPending
}

// Approve finalizes the record. Any earlier rejection reason is cleared.
func (m *Moderatable) Approve(reviewer *User) {
	m.Status = ModerationStatusApproved
	m.ReviewedByID = &reviewer.ID
	m.RejectionReason = ""
}

func (m *Moderatable) Reject(reviewer *User, reason string) {
	m.Status = ModerationStatusRejected
	m.ReviewedByID = &reviewer.ID
	m.RejectionReason = reason
}
