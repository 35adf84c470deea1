// internal/services/authorization_service.go
package services

import (
	"github.com/google/uuid"

	"github.com/trendtaster/trendtaster-backend/internal/models"
)

// Ownership policy used by every mutating operation on submitted content:
// the submitter may touch their own records, privileged users may touch
// anything. The rule is the same for products, stores, update submissions
// and upload tickets.

func CanMutate(actor *models.User, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.IsPrivileged() {
		return true
	}
	return actor.ID == ownerID
}

// CanModerate reports whether the actor may approve or reject submissions.
func CanModerate(actor *models.User) bool {
	return actor != nil && actor.IsPrivileged()
}
