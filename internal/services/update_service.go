// internal/services/update_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

// UpdateService runs the proposed-edit workflow: users file sparse diffs
// against existing products, admins approve or reject them, approval merges
// the diff into the product.
type UpdateService struct {
	db           *gorm.DB
	storeService *StoreService
}

// ProposeUpdateRequest mirrors the product's mutable fields as pointers.
// An absent field proposes no change; this is distinct from proposing an
// empty value.
type ProposeUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Store       *string `json:"store,omitempty" validate:"omitempty,min=1,max=100"`
	Price       *int    `json:"price,omitempty" validate:"omitempty,min=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	ReleaseDate *string `json:"release_date,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Ingredients *string `json:"ingredients,omitempty" validate:"omitempty,max=1000"`
	Barcode     *string `json:"barcode,omitempty" validate:"omitempty,max=50"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

func NewUpdateService(db *gorm.DB, storeService *StoreService) *UpdateService {
	return &UpdateService{
		db:           db,
		storeService: storeService,
	}
}

// ProposeUpdate files a pending update submission against a product. Only the
// product's submitter or a privileged user may propose; at least one field
// must be set; a proposed store name must be approved.
func (s *UpdateService) ProposeUpdate(productID uuid.UUID, submitter *models.User, req *ProposeUpdateRequest) (*models.ProductUpdateSubmission, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !CanMutate(submitter, product.SubmittedByID) {
		return nil, fmt.Errorf("not the submitter of product %s: %w", productID, ErrForbidden)
	}

	submission := &models.ProductUpdateSubmission{
		ProductID:     productID,
		Name:          req.Name,
		Store:         req.Store,
		Price:         req.Price,
		Category:      req.Category,
		Description:   req.Description,
		Ingredients:   req.Ingredients,
		Barcode:       req.Barcode,
		Location:      req.Location,
		SubmittedByID: submitter.ID,
	}
	submission.Status = models.ModerationStatusPending

	if req.ReleaseDate != nil {
		releaseDate, err := parseReleaseDate(*req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		submission.ReleaseDate = releaseDate
	}

	if !hasProposedChange(submission) {
		return nil, fmt.Errorf("update submission proposes no changes: %w", ErrInvalidFormat)
	}

	if req.Store != nil {
		approved, err := s.storeService.IsStoreApproved(*req.Store)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, fmt.Errorf("store %q is not approved: %w", *req.Store, ErrInvalidReference)
		}
	}

	if err := s.db.Create(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create update submission: %w", err)
	}

	return s.loadSubmission(submission.ID)
}

// ApproveUpdate merges the submission into its product and marks it approved.
// Both writes happen in one transaction with a status precondition, so a
// concurrent decision or a crash can never leave the product updated while
// the submission stays pending, or the reverse.
func (s *UpdateService) ApproveUpdate(id uuid.UUID, reviewer *models.User) (*models.ProductUpdateSubmission, error) {
	if !CanModerate(reviewer) {
		return nil, fmt.Errorf("moderation requires admin: %w", ErrForbidden)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProductUpdateSubmission{}).
			Where("id = ? AND status = ?", id, models.ModerationStatusPending).
			Updates(map[string]interface{}{
				"status":           models.ModerationStatusApproved,
				"reviewed_by_id":   reviewer.ID,
				"rejection_reason": "",
			})
		if result.Error != nil {
			return fmt.Errorf("failed to approve update submission: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return s.decisionConflict(tx, id)
		}

		var submission models.ProductUpdateSubmission
		if err := tx.First(&submission, id).Error; err != nil {
			return fmt.Errorf("failed to reload update submission: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, submission.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", submission.ProductID, ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		submission.ApplyTo(&product)
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to apply update submission: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadSubmission(id)
}

// RejectUpdate marks a pending submission rejected. The target product is not
// touched.
func (s *UpdateService) RejectUpdate(id uuid.UUID, reviewer *models.User, reason string) (*models.ProductUpdateSubmission, error) {
	if !CanModerate(reviewer) {
		return nil, fmt.Errorf("moderation requires admin: %w", ErrForbidden)
	}

	result := s.db.Model(&models.ProductUpdateSubmission{}).
		Where("id = ? AND status = ?", id, models.ModerationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ModerationStatusRejected,
			"reviewed_by_id":   reviewer.ID,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reject update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.decisionConflict(s.db, id)
	}

	return s.loadSubmission(id)
}

func (s *UpdateService) GetSubmission(id uuid.UUID) (*models.ProductUpdateSubmission, error) {
	return s.loadSubmission(id)
}

func (s *UpdateService) ListPendingUpdates(params utils.PaginationParams) ([]models.ProductUpdateSubmission, int64, error) {
	query := s.db.Model(&models.ProductUpdateSubmission{}).
		Where("status = ?", models.ModerationStatusPending).
		Preload("Product").
		Preload("SubmittedBy")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending update submissions: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var submissions []models.ProductUpdateSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending update submissions: %w", err)
	}

	return submissions, total, nil
}

func (s *UpdateService) ListUserUpdates(userID uuid.UUID) ([]models.ProductUpdateSubmission, error) {
	var submissions []models.ProductUpdateSubmission
	if err := s.db.Where("submitted_by_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user update submissions: %w", err)
	}
	return submissions, nil
}

// Helper methods

func (s *UpdateService) loadSubmission(id uuid.UUID) (*models.ProductUpdateSubmission, error) {
	var submission models.ProductUpdateSubmission
	if err := s.db.
		Preload("Product").
		Preload("SubmittedBy").
		Preload("ReviewedBy").
		First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("update submission %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &submission, nil
}

func (s *UpdateService) decisionConflict(tx *gorm.DB, id uuid.UUID) error {
	var submission models.ProductUpdateSubmission
	if err := tx.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("update submission %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}
	return fmt.Errorf("update submission %s already %s: %w", id, submission.Status, ErrInvalidState)
}

func hasProposedChange(s *models.ProductUpdateSubmission) bool {
	return s.Name != nil || s.Store != nil || s.Price != nil || s.Category != nil ||
		s.ReleaseDate != nil || s.Description != nil || s.Ingredients != nil ||
		s.Barcode != nil || s.Location != nil
}
