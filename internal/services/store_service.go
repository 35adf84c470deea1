// internal/services/store_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

type StoreService struct {
	db *gorm.DB
}

type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Website     string `json:"website,omitempty" validate:"omitempty,url,max=200"`
}

// UpdateStoreRequest carries the editable subset of a pending store.
// The name is fixed at creation time.
type UpdateStoreRequest struct {
	Description string `json:"description,omitempty" validate:"max=500"`
	Website     string `json:"website,omitempty" validate:"omitempty,url,max=200"`
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

// CreateStore registers a new store submission in pending state. Store names
// are unique across all statuses, including rejected ones.
func (s *StoreService) CreateStore(submitter *models.User, req *CreateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Unscoped: soft-deleted stores still occupy the unique index on name,
	// so the check must see them or the insert fails with a raw constraint
	// error instead of a duplicate.
	var count int64
	if err := s.db.Unscoped().Model(&models.Store{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check store name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("store name %q taken: %w", req.Name, ErrDuplicate)
	}

	store := &models.Store{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		SubmittedByID: submitter.ID,
	}
	store.Status = models.ModerationStatusPending

	if err := s.db.Create(store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.db.Preload("SubmittedBy").First(store, store.ID)

	return store, nil
}

func (s *StoreService) GetStore(id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := s.db.Preload("SubmittedBy").Preload("ReviewedBy").First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &store, nil
}

// UpdateStore edits a pending store submission. Approved and rejected stores
// are frozen; resubmission is a new store.
func (s *StoreService) UpdateStore(id uuid.UUID, actor *models.User, req *UpdateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var store models.Store
	if err := s.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !CanMutate(actor, store.SubmittedByID) {
		return nil, fmt.Errorf("not the submitter of store %s: %w", id, ErrForbidden)
	}
	if !store.IsPending() {
		return nil, fmt.Errorf("store %s is %s: %w", id, store.Status, ErrInvalidState)
	}

	if req.Description != "" {
		store.Description = req.Description
	}
	if req.Website != "" {
		store.Website = req.Website
	}

	if err := s.db.Save(&store).Error; err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	s.db.Preload("SubmittedBy").First(&store, id)

	return &store, nil
}

// DeleteStore removes a store submission in any status. Only the submitter or
// a privileged user may delete it.
func (s *StoreService) DeleteStore(id uuid.UUID, actor *models.User) error {
	var store models.Store
	if err := s.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !CanMutate(actor, store.SubmittedByID) {
		return fmt.Errorf("not the submitter of store %s: %w", id, ErrForbidden)
	}

	if err := s.db.Delete(&store).Error; err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return nil
}

// ApproveStore flips a pending store to approved. The status check runs in
// the UPDATE itself so two concurrent decisions cannot both win.
func (s *StoreService) ApproveStore(id uuid.UUID, reviewer *models.User) (*models.Store, error) {
	if !CanModerate(reviewer) {
		return nil, fmt.Errorf("moderation requires admin: %w", ErrForbidden)
	}

	result := s.db.Model(&models.Store{}).
		Where("id = ? AND status = ?", id, models.ModerationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ModerationStatusApproved,
			"reviewed_by_id":   reviewer.ID,
			"rejection_reason": "",
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to approve store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.decisionConflict(id)
	}

	return s.GetStore(id)
}

// RejectStore flips a pending store to rejected with a reason.
func (s *StoreService) RejectStore(id uuid.UUID, reviewer *models.User, reason string) (*models.Store, error) {
	if !CanModerate(reviewer) {
		return nil, fmt.Errorf("moderation requires admin: %w", ErrForbidden)
	}

	result := s.db.Model(&models.Store{}).
		Where("id = ? AND status = ?", id, models.ModerationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ModerationStatusRejected,
			"reviewed_by_id":   reviewer.ID,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reject store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.decisionConflict(id)
	}

	return s.GetStore(id)
}

// decisionConflict distinguishes a missing store from one that already left
// the pending state.
func (s *StoreService) decisionConflict(id uuid.UUID) error {
	var store models.Store
	if err := s.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}
	return fmt.Errorf("store %s already %s: %w", id, store.Status, ErrInvalidState)
}

// ListApprovedStores returns the public store directory, ordered by name.
func (s *StoreService) ListApprovedStores() ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.Where("status = ?", models.ModerationStatusApproved).
		Order("name ASC").
		Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) ListPendingStores(params utils.PaginationParams) ([]models.Store, int64, error) {
	query := s.db.Model(&models.Store{}).
		Where("status = ?", models.ModerationStatusPending).
		Preload("SubmittedBy")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending stores: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var stores []models.Store
	if err := query.Find(&stores).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending stores: %w", err)
	}

	return stores, total, nil
}

func (s *StoreService) ListUserStores(userID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.Where("submitted_by_id = ?", userID).
		Order("created_at DESC").
		Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user stores: %w", err)
	}
	return stores, nil
}

// IsStoreApproved reports whether an approved store exists with this exact
// name. Product submissions reference stores by name, not by id.
func (s *StoreService) IsStoreApproved(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Store{}).
		Where("name = ? AND status = ?", name, models.ModerationStatusApproved).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check store: %w", err)
	}
	return count > 0, nil
}
