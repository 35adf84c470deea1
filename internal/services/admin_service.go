// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/cache"
	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

const (
	dashboardStatsCacheKey = "admin:dashboard-stats"
	dashboardStatsCacheTTL = 30 * time.Second
)

type AdminService struct {
	db *gorm.DB
}

// AdminDashboardStats summarizes the moderation queues and the user base for
// the admin landing page.
type AdminDashboardStats struct {
	PendingSubmissions       int64 `json:"pending_submissions"`
	ApprovedProducts         int64 `json:"approved_products"`
	PendingStores            int64 `json:"pending_stores"`
	ApprovedStores           int64 `json:"approved_stores"`
	PendingUpdateSubmissions int64 `json:"pending_update_submissions"`
	TotalUsers               int64 `json:"total_users"`
	AdminUsers               int64 `json:"admin_users"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats serves the counts through a short-lived cache entry; the
// queues move fast enough that 30 seconds of staleness is acceptable.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	var stats AdminDashboardStats
	err := cache.CacheAside(ctx, dashboardStatsCacheKey, &stats, dashboardStatsCacheTTL, func() error {
		s.db.Model(&models.Product{}).
			Where("status = ?", models.ModerationStatusPending).Count(&stats.PendingSubmissions)
		s.db.Model(&models.Product{}).
			Where("status = ?", models.ModerationStatusApproved).Count(&stats.ApprovedProducts)

		s.db.Model(&models.Store{}).
			Where("status = ?", models.ModerationStatusPending).Count(&stats.PendingStores)
		s.db.Model(&models.Store{}).
			Where("status = ?", models.ModerationStatusApproved).Count(&stats.ApprovedStores)

		s.db.Model(&models.ProductUpdateSubmission{}).
			Where("status = ?", models.ModerationStatusPending).Count(&stats.PendingUpdateSubmissions)

		s.db.Model(&models.User{}).Count(&stats.TotalUsers)
		s.db.Model(&models.User{}).
			Where("role IN ?", []models.UserRole{models.UserRoleAdmin, models.UserRoleSuperAdmin}).
			Count(&stats.AdminUsers)

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SearchUsers matches the query against usernames and emails, paginated.
func (s *AdminService) SearchUsers(search string, params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "username", "email", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// PromoteUser grants the admin role. Promoting someone already privileged is
// an invalid state, not a no-op.
func (s *AdminService) PromoteUser(id uuid.UUID, actor *models.User) (*models.User, error) {
	if !CanModerate(actor) {
		return nil, fmt.Errorf("role changes require admin: %w", ErrForbidden)
	}

	user, err := s.getUser(id)
	if err != nil {
		return nil, err
	}

	if user.IsPrivileged() {
		return nil, fmt.Errorf("user %s already %s: %w", id, user.Role, ErrInvalidState)
	}

	user.PromoteToAdmin()
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}

	return user, nil
}

// DemoteUser revokes the admin role. Demoting a super admin takes a super
// admin actor.
func (s *AdminService) DemoteUser(id uuid.UUID, actor *models.User) (*models.User, error) {
	if !CanModerate(actor) {
		return nil, fmt.Errorf("role changes require admin: %w", ErrForbidden)
	}

	user, err := s.getUser(id)
	if err != nil {
		return nil, err
	}

	if !user.IsPrivileged() {
		return nil, fmt.Errorf("user %s is not privileged: %w", id, ErrInvalidState)
	}
	if user.IsSuperAdmin() && !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("demoting a super admin requires super admin: %w", ErrForbidden)
	}

	user.DemoteToUser()
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to demote user: %w", err)
	}

	return user, nil
}

func (s *AdminService) getUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
