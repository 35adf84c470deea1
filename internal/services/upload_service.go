// internal/services/upload_service.go
package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

// UploadService issues and redeems single-use upload tickets. A ticket
// authorizes exactly one image-URL registration: the client uploads the
// binary to external storage out-of-band, then confirms the resulting public
// URL against the ticket.
type UploadService struct {
	db         *gorm.DB
	pathPrefix string
	ticketTTL  time.Duration
	urlPattern *regexp.Regexp
}

type ConfirmUploadRequest struct {
	Token     string `json:"token" validate:"required"`
	PublicURL string `json:"public_url" validate:"required,max=500"`
}

func NewUploadService(db *gorm.DB, pathPrefix string, ticketTTL time.Duration, urlPattern string) (*UploadService, error) {
	re, err := regexp.Compile(urlPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid upload URL pattern: %w", err)
	}
	return &UploadService{
		db:         db,
		pathPrefix: pathPrefix,
		ticketTTL:  ticketTTL,
		urlPattern: re,
	}, nil
}

// IssueTicket reserves a fresh storage path for the user and returns an
// unused ticket valid for the configured TTL.
func (s *UploadService) IssueTicket(user *models.User) (*models.UploadTicket, error) {
	suffix, err := utils.GenerateRandomString(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate path suffix: %w", err)
	}

	ticket := &models.UploadTicket{
		Token:     uuid.NewString(),
		FilePath:  fmt.Sprintf("%s/%d-%s.jpg", s.pathPrefix, time.Now().UnixMilli(), suffix),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ticketTTL),
		Used:      false,
	}

	if err := s.db.Create(ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create upload ticket: %w", err)
	}

	return ticket, nil
}

// ConfirmUpload redeems a ticket for a public URL. Redemption is exactly
// once: the used flag is flipped with a used=false precondition, so of two
// concurrent confirms only one wins and the loser gets the already-used
// error. A failed confirm (bad URL) leaves the ticket redeemable.
func (s *UploadService) ConfirmUpload(actor *models.User, req *ConfirmUploadRequest) (*models.UploadTicket, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var ticket models.UploadTicket
	if err := s.db.Where("token = ?", req.Token).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("upload ticket: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ticket.IsExpired() {
		return nil, ErrTicketExpired
	}
	if ticket.Used {
		return nil, ErrTicketUsed
	}
	// Ownership is exclusive to the issuing user; not even an admin may
	// redeem someone else's ticket.
	if ticket.UserID != actor.ID {
		return nil, fmt.Errorf("ticket belongs to another user: %w", ErrForbidden)
	}

	if err := s.validatePublicURL(req.PublicURL); err != nil {
		return nil, err
	}

	result := s.db.Model(&models.UploadTicket{}).
		Where("id = ? AND used = ?", ticket.ID, false).
		Updates(map[string]interface{}{
			"used":       true,
			"public_url": req.PublicURL,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to redeem upload ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTicketUsed
	}

	ticket.MarkAsUsed()
	ticket.PublicURL = req.PublicURL

	return &ticket, nil
}

// CleanupExpiredTickets removes unused tickets past their expiry. Meant for a
// periodic janitor, not the request path.
func (s *UploadService) CleanupExpiredTickets() (int64, error) {
	result := s.db.Where("used = ? AND expires_at < ?", false, time.Now()).
		Delete(&models.UploadTicket{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean up tickets: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *UploadService) validatePublicURL(url string) error {
	if strings.Contains(url, "..") {
		return fmt.Errorf("public URL contains path traversal: %w", ErrInvalidFormat)
	}
	if !s.urlPattern.MatchString(url) {
		return fmt.Errorf("public URL does not match allowed storage pattern: %w", ErrInvalidFormat)
	}
	return nil
}
