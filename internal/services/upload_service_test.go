// internal/services/upload_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/config"
	"github.com/trendtaster/trendtaster-backend/internal/models"
)

const testPublicURL = "https://abcd1234.supabase.co/storage/v1/object/public/product-images/ramen.jpg"

func newUploadService(t *testing.T, db *gorm.DB, ttl time.Duration) *UploadService {
	t.Helper()

	svc, err := NewUploadService(db, "product-images", ttl, config.DefaultUploadURLPattern())
	require.NoError(t, err)
	return svc
}

func TestIssueTicketShape(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, 10*time.Minute)
	user := newTestUser(t, db, models.UserRoleUser)

	ticket, err := svc.IssueTicket(user)
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.Token)
	assert.True(t, strings.HasPrefix(ticket.FilePath, "product-images/"))
	assert.True(t, strings.HasSuffix(ticket.FilePath, ".jpg"))
	assert.Equal(t, user.ID, ticket.UserID)
	assert.False(t, ticket.Used)
	assert.True(t, ticket.ExpiresAt.After(time.Now()))

	// Paths must not collide between tickets.
	second, err := svc.IssueTicket(user)
	require.NoError(t, err)
	assert.NotEqual(t, ticket.FilePath, second.FilePath)
	assert.NotEqual(t, ticket.Token, second.Token)
}

func TestConfirmUpload(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, 10*time.Minute)
	user := newTestUser(t, db, models.UserRoleUser)

	ticket, err := svc.IssueTicket(user)
	require.NoError(t, err)

	confirmed, err := svc.ConfirmUpload(user, &ConfirmUploadRequest{
		Token:     ticket.Token,
		PublicURL: testPublicURL,
	})
	require.NoError(t, err)
	assert.True(t, confirmed.Used)
	assert.Equal(t, testPublicURL, confirmed.PublicURL)
}

func TestConfirmUploadTwiceFails(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, 10*time.Minute)
	user := newTestUser(t, db, models.UserRoleUser)

	ticket, err := svc.IssueTicket(user)
	require.NoError(t, err)

	_, err = svc.ConfirmUpload(user, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	require.NoError(t, err)

	_, err = svc.ConfirmUpload(user, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, ErrTicketUsed)
}

func TestConfirmUploadExpiredTicket(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, -time.Minute)
	user := newTestUser(t, db, models.UserRoleUser)

	ticket, err := svc.IssueTicket(user)
	require.NoError(t, err)

	_, err = svc.ConfirmUpload(user, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	assert.ErrorIs(t, err, ErrTicketExpired)
}

func TestConfirmUploadWrongOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, 10*time.Minute)
	owner := newTestUser(t, db, models.UserRoleUser)
	other := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	ticket, err := svc.IssueTicket(owner)
	require.NoError(t, err)

	_, err = svc.ConfirmUpload(other, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	assert.ErrorIs(t, err, ErrForbidden)

	// No admin bypass: tickets are redeemable only by the user they were
	// issued to.
	_, err = svc.ConfirmUpload(admin, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	assert.ErrorIs(t, err, ErrForbidden)

	// The failed attempts leave the ticket redeemable by its owner.
	confirmed, err := svc.ConfirmUpload(owner, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	require.NoError(t, err)
	assert.True(t, confirmed.Used)
}

func TestConfirmUploadChecksValidityBeforeOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, -time.Minute)
	owner := newTestUser(t, db, models.UserRoleUser)
	other := newTestUser(t, db, models.UserRoleUser)

	ticket, err := svc.IssueTicket(owner)
	require.NoError(t, err)

	// An expired ticket reports expiry even to a non-owner.
	_, err = svc.ConfirmUpload(other, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	assert.ErrorIs(t, err, ErrTicketExpired)
}

func TestConfirmUploadBadURLLeavesTicketRedeemable(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, 10*time.Minute)
	user := newTestUser(t, db, models.UserRoleUser)

	ticket, err := svc.IssueTicket(user)
	require.NoError(t, err)

	badURLs := []string{
		"https://evil.example.com/product-images/x.jpg",
		"https://abcd1234.supabase.co/storage/v1/object/public/product-images/../secrets.jpg",
		"https://abcd1234.supabase.co/storage/v1/object/public/product-images/x.exe",
	}
	for _, url := range badURLs {
		_, err = svc.ConfirmUpload(user, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: url})
		assert.ErrorIs(t, err, ErrInvalidFormat, url)
	}

	// The failed attempts must not burn the ticket.
	confirmed, err := svc.ConfirmUpload(user, &ConfirmUploadRequest{Token: ticket.Token, PublicURL: testPublicURL})
	require.NoError(t, err)
	assert.True(t, confirmed.Used)
}

func TestConfirmUploadUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db, 10*time.Minute)
	user := newTestUser(t, db, models.UserRoleUser)

	_, err := svc.ConfirmUpload(user, &ConfirmUploadRequest{Token: "no-such-token", PublicURL: testPublicURL})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupExpiredTickets(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, models.UserRoleUser)

	expiredSvc := newUploadService(t, db, -time.Minute)
	_, err := expiredSvc.IssueTicket(user)
	require.NoError(t, err)

	liveSvc := newUploadService(t, db, 10*time.Minute)
	live, err := liveSvc.IssueTicket(user)
	require.NoError(t, err)

	removed, err := liveSvc.CleanupExpiredTickets()
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var remaining []models.UploadTicket
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.Token, remaining[0].Token)
}
