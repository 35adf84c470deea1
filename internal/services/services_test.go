// internal/services/services_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trendtaster/trendtaster-backend/internal/config"
	"github.com/trendtaster/trendtaster-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled connection to :memory: would open a second, empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductUpdateSubmission{},
		&models.UploadTicket{},
		&models.AuditLog{},
	))

	return db
}

var testUserSeq int

func newTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", testUserSeq),
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Role:     role,
	}
	require.NoError(t, user.SetPassword("Sup3rSecret!"))
	require.NoError(t, db.Create(user).Error)

	return user
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

// approvedStore seeds a store that already passed moderation.
func approvedStore(t *testing.T, db *gorm.DB, submitter *models.User, name string) *models.Store {
	t.Helper()

	store := &models.Store{
		Name:          name,
		SubmittedByID: submitter.ID,
	}
	store.Status = models.ModerationStatusApproved
	require.NoError(t, db.Create(store).Error)

	return store
}
