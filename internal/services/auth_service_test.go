// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	resp, err := svc.Register(&RegisterRequest{
		Username: "tester_one",
		Email:    "tester1@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	login, err := svc.Login(&LoginRequest{
		Email:    "tester1@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := utils.ValidateJWT(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "tester_one", claims.Username)
}

func TestRegisterDuplicateEmailAndUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "original",
		Email:    "original@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "different",
		Email:    "original@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Register(&RegisterRequest{
		Username: "original",
		Email:    "different@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegisterBlockedBySoftDeletedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "departed",
		Email:    "departed@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.User{}, resp.User.ID).Error)

	// The deleted account still holds its email and username.
	_, err = svc.Register(&RegisterRequest{
		Username: "departed",
		Email:    "someone-else@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Register(&RegisterRequest{
		Username: "someone_else",
		Email:    "departed@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "tester_two",
		Email:    "tester2@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "tester2@example.com", Password: "WrongPass1!"})
	require.Error(t, err)
	// Same message for a wrong password and an unknown email.
	wrongPassMsg := err.Error()

	_, err = svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "WrongPass1!"})
	require.Error(t, err)
	assert.Equal(t, wrongPassMsg, err.Error())
}

func TestRefreshToken(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	resp, err := svc.Register(&RegisterRequest{
		Username: "tester_three",
		Email:    "tester3@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestUpdateProfileUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	alice := newTestUser(t, db, models.UserRoleUser)
	bob := newTestUser(t, db, models.UserRoleUser)

	updated, err := svc.UpdateProfile(alice.ID, &UpdateProfileRequest{Username: "alice_renamed"})
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", updated.Username)

	_, err = svc.UpdateProfile(bob.ID, &UpdateProfileRequest{Username: "alice_renamed"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// An empty request leaves the username alone.
	unchanged, err := svc.UpdateProfile(bob.ID, &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, bob.Username, unchanged.Username)
}
