// internal/services/store_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendtaster/trendtaster-backend/internal/models"
)

func TestCreateStoreStartsPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "GS25"})
	require.NoError(t, err)

	assert.Equal(t, models.ModerationStatusPending, store.Status)
	assert.Equal(t, user.ID, store.SubmittedByID)
}

func TestCreateStoreDuplicateNameAnyStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "CU"})
	require.NoError(t, err)

	_, err = svc.CreateStore(user, &CreateStoreRequest{Name: "CU"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// A rejected store still holds its name.
	_, err = svc.RejectStore(store.ID, admin, "not a real store")
	require.NoError(t, err)

	_, err = svc.CreateStore(user, &CreateStoreRequest{Name: "CU"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateStoreNameBlockedAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "GS25"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteStore(store.ID, user))

	// The soft-deleted row still holds the name in the unique index, so the
	// resubmission must come back as a duplicate, not a constraint error.
	_, err = svc.CreateStore(user, &CreateStoreRequest{Name: "GS25"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateStoreOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "7-Eleven"})
	require.NoError(t, err)

	updated, err := svc.UpdateStore(store.ID, user, &UpdateStoreRequest{Description: "convenience chain"})
	require.NoError(t, err)
	assert.Equal(t, "convenience chain", updated.Description)

	_, err = svc.ApproveStore(store.ID, admin)
	require.NoError(t, err)

	_, err = svc.UpdateStore(store.ID, user, &UpdateStoreRequest{Description: "frozen"})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateStoreRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	owner := newTestUser(t, db, models.UserRoleUser)
	other := newTestUser(t, db, models.UserRoleUser)

	store, err := svc.CreateStore(owner, &CreateStoreRequest{Name: "Emart24"})
	require.NoError(t, err)

	_, err = svc.UpdateStore(store.ID, other, &UpdateStoreRequest{Description: "hijack"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteStoreAnyStatusWithOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	owner := newTestUser(t, db, models.UserRoleUser)
	other := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	store, err := svc.CreateStore(owner, &CreateStoreRequest{Name: "Homeplus"})
	require.NoError(t, err)
	_, err = svc.ApproveStore(store.ID, admin)
	require.NoError(t, err)

	err = svc.DeleteStore(store.ID, other)
	assert.ErrorIs(t, err, ErrForbidden)

	// Approved stores are still deletable by their submitter.
	require.NoError(t, svc.DeleteStore(store.ID, owner))

	_, err = svc.GetStore(store.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDoubleDecisionFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "Lotte Mart"})
	require.NoError(t, err)

	approved, err := svc.ApproveStore(store.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedByID)
	assert.Equal(t, admin.ID, *approved.ReviewedByID)

	_, err = svc.ApproveStore(store.ID, admin)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.RejectStore(store.ID, admin, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStoreModerationRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "Daiso"})
	require.NoError(t, err)

	_, err = svc.ApproveStore(store.ID, user)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.RejectStore(store.ID, user, "nope")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRejectStoreRecordsReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	store, err := svc.CreateStore(user, &CreateStoreRequest{Name: "NoName"})
	require.NoError(t, err)

	rejected, err := svc.RejectStore(store.ID, admin, "duplicate of an existing chain")
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusRejected, rejected.Status)
	assert.Equal(t, "duplicate of an existing chain", rejected.RejectionReason)
}

func TestListApprovedStoresOrderedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)

	approvedStore(t, db, user, "CU")
	approvedStore(t, db, user, "7-Eleven")
	_, err := svc.CreateStore(user, &CreateStoreRequest{Name: "Pending Mart"})
	require.NoError(t, err)

	stores, err := svc.ListApprovedStores()
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "7-Eleven", stores[0].Name)
	assert.Equal(t, "CU", stores[1].Name)
}

func TestIsStoreApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := newTestUser(t, db, models.UserRoleUser)

	approvedStore(t, db, user, "GS25")
	_, err := svc.CreateStore(user, &CreateStoreRequest{Name: "Unreviewed"})
	require.NoError(t, err)

	ok, err := svc.IsStoreApproved("GS25")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsStoreApproved("Unreviewed")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsStoreApproved("Nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}
