// internal/services/update_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

func seedProduct(t *testing.T, db *gorm.DB, svc *ProductService, owner *models.User) *models.Product {
	t.Helper()

	product, err := svc.CreateProduct(owner, &CreateProductRequest{
		Name:        "shin ramen",
		Store:       "GS25",
		Price:       1500,
		Category:    "ramen",
		Description: "spicy",
	})
	require.NoError(t, err)
	return product
}

func TestProposeUpdateStartsPending(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	newPrice := 1800
	submission, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, models.ModerationStatusPending, submission.Status)
	assert.Equal(t, owner.ID, submission.SubmittedByID)
	require.NotNil(t, submission.Price)
	assert.Equal(t, 1800, *submission.Price)
	assert.Nil(t, submission.Name)
}

func TestProposeUpdateRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	stranger := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	newPrice := 9999
	_, err := svc.ProposeUpdate(product.ID, stranger, &ProposeUpdateRequest{Price: &newPrice})
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may propose against any product.
	submission, err := svc.ProposeUpdate(product.ID, admin, &ProposeUpdateRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, submission.SubmittedByID)
}

func TestProposeUpdateRejectsEmptyDiff(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	_, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestProposeUpdateStoreMustBeApproved(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	unknown := "Ghost Mart"
	_, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Store: &unknown})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestApproveUpdateMergesOnlyProposedFields(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	newPrice := 2000
	submission, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	approved, err := svc.ApproveUpdate(submission.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusApproved, approved.Status)

	var merged models.Product
	require.NoError(t, db.First(&merged, product.ID).Error)
	assert.Equal(t, 2000, merged.Price)
	// Fields the submission did not touch survive the merge.
	assert.Equal(t, "shin ramen", merged.Name)
	assert.Equal(t, "spicy", merged.Description)
	assert.Equal(t, "GS25", merged.Store)
}

func TestApproveUpdateTwiceFails(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	newPrice := 2000
	submission, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	_, err = svc.ApproveUpdate(submission.ID, admin)
	require.NoError(t, err)

	_, err = svc.ApproveUpdate(submission.ID, admin)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.RejectUpdate(submission.ID, admin, "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectUpdateLeavesProductUntouched(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	newName := "renamed ramen"
	submission, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Name: &newName})
	require.NoError(t, err)

	rejected, err := svc.RejectUpdate(submission.ID, admin, "no evidence of rename")
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusRejected, rejected.Status)
	assert.Equal(t, "no evidence of rename", rejected.RejectionReason)

	var untouched models.Product
	require.NoError(t, db.First(&untouched, product.ID).Error)
	assert.Equal(t, "shin ramen", untouched.Name)
}

func TestUpdateModerationRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	newPrice := 2000
	submission, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	_, err = svc.ApproveUpdate(submission.ID, owner)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListPendingUpdates(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	productSvc := NewProductService(db, storeSvc)
	svc := NewUpdateService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, owner, "GS25")
	product := seedProduct(t, db, productSvc, owner)

	priceA, priceB := 1600, 1700
	first, err := svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Price: &priceA})
	require.NoError(t, err)
	_, err = svc.ProposeUpdate(product.ID, owner, &ProposeUpdateRequest{Price: &priceB})
	require.NoError(t, err)

	_, err = svc.RejectUpdate(first.ID, admin, "stale price")
	require.NoError(t, err)

	pending, total, err := svc.ListPendingUpdates(utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, product.ID, pending[0].ProductID)
	assert.Equal(t, "shin ramen", pending[0].Product.Name)
}
