// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

func defaultPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

func TestCreateProductRequiresApprovedStore(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)

	_, err := storeSvc.CreateStore(user, &CreateStoreRequest{Name: "Pending Mart"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(user, &CreateProductRequest{
		Name:     "mystery snack",
		Store:    "Pending Mart",
		Price:    1500,
		Category: "snack",
	})
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = svc.CreateProduct(user, &CreateProductRequest{
		Name:     "mystery snack",
		Store:    "No Such Store",
		Price:    1500,
		Category: "snack",
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreateProductBadReleaseDate(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, user, "GS25")

	_, err := svc.CreateProduct(user, &CreateProductRequest{
		Name:        "new ramen",
		Store:       "GS25",
		Price:       1800,
		Category:    "ramen",
		ReleaseDate: "08/20/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSubmissionModerationScenario(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	userA := newTestUser(t, db, models.UserRoleUser)
	userB := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)

	// User A registers the store, admin approves it.
	store, err := storeSvc.CreateStore(userA, &CreateStoreRequest{Name: "GS25"})
	require.NoError(t, err)
	_, err = storeSvc.ApproveStore(store.ID, admin)
	require.NoError(t, err)

	// Now the product submission goes through.
	product, err := svc.CreateProduct(userA, &CreateProductRequest{
		Name:     "new ramen",
		Store:    "GS25",
		Price:    1800,
		Category: "ramen",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusPending, product.Status)
	assert.EqualValues(t, 0, product.ViewsCount)

	// Reading the detail counts a view.
	read, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, read.ViewsCount)

	// A non-owner cannot delete it.
	err = svc.DeleteProduct(product.ID, userB)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin approves.
	approved, err := svc.ApproveProduct(product.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusApproved, approved.Status)
}

func TestGetProductIncrementsViewsEachRead(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, user, "CU")

	product, err := svc.CreateProduct(user, &CreateProductRequest{
		Name:     "triangle kimbap",
		Store:    "CU",
		Price:    1200,
		Category: "kimbap",
	})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		read, err := svc.GetProduct(product.ID)
		require.NoError(t, err)
		assert.EqualValues(t, i, read.ViewsCount)
	}
}

func TestProductIsNewDerivedFromReleaseDate(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, user, "CU")

	recent := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	fresh, err := svc.CreateProduct(user, &CreateProductRequest{
		Name: "fresh", Store: "CU", Price: 1000, Category: "snack", ReleaseDate: recent,
	})
	require.NoError(t, err)
	assert.True(t, fresh.New)

	stale, err := svc.CreateProduct(user, &CreateProductRequest{
		Name: "stale", Store: "CU", Price: 1000, Category: "snack", ReleaseDate: old,
	})
	require.NoError(t, err)
	assert.False(t, stale.New)

	undated, err := svc.CreateProduct(user, &CreateProductRequest{
		Name: "undated", Store: "CU", Price: 1000, Category: "snack",
	})
	require.NoError(t, err)
	assert.False(t, undated.New)

	// A future release date is an announcement, not a new arrival.
	upcoming := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	announced, err := svc.CreateProduct(user, &CreateProductRequest{
		Name: "announced", Store: "CU", Price: 1000, Category: "snack", ReleaseDate: upcoming,
	})
	require.NoError(t, err)
	assert.False(t, announced.New)
}

func TestCreateProductStoresOrderedImages(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, user, "CU")

	product, err := svc.CreateProduct(user, &CreateProductRequest{
		Name:     "bento",
		Store:    "CU",
		Price:    4500,
		Category: "lunchbox",
		ImageURLs: []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
			"https://cdn.example.com/c.jpg",
		},
	})
	require.NoError(t, err)

	require.Len(t, product.Images, 3)
	for i, img := range product.Images {
		assert.Equal(t, i, img.DisplayOrder)
	}
}

func TestDeleteProductRemovesImages(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, user, "CU")

	product, err := svc.CreateProduct(user, &CreateProductRequest{
		Name:      "bento",
		Store:     "CU",
		Price:     4500,
		Category:  "lunchbox",
		ImageURLs: []string{"https://cdn.example.com/a.jpg"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID, user))

	var imageCount int64
	require.NoError(t, db.Model(&models.ProductImage{}).
		Where("product_id = ?", product.ID).Count(&imageCount).Error)
	assert.EqualValues(t, 0, imageCount)
}

func TestProductDoubleDecisionFails(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, user, "CU")

	product, err := svc.CreateProduct(user, &CreateProductRequest{
		Name: "soda", Store: "CU", Price: 900, Category: "drink",
	})
	require.NoError(t, err)

	_, err = svc.RejectProduct(product.ID, admin, "blurry photos")
	require.NoError(t, err)

	_, err = svc.ApproveProduct(product.ID, admin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestListProductsFiltersApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, user, "GS25")
	approvedStore(t, db, user, "CU")

	mk := func(name, store, category string, price int) *models.Product {
		p, err := svc.CreateProduct(user, &CreateProductRequest{
			Name: name, Store: store, Price: price, Category: category,
		})
		require.NoError(t, err)
		return p
	}

	ramen := mk("spicy ramen", "GS25", "ramen", 1800)
	soda := mk("cola", "CU", "drink", 1200)
	mk("hidden snack", "CU", "snack", 800) // stays pending

	_, err := svc.ApproveProduct(ramen.ID, admin)
	require.NoError(t, err)
	_, err = svc.ApproveProduct(soda.ID, admin)
	require.NoError(t, err)

	params := ProductSearchParams{PaginationParams: defaultPage()}
	products, total, err := svc.ListProducts(params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, products, 2)

	params.Stores = []string{"GS25"}
	products, total, err = svc.ListProducts(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "spicy ramen", products[0].Name)

	minPrice := 1500
	params = ProductSearchParams{PaginationParams: defaultPage(), MinPrice: &minPrice}
	_, total, err = svc.ListProducts(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestGetFilterOptions(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	user := newTestUser(t, db, models.UserRoleUser)
	admin := newTestUser(t, db, models.UserRoleAdmin)
	approvedStore(t, db, user, "GS25")

	product, err := svc.CreateProduct(user, &CreateProductRequest{
		Name: "spicy ramen", Store: "GS25", Price: 1800, Category: "ramen",
	})
	require.NoError(t, err)
	_, err = svc.ApproveProduct(product.ID, admin)
	require.NoError(t, err)

	options, err := svc.GetFilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GS25"}, options.Stores)
	assert.Equal(t, []string{"ramen"}, options.Categories)
}

func TestUpdateProductOwnershipAndStoreCheck(t *testing.T) {
	db := newTestDB(t)
	storeSvc := NewStoreService(db)
	svc := NewProductService(db, storeSvc)
	owner := newTestUser(t, db, models.UserRoleUser)
	other := newTestUser(t, db, models.UserRoleUser)
	approvedStore(t, db, owner, "CU")

	product, err := svc.CreateProduct(owner, &CreateProductRequest{
		Name: "cola", Store: "CU", Price: 1200, Category: "drink",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(product.ID, other, &UpdateProductRequest{Name: "stolen"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateProduct(product.ID, owner, &UpdateProductRequest{Store: "Unknown Mart"})
	assert.ErrorIs(t, err, ErrInvalidReference)

	newPrice := 1500
	updated, err := svc.UpdateProduct(product.ID, owner, &UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 1500, updated.Price)
	assert.Equal(t, "cola", updated.Name)
}
