// internal/services/product_service.go
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
	releaseDateLayout = "2006-01-02"

	filterOptionsCacheKey = "products:filter-options"
	filterOptionsCacheTTL = 5 * time.Minute
)

type ProductService struct {
	db           *gorm.DB
	storeService *StoreService
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Store       string   `json:"store" validate:"required,min=1,max=100"`
	Price       int      `json:"price" validate:"required,min=0"`
	Category    string   `json:"category" validate:"required,min=1,max=50"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Description string   `json:"description,omitempty" validate:"max=1000"`
	Ingredients string   `json:"ingredients,omitempty" validate:"max=1000"`
	Barcode     string   `json:"barcode,omitempty" validate:"max=50"`
	Location    string   `json:"location,omitempty" validate:"max=200"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"max=10,dive,url"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Store       string   `json:"store,omitempty" validate:"omitempty,min=1,max=100"`
	Price       *int     `json:"price,omitempty" validate:"omitempty,min=0"`
	Category    string   `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Description string   `json:"description,omitempty" validate:"max=1000"`
	Ingredients string   `json:"ingredients,omitempty" validate:"max=1000"`
	Barcode     string   `json:"barcode,omitempty" validate:"max=50"`
	Location    string   `json:"location,omitempty" validate:"max=200"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Stores     []string `json:"stores,omitempty"`
	Categories []string `json:"categories,omitempty"`
	MinPrice   *int     `json:"min_price,omitempty"`
	MaxPrice   *int     `json:"max_price,omitempty"`
}

// FilterOptions is the distinct store/category vocabulary of the approved
// catalog, used to populate browse filters.
type FilterOptions struct {
	Stores     []string `json:"stores"`
	Categories []string `json:"categories"`
}

func NewProductService(db *gorm.DB, storeService *StoreService) *ProductService {
	return &ProductService{
		db:           db,
		storeService: storeService,
	}
}

// CreateProduct registers a new product submission in pending state. The
// store name must belong to a currently approved store; the check is by name,
// there is no foreign key between products and stores.
func (s *ProductService) CreateProduct(submitter *models.User, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	approved, err := s.storeService.IsStoreApproved(req.Store)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, fmt.Errorf("store %q is not approved: %w", req.Store, ErrInvalidReference)
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          req.Name,
		Store:         req.Store,
		Price:         req.Price,
		Category:      req.Category,
		ReleaseDate:   releaseDate,
		Description:   req.Description,
		Ingredients:   req.Ingredients,
		Barcode:       req.Barcode,
		Location:      req.Location,
		SubmittedByID: submitter.ID,
	}
	product.Status = models.ModerationStatusPending

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		for i, url := range req.ImageURLs {
			image := &models.ProductImage{
				ProductID:    product.ID,
				ImageURL:     url,
				DisplayOrder: i,
			}
			if err := tx.Create(image).Error; err != nil {
				return fmt.Errorf("failed to create product image: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadProduct(product.ID)
}

// GetProduct returns a product detail and counts the view. Every detail read
// increments views_count atomically in the database.
func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	product, err := s.loadProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("failed to count view: %w", err)
	}
	product.ViewsCount++

	return product, nil
}

// ListProducts searches the approved catalog with optional store, category
// and price filters. Newest submissions come first unless the caller sorts.
func (s *ProductService) ListProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("status = ?", models.ModerationStatusApproved)

	if len(params.Stores) > 0 {
		query = query.Where("store IN ?", params.Stores)
	}
	if len(params.Categories) > 0 {
		query = query.Where("category IN ?", params.Categories)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "price", "views_count", "release_date", "name"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// GetFilterOptions returns the distinct approved store names and categories,
// served through the cache when Redis is up.
func (s *ProductService) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	var options FilterOptions
	err := cache.CacheAside(ctx, filterOptionsCacheKey, &options, filterOptionsCacheTTL, func() error {
		if err := s.db.Model(&models.Product{}).
			Where("status = ?", models.ModerationStatusApproved).
			Distinct("store").Order("store ASC").
			Pluck("store", &options.Stores).Error; err != nil {
			return fmt.Errorf("failed to fetch store options: %w", err)
		}
		if err := s.db.Model(&models.Product{}).
			Where("status = ?", models.ModerationStatusApproved).
			Distinct("category").Order("category ASC").
			Pluck("category", &options.Categories).Error; err != nil {
			return fmt.Errorf("failed to fetch category options: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &options, nil
}

// UpdateProduct lets the submitter or a privileged user edit a product
// directly. A changed store name must again point at an approved store.
func (s *ProductService) UpdateProduct(id uuid.UUID, actor *models.User, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !CanMutate(actor, product.SubmittedByID) {
		return nil, fmt.Errorf("not the submitter of product %s: %w", id, ErrForbidden)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Store != "" {
		approved, err := s.storeService.IsStoreApproved(req.Store)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, fmt.Errorf("store %q is not approved: %w", req.Store, ErrInvalidReference)
		}
		updates["store"] = req.Store
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.ReleaseDate != "" {
		releaseDate, err := parseReleaseDate(req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		updates["release_date"] = releaseDate
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Ingredients != "" {
		updates["ingredients"] = req.Ingredients
	}
	if req.Barcode != "" {
		updates["barcode"] = req.Barcode
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.loadProduct(id)
}

// DeleteProduct removes a product and its owned images. Only the submitter or
// a privileged user may delete, in any status.
func (s *ProductService) DeleteProduct(id uuid.UUID, actor *models.User) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !CanMutate(actor, product.SubmittedByID) {
		return fmt.Errorf("not the submitter of product %s: %w", id, ErrForbidden)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// ApproveProduct flips a pending product to approved. The precondition runs
// in the UPDATE so concurrent decisions cannot both win.
func (s *ProductService) ApproveProduct(id uuid.UUID, reviewer *models.User) (*models.Product, error) {
	if !CanModerate(reviewer) {
		return nil, fmt.Errorf("moderation requires admin: %w", ErrForbidden)
	}

	result := s.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", id, models.ModerationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ModerationStatusApproved,
			"reviewed_by_id":   reviewer.ID,
			"rejection_reason": "",
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to approve product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.decisionConflict(id)
	}

	s.invalidateFilterCache()

	return s.loadProduct(id)
}

func (s *ProductService) RejectProduct(id uuid.UUID, reviewer *models.User, reason string) (*models.Product, error) {
	if !CanModerate(reviewer) {
		return nil, fmt.Errorf("moderation requires admin: %w", ErrForbidden)
	}

	result := s.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", id, models.ModerationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ModerationStatusRejected,
			"reviewed_by_id":   reviewer.ID,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reject product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.decisionConflict(id)
	}

	return s.loadProduct(id)
}

func (s *ProductService) ListPendingProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("status = ?", models.ModerationStatusPending).
		Preload("SubmittedBy").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") })

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending products: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) ListUserProducts(userID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("submitted_by_id = ?", userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user products: %w", err)
	}
	return products, nil
}

// Helper methods

func (s *ProductService) loadProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.
		Preload("SubmittedBy").
		Preload("ReviewedBy").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) decisionConflict(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}
	return fmt.Errorf("product %s already %s: %w", id, product.Status, ErrInvalidState)
}

func (s *ProductService) invalidateFilterCache() {
	cache.Invalidate(context.Background(), filterOptionsCacheKey)
}

// parseReleaseDate parses the wire format for release dates. An empty string
// means no release date.
func parseReleaseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("release date %q not in YYYY-MM-DD: %w", value, ErrInvalidFormat)
	}
	return &t, nil
}
