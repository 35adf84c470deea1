// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trendtaster/trendtaster-backend/internal/i18n"
	"github.com/trendtaster/trendtaster-backend/internal/services"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	updateService  *services.UpdateService
	authService    *services.AuthService
}

func NewProductHandler(productService *services.ProductService, updateService *services.UpdateService, authService *services.AuthService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		updateService:  updateService,
		authService:    authService,
	}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Stores:           c.QueryArray("store"),
		Categories:       c.QueryArray("category"),
	}

	if v := c.Query("min_price"); v != "" {
		if minPrice, err := strconv.Atoi(v); err == nil {
			params.MinPrice = &minPrice
		}
	}
	if v := c.Query("max_price"); v != "" {
		if maxPrice, err := strconv.Atoi(v); err == nil {
			params.MaxPrice = &maxPrice
		}
	}

	products, total, err := h.productService.ListProducts(params)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params.PaginationParams))
}

// GET /products/filters
func (h *ProductHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.productService.GetFilterOptions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, options)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.CreateProduct(user, &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(id, user, &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id, user); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// GET /products/mine
func (h *ProductHandler) MyProducts(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	products, err := h.productService.ListUserProducts(user.ID)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, products)
}

// POST /products/:id/updates
func (h *ProductHandler) ProposeUpdate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ProposeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	submission, err := h.updateService.ProposeUpdate(id, user, &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyUpdateSubmitted),
		"submission": submission,
	})
}

// GET /products/updates/mine
func (h *ProductHandler) MyUpdateSubmissions(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	submissions, err := h.updateService.ListUserUpdates(user.ID)
	if err != nil {
		respondServiceError(c, err, "update_submission")
		return
	}

	utils.SuccessResponse(c, submissions)
}
