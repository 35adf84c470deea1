// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trendtaster/trendtaster-backend/internal/i18n"
	"github.com/trendtaster/trendtaster-backend/internal/services"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	productService *services.ProductService
	storeService   *services.StoreService
	updateService  *services.UpdateService
	authService    *services.AuthService
}

func NewAdminHandler(
	adminService *services.AdminService,
	productService *services.ProductService,
	storeService *services.StoreService,
	updateService *services.UpdateService,
	authService *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		productService: productService,
		storeService:   storeService,
		updateService:  updateService,
		authService:    authService,
	}
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "admin")
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/submissions
func (h *AdminHandler) PendingProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListPendingProducts(params)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// POST /admin/submissions/:id/approve
func (h *AdminHandler) ApproveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewer, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.ApproveProduct(id, reviewer)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductApproved),
		"product": product,
	})
}

// POST /admin/submissions/:id/reject
func (h *AdminHandler) RejectProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewer, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.RejectProduct(id, reviewer, req.Reason)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductRejected),
		"product": product,
	})
}

// GET /admin/stores/submissions
func (h *AdminHandler) PendingStores(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	stores, total, err := h.storeService.ListPendingStores(params)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(stores, total, params))
}

// POST /admin/stores/:id/approve
func (h *AdminHandler) ApproveStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewer, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.ApproveStore(id, reviewer)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyStoreApproved),
		"store":   store,
	})
}

// POST /admin/stores/:id/reject
func (h *AdminHandler) RejectStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewer, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	store, err := h.storeService.RejectStore(id, reviewer, req.Reason)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyStoreRejected),
		"store":   store,
	})
}

// GET /admin/product-updates
func (h *AdminHandler) PendingUpdates(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	submissions, total, err := h.updateService.ListPendingUpdates(params)
	if err != nil {
		respondServiceError(c, err, "update_submission")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(submissions, total, params))
}

// POST /admin/product-updates/:id/approve
func (h *AdminHandler) ApproveUpdate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewer, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.updateService.ApproveUpdate(id, reviewer)
	if err != nil {
		respondServiceError(c, err, "update_submission")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyUpdateApproved),
		"submission": submission,
	})
}

// POST /admin/product-updates/:id/reject
func (h *AdminHandler) RejectUpdate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewer, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	submission, err := h.updateService.RejectUpdate(id, reviewer, req.Reason)
	if err != nil {
		respondServiceError(c, err, "update_submission")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyUpdateRejected),
		"submission": submission,
	})
}

// GET /admin/users/search
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.SearchUsers(params.Search, params)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// POST /admin/users/:id/promote
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.PromoteUser(id, actor)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserPromoted),
		"user":    user,
	})
}

// POST /admin/users/:id/demote
func (h *AdminHandler) DemoteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.DemoteUser(id, actor)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDemoted),
		"user":    user,
	})
}
