// internal/handlers/store.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trendtaster/trendtaster-backend/internal/i18n"
	"github.com/trendtaster/trendtaster-backend/internal/services"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
	authService  *services.AuthService
}

func NewStoreHandler(storeService *services.StoreService, authService *services.AuthService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		authService:  authService,
	}
}

// GET /stores
func (h *StoreHandler) ListStores(c *gin.Context) {
	stores, err := h.storeService.ListApprovedStores()
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, stores)
}

// GET /stores/:id
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.GetStore(id)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, store)
}

// POST /stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	store, err := h.storeService.CreateStore(user, &req)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyStoreCreated),
		"store":   store,
	})
}

// PATCH /stores/:id
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	store, err := h.storeService.UpdateStore(id, user, &req)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyStoreUpdated),
		"store":   store,
	})
}

// DELETE /stores/:id
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.DeleteStore(id, user); err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyStoreDeleted),
	})
}

// GET /stores/mine
func (h *StoreHandler) MyStores(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	stores, err := h.storeService.ListUserStores(user.ID)
	if err != nil {
		respondServiceError(c, err, "store")
		return
	}

	utils.SuccessResponse(c, stores)
}
