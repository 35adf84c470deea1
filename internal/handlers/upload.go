// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trendtaster/trendtaster-backend/internal/i18n"
	"github.com/trendtaster/trendtaster-backend/internal/services"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

type UploadHandler struct {
	uploadService  *services.UploadService
	storageService *services.StorageService
	authService    *services.AuthService
}

func NewUploadHandler(uploadService *services.UploadService, storageService *services.StorageService, authService *services.AuthService) *UploadHandler {
	return &UploadHandler{
		uploadService:  uploadService,
		storageService: storageService,
		authService:    authService,
	}
}

// POST /upload/token
func (h *UploadHandler) IssueTicket(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	ticket, err := h.uploadService.IssueTicket(user)
	if err != nil {
		respondServiceError(c, err, "upload")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyUploadTicketIssued),
		"token":      ticket.Token,
		"file_path":  ticket.FilePath,
		"expires_at": ticket.ExpiresAt,
	})
}

// POST /upload/confirm
func (h *UploadHandler) ConfirmUpload(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req services.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	ticket, err := h.uploadService.ConfirmUpload(user, &req)
	if err != nil {
		respondServiceError(c, err, "upload")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyUploadConfirmed),
		"public_url": ticket.PublicURL,
		"file_path":  ticket.FilePath,
	})
}

// POST /upload/direct
// Multipart upload straight into first-party storage, for clients that do
// not use the out-of-band ticket flow.
func (h *UploadHandler) DirectUpload(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := currentUser(c, h.authService); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		respondServiceError(c, err, "upload")
		return
	}

	options := h.storageService.GetDefaultUploadOptions("product-images")
	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		respondServiceError(c, err, "upload")
		return
	}

	utils.CreatedResponse(c, result)
}
