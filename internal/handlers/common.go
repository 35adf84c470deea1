// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trendtaster/trendtaster-backend/internal/models"
	"github.com/trendtaster/trendtaster-backend/internal/services"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

// currentUser resolves the authenticated user model from the gin context.
// Services take the full user, not just the id, because the role decides
// what the actor may do.
func currentUser(c *gin.Context, authService *services.AuthService) (*models.User, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	user, err := authService.GetUserByID(userID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	return user, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError translates a service error into the matching HTTP
// response. resource feeds the localized not-found message key.
func respondServiceError(c *gin.Context, err error, resource string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrDuplicate):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidFormat):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidReference):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}
