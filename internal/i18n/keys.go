// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLoginSuccess       = "auth.login_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserPromoted       = "user.promoted"
	KeyUserDemoted        = "user.demoted"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductDeleted      = "product.deleted"
	KeyProductNotFound     = "product.not_found"
	KeyProductApproved     = "product.approved"
	KeyProductRejected     = "product.rejected"
	KeyProductStoreInvalid = "product.store_invalid"

	// Stores
	KeyStoreCreated   = "store.created"
	KeyStoreUpdated   = "store.updated"
	KeyStoreDeleted   = "store.deleted"
	KeyStoreNotFound  = "store.not_found"
	KeyStoreApproved  = "store.approved"
	KeyStoreRejected  = "store.rejected"
	KeyStoreNameTaken = "store.name_taken"

	// Update submissions
	KeyUpdateSubmitted = "update_submission.submitted"
	KeyUpdateApproved  = "update_submission.approved"
	KeyUpdateRejected  = "update_submission.rejected"
	KeyUpdateNotFound  = "update_submission.not_found"
	KeyUpdateDecided   = "update_submission.already_decided"

	// Uploads
	KeyUploadTicketIssued   = "upload.ticket_issued"
	KeyUploadConfirmed      = "upload.confirmed"
	KeyUploadTicketNotFound = "upload.ticket_not_found"
	KeyUploadNotFound       = "upload.not_found"
	KeyUploadTicketExpired  = "upload.ticket_expired"
	KeyUploadTicketUsed     = "upload.ticket_used"
	KeyUploadInvalidURL     = "upload.invalid_url"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// General errors
	KeyErrorInternal  = "error.internal"
	KeyErrorRateLimit = "error.rate_limit"
)
