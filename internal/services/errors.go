// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers translate these into HTTP
// status codes with errors.Is, so wrapped variants stay matchable.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("operation not allowed")
	ErrInvalidState     = errors.New("invalid state for operation")
	ErrDuplicate        = errors.New("resource already exists")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidReference = errors.New("referenced resource invalid")

	ErrTicketExpired = fmt.Errorf("upload ticket expired: %w", ErrInvalidState)
	ErrTicketUsed    = fmt.Errorf("upload ticket already used: %w", ErrInvalidState)
)
