package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeAsset            = "ASSET_ERROR"
	ErrCodeBackend          = "BACKEND_ERROR"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInvalidCreds     = "INVALID_CREDENTIALS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ErrorKind groups domain errors by the layer that raised them.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	// KindValidation is raised before any external call.
	KindValidation
	// KindAsset comes from the image asset pipeline or object storage.
	KindAsset
	// KindBackend comes from the record store.
	KindBackend
	// KindAuth covers bad credentials and absent sessions.
	KindAuth
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAsset:
		return "asset"
	case KindBackend:
		return "backend"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	Kind    ErrorKind
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so sentinels survive wrapping with a cause.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a field constraint violation.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message, Kind: KindValidation}
}

// NewAssetError wraps an image pipeline or object storage failure.
func NewAssetError(message string, err error) *DomainError {
	return &DomainError{Code: ErrCodeAsset, Message: message, Kind: KindAsset, Err: err}
}

// NewBackendError wraps a record store failure.
func NewBackendError(message string, err error) *DomainError {
	return &DomainError{Code: ErrCodeBackend, Message: message, Kind: KindBackend, Err: err}
}

// KindOf returns the kind of the first DomainError in err's chain.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Common domain errors
var (
	ErrProductNotFound    = &DomainError{Code: ErrCodeProductNotFound, Message: "Product not found", Kind: KindNotFound}
	ErrUnauthorised       = &DomainError{Code: ErrCodeUnauthorised, Message: "Session is missing or expired", Kind: KindAuth}
	ErrInvalidCredentials = &DomainError{Code: ErrCodeInvalidCreds, Message: "Invalid email or password", Kind: KindAuth}
	ErrImageRequired      = NewValidationError("Product image is required")
)
