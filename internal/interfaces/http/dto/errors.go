package dto

import (
	"net/http"
	"strings"
)

// Error code constants, formatted as ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation covers binding failures and domain field rules
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeDuplicateEmail is returned when a customer email is already taken
	ErrCodeDuplicateEmail = "ERR_DUPLICATE_EMAIL"
	// ErrCodeIDMismatch is returned when a body id differs from the path id
	ErrCodeIDMismatch = "ERR_ID_MISMATCH"
)

// Reference error codes, raised when a request names a related record that does not exist
const (
	ErrCodeCustomerNotFound = "ERR_CUSTOMER_NOT_FOUND"
	ErrCodeShopItemNotFound = "ERR_SHOP_ITEM_NOT_FOUND"
	ErrCodeCategoryNotFound = "ERR_CATEGORY_NOT_FOUND"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeForbidden           = "ERR_FORBIDDEN"
	// ErrCodeShopItemReferenced is returned when deleting a shop item that orders still use
	ErrCodeShopItemReferenced = "ERR_SHOP_ITEM_REFERENCED"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting and transport error codes
const (
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
	ErrCodeTimeout            = "ERR_TIMEOUT"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	// ErrCodeIdempotencyInFlight is returned while the first request for a key is still running
	ErrCodeIdempotencyInFlight = "ERR_IDEMPOTENCY_IN_FLIGHT"
	// ErrCodeIdempotencyMismatch is returned when a key is reused with a different request
	ErrCodeIdempotencyMismatch = "ERR_IDEMPOTENCY_KEY_REUSED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeDuplicateEmail: http.StatusBadRequest,
	ErrCodeIDMismatch:     http.StatusBadRequest,

	ErrCodeCustomerNotFound: http.StatusBadRequest,
	ErrCodeShopItemNotFound: http.StatusBadRequest,
	ErrCodeCategoryNotFound: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeShopItemReferenced:  http.StatusConflict,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeTimeout:             http.StatusGatewayTimeout,
	ErrCodeServiceUnavailable:  http.StatusServiceUnavailable,
	ErrCodeIdempotencyInFlight: http.StatusConflict,
	ErrCodeIdempotencyMismatch: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONFLICT":             ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
	"DUPLICATE_EMAIL":      ErrCodeDuplicateEmail,
	"ID_MISMATCH":          ErrCodeIDMismatch,
	"CUSTOMER_NOT_FOUND":   ErrCodeCustomerNotFound,
	"SHOP_ITEM_NOT_FOUND":  ErrCodeShopItemNotFound,
	"CATEGORY_NOT_FOUND":   ErrCodeCategoryNotFound,
	"SHOP_ITEM_REFERENCED": ErrCodeShopItemReferenced,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Field rule codes (INVALID_NAME, INVALID_PRICE, ...) collapse into ERR_VALIDATION.
// Codes already in the API format, or unknown ones, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return code
}
