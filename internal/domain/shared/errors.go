package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped copies
// created with Newf still match the sentinels below.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
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

// Newf creates a domain error with a formatted message
func Newf(code, format string, args ...any) *DomainError {
	return NewDomainError(code, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConflict            = NewDomainError("CONFLICT", "Resource is in conflict with existing data")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// Rule violation codes
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeIDMismatch         = "ID_MISMATCH"
	CodeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	CodeShopItemNotFound   = "SHOP_ITEM_NOT_FOUND"
	CodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	CodeShopItemReferenced = "SHOP_ITEM_REFERENCED"
)

// IsNotFound reports whether err is (or wraps) ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
