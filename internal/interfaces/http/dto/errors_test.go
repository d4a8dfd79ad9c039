package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeDuplicateEmail, http.StatusBadRequest},
		{ErrCodeIDMismatch, http.StatusBadRequest},
		{ErrCodeCustomerNotFound, http.StatusBadRequest},
		{ErrCodeShopItemNotFound, http.StatusBadRequest},
		{ErrCodeCategoryNotFound, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeShopItemReferenced, http.StatusConflict},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeIdempotencyInFlight, http.StatusConflict},
		{ErrCodeIdempotencyMismatch, http.StatusUnprocessableEntity},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"CONFLICT", ErrCodeConflict},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"DUPLICATE_EMAIL", ErrCodeDuplicateEmail},
		{"ID_MISMATCH", ErrCodeIDMismatch},
		{"CUSTOMER_NOT_FOUND", ErrCodeCustomerNotFound},
		{"SHOP_ITEM_NOT_FOUND", ErrCodeShopItemNotFound},
		{"CATEGORY_NOT_FOUND", ErrCodeCategoryNotFound},
		{"SHOP_ITEM_REFERENCED", ErrCodeShopItemReferenced},
		{"INVALID_NAME", ErrCodeValidation},
		{"INVALID_EMAIL", ErrCodeValidation},
		{"INVALID_PRICE", ErrCodeValidation},
		{"INVALID_QUANTITY", ErrCodeValidation},
		{ErrCodeValidation, ErrCodeValidation},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryDomainCodeHasAStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no HTTP status", domainCode, apiCode)
	}
}

func TestErrorResponseJSON(t *testing.T) {
	t.Run("with request id", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeNotFound, "Customer 9 not found", "req-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"success": false,
			"error": {"code": "ERR_NOT_FOUND", "message": "Customer 9 not found", "request_id": "req-1"}
		}`, string(raw))
	})

	t.Run("validation details", func(t *testing.T) {
		resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
			{Field: "email", Message: "email must be a valid email address"},
		})
		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"success": false,
			"error": {
				"code": "ERR_VALIDATION",
				"message": "Request validation failed",
				"request_id": "req-2",
				"details": [{"field": "email", "message": "email must be a valid email address"}]
			}
		}`, string(raw))
	})

	t.Run("success omits error", func(t *testing.T) {
		raw, err := json.Marshal(NewSuccessResponse(map[string]int{"id": 1}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success": true, "data": {"id": 1}}`, string(raw))
	})
}
