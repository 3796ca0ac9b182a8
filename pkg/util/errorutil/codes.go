package errorutil

import "net/http"

// Error codes surfaced in the errorCode field of error responses.
const (
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeTokenInvalid           = "INVALID_TOKEN"
	CodeRefreshTokenInvalid    = "INVALID_REFRESH_TOKEN"
	CodeRefreshTokenExpired    = "EXPIRED_REFRESH_TOKEN"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeAccessDenied           = "ACCESS_DENIED"
	CodeProductVariantMismatch = "PRODUCT_VARIANT_MISMATCH"
	CodeForbidden              = "FORBIDDEN"
	CodeProductNotFound        = "PRODUCT_NOT_FOUND"
	CodeVariantNotFound        = "VARIANT_NOT_FOUND"
	CodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
	CodeNotChanged             = "NOT_CHANGED"
	CodeNoVariants             = "NO_VARIANTS"
	CodeInvalidProduct         = "INVALID_PRODUCT"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeLoginIDTaken           = "LOGIN_ID_TAKEN"
	CodeTooManyRequests        = "TOO_MANY_REQUESTS"
	CodeInternal               = "INTERNAL_ERROR"
)

func ErrUserNotFound() error {
	return NewDomainError(CodeUserNotFound, "user not found", http.StatusUnauthorized, nil)
}

func ErrInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid credentials", http.StatusUnauthorized, nil)
}

func ErrTokenInvalid() error {
	return NewDomainError(CodeTokenInvalid, "invalid token", http.StatusUnauthorized, nil)
}

func ErrRefreshTokenInvalid() error {
	return NewDomainError(CodeRefreshTokenInvalid, "invalid refresh token", http.StatusUnauthorized, nil)
}

func ErrRefreshTokenExpired() error {
	return NewDomainError(CodeRefreshTokenExpired, "refresh token expired", http.StatusUnauthorized, nil)
}

func ErrAccessDenied() error {
	return NewDomainError(CodeAccessDenied, "only the owning wholesaler may access this product", http.StatusForbidden, nil)
}

func ErrProductVariantMismatch() error {
	return NewDomainError(CodeProductVariantMismatch, "variant does not belong to product", http.StatusForbidden, nil)
}

func ErrProductNotFound() error {
	return NewDomainError(CodeProductNotFound, "product not found", http.StatusNotFound, nil)
}

func ErrVariantNotFound() error {
	return NewDomainError(CodeVariantNotFound, "variant not found", http.StatusNotFound, nil)
}

func ErrCategoryNotFound() error {
	return NewDomainError(CodeCategoryNotFound, "category not found", http.StatusNotFound, nil)
}

func ErrNotChanged(message string) error {
	return NewDomainError(CodeNotChanged, message, http.StatusBadRequest, nil)
}

func ErrNoVariants() error {
	return NewDomainError(CodeNoVariants, "no stock options to update", http.StatusBadRequest, nil)
}

func ErrInvalidProduct(message string) error {
	return NewDomainError(CodeInvalidProduct, message, http.StatusBadRequest, nil)
}

func ErrLoginIDTaken() error {
	return NewConflict(CodeLoginIDTaken, "login id already registered", nil)
}

func ErrTooManyRequests(retryAfter int) error {
	return NewDomainError(CodeTooManyRequests, "rate limit exceeded", http.StatusTooManyRequests,
		map[string]any{"retryAfter": retryAfter})
}
