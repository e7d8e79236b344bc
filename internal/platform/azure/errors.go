package azure

import (
	"context"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ARM error codes that need special handling.
const (
	codeRoleAssignmentExists       = "RoleAssignmentExists"
	codePrincipalNotFound          = "PrincipalNotFound"
	codeAnotherOperationInProgress = "AnotherOperationInProgress"
)

// responseError extracts the ARM response error from err.
func responseError(err error) (*azcore.ResponseError, bool) {
	if err == nil {
		return nil, false
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

func hasStatus(err error, codes ...int) bool {
	respErr, ok := responseError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if respErr.StatusCode == code {
			return true
		}
	}
	return false
}

func hasErrorCode(err error, codes ...string) bool {
	respErr, ok := responseError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if respErr.ErrorCode == code {
			return true
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error indicates a conflict occurred.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsRateLimited checks if an error indicates throttling.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsRoleAssignmentExists checks if a role assignment create failed because
// the assignment is already present.
func IsRoleAssignmentExists(err error) bool {
	return hasErrorCode(err, codeRoleAssignmentExists)
}

// IsPrincipalNotFound checks if Entra ID has not replicated a new principal yet.
func IsPrincipalNotFound(err error) bool {
	return hasErrorCode(err, codePrincipalNotFound)
}

// IsRetryable reports whether an operation failing with err may succeed
// when repeated. Transport errors without a response are retried; context
// cancellation is not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	respErr, ok := responseError(err)
	if !ok {
		return true
	}
	switch respErr.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return hasErrorCode(err, codeAnotherOperationInProgress)
}
