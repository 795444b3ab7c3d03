package salesforce

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

// Fault is an error reported by Salesforce, either a SOAP fault or an entry of
// a REST error array.
type Fault struct {
	Code       string
	Message    string
	StatusCode int
}

func (f *Fault) Error() string {
	if f.Code == "" {
		return fmt.Sprintf("HTTP %d: %s", f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Fault) ErrorCode() string {
	return f.Code
}

var authFaultCodes = map[string]bool{
	"INVALID_SESSION_ID":   true,
	"INVALID_AUTH_HEADER":  true,
	"INVALID_LOGIN":        true,
	"INSUFFICIENT_ACCESS":  true,
	"API_DISABLED_FOR_ORG": true,
}

var notFoundFaultCodes = map[string]bool{
	"NOT_FOUND":         true,
	"INVALID_TYPE":      true,
	"INVALID_FIELD":     true,
	"ENTITY_IS_DELETED": true,
}

var rateLimitFaultCodes = map[string]bool{
	"REQUEST_LIMIT_EXCEEDED":   true,
	"REQUEST_RUNNING_TOO_LONG": true,
}

// HandleSalesforceError maps a failed call onto an application error code.
// operation names the call (e.g. "readMetadata") and subject what it was for.
func HandleSalesforceError(ctx context.Context, operation, subject string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in Salesforce error handler for %s", operation))
	}

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during Salesforce %s call", operation))
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("Salesforce %s call for %s timed out", operation, subject))
	}

	var appErr *errors.AppError
	if stderrs.As(err, &appErr) {
		return err
	}

	var fault *Fault
	if !stderrs.As(err, &fault) {
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("Salesforce %s call for %s failed", operation, subject))
	}

	code := strings.TrimPrefix(fault.Code, "sf:")
	switch {
	case authFaultCodes[code] || fault.StatusCode == http.StatusUnauthorized:
		return errors.WrapUserFacing(err, errors.CodePlatformAuthError,
			fmt.Sprintf("Salesforce rejected the session while calling %s for %s", operation, subject),
			"Re-authenticate the org (sf org login web --alias <alias>) or refresh the access token.")
	case notFoundFaultCodes[code] || fault.StatusCode == http.StatusNotFound:
		return errors.Wrap(err, errors.CodeResourceNotFound, fmt.Sprintf("%s not found", subject))
	case rateLimitFaultCodes[code] || fault.StatusCode == http.StatusTooManyRequests:
		return errors.Wrap(err, errors.CodeRateLimited,
			fmt.Sprintf("Salesforce API limit reached during %s for %s", operation, subject))
	}
	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("Salesforce %s call for %s failed", operation, subject))
}

// isRetryable reports whether a raw transport error or fault is worth
// another attempt. Session, lookup and quota faults never are.
func isRetryable(err error) bool {
	var fault *Fault
	if stderrs.As(err, &fault) {
		code := strings.TrimPrefix(fault.Code, "sf:")
		if authFaultCodes[code] || notFoundFaultCodes[code] || rateLimitFaultCodes[code] {
			return false
		}
		return fault.StatusCode >= http.StatusInternalServerError || code == "SERVER_UNAVAILABLE"
	}
	var appErr *errors.AppError
	if stderrs.As(err, &appErr) {
		return false
	}
	return !stderrs.Is(err, context.Canceled) && !stderrs.Is(err, context.DeadlineExceeded)
}
