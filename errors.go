package tokenmint

import (
	"errors"
	"fmt"
)

// Error codes for the per-token failure taxonomy.
const (
	// ErrorCodeEntropyUnavailable is fatal for the affected token: the
	// CSPRNG failed and no value was produced.
	ErrorCodeEntropyUnavailable = "entropy_unavailable"

	// ErrorCodeConfigInvalid marks a configuration value that was clamped
	// or demoted at resolution time. Non-fatal.
	ErrorCodeConfigInvalid = "config_invalid"

	// ErrorCodeCacheDegraded marks a token generated without caching
	// because its spec has no cache slot. Non-fatal.
	ErrorCodeCacheDegraded = "cache_degraded"

	// ErrorCodeSigningMisconfigured marks a metadata token emitted
	// unsigned because no signing key was configured. Non-fatal.
	ErrorCodeSigningMisconfigured = "signing_misconfigured"
)

// ErrInvalidSpec indicates a token spec or context that cannot be
// constructed (missing name, token cap exceeded).
var ErrInvalidSpec = errors.New("invalid token spec")

// TokenError is a per-token failure. Only entropy failures surface as
// Output.Err; the other codes degrade gracefully and are reported through
// logs and metrics instead.
type TokenError struct {
	// Code is one of the ErrorCode constants.
	Code string

	// Token is the name of the affected token spec.
	Token string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface
func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: token %q: %v", e.Code, e.Token, e.Err)
	}
	return fmt.Sprintf("%s: token %q", e.Code, e.Token)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *TokenError) Unwrap() error {
	return e.Err
}

// NewTokenError creates a new per-token error
func NewTokenError(code, token string, err error) *TokenError {
	return &TokenError{Code: code, Token: token, Err: err}
}
