package security

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// Auditor handles security event logging for token generation. Token values
// are never logged verbatim; only a short hash is recorded so events can be
// correlated without leaking credentials.
type Auditor struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditor creates a new security auditor
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		enabled: enabled,
	}
}

// Event represents a security audit event
type Event struct {
	Type      string
	TokenName string
	Subject   string
	IPAddress string
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs a security event
func (a *Auditor) LogEvent(event Event) {
	if a == nil || !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	a.logger.Info("security_audit",
		"event_type", event.Type,
		"token_name", event.TokenName,
		"subject", event.Subject,
		"ip_address", event.IPAddress,
		"details", event.Details,
		"timestamp", event.Timestamp,
	)
}

// LogTokenIssued logs a freshly generated token. The value itself is hashed.
func (a *Auditor) LogTokenIssued(tokenName, subject, value string, cached bool) {
	a.LogEvent(Event{
		Type:      "token_issued",
		TokenName: tokenName,
		Subject:   subject,
		Details: map[string]any{
			"value_hash": hashForLogging(value),
			"cached":     cached,
		},
	})
}

// LogEntropyFailure logs a CSPRNG failure. This is the one event class that
// corresponds to a token not being produced at all.
func (a *Auditor) LogEntropyFailure(tokenName, subject string, err error) {
	a.LogEvent(Event{
		Type:      "entropy_failure",
		TokenName: tokenName,
		Subject:   subject,
		Details: map[string]any{
			"error": err.Error(),
		},
	})
}

// LogConfigClamped logs a configuration value that was clamped or demoted
// at resolution time.
func (a *Auditor) LogConfigClamped(tokenName, field string, configured, effective any) {
	a.LogEvent(Event{
		Type:      "config_clamped",
		TokenName: tokenName,
		Details: map[string]any{
			"field":      field,
			"configured": configured,
			"effective":  effective,
		},
	})
}

// LogSigningDowngraded logs a metadata token emitted unsigned because no
// signing key was configured or signing failed.
func (a *Auditor) LogSigningDowngraded(tokenName, reason string) {
	a.LogEvent(Event{
		Type:      "signing_downgraded",
		TokenName: tokenName,
		Details: map[string]any{
			"reason": reason,
		},
	})
}

// LogRateLimitExceeded logs a rate limit violation on a token-issuing endpoint
func (a *Auditor) LogRateLimitExceeded(ipAddress, subject string) {
	a.LogEvent(Event{
		Type:      "rate_limit_exceeded",
		Subject:   subject,
		IPAddress: ipAddress,
	})
}

// hashForLogging creates a SHA256 hash of sensitive data for logging
func hashForLogging(sensitive string) string {
	if sensitive == "" {
		return "<empty>"
	}
	hash := sha256.Sum256([]byte(sensitive))
	return hex.EncodeToString(hash[:])[:16]
}
