package security

import "time"

const (
	// DefaultClockSkewGracePeriod is the grace period applied to expiry
	// checks. It prevents false expiration failures caused by time
	// synchronization drift between the issuing and validating hosts.
	//
	// Trade-off: a token remains acceptable for up to 5 seconds past its
	// true expiry. That is a conservative allowance for typical NTP drift;
	// high-security deployments can tighten it via IsExpiredWithGrace.
	DefaultClockSkewGracePeriod = 5 * time.Second
)

// IsExpired reports whether expiresAt has passed as of now, with the
// default clock-skew grace period applied.
func IsExpired(expiresAt, now time.Time) bool {
	return IsExpiredWithGrace(expiresAt, now, DefaultClockSkewGracePeriod)
}

// IsExpiredWithGrace reports whether expiresAt has passed as of now with a
// custom grace period. A zero expiresAt means no expiration.
func IsExpiredWithGrace(expiresAt, now time.Time, grace time.Duration) bool {
	if expiresAt.IsZero() {
		return false
	}
	return now.After(expiresAt.Add(grace))
}
