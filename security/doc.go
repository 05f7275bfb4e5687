// Package security provides the cryptographic building blocks for token
// generation: the CSPRNG byte source, HMAC-SHA256 metadata signing and
// verification, signing-key management, clock-skew handling, audit logging,
// and per-client rate limiting for token-issuing endpoints.
//
// # Byte Source
//
// The ByteSource contract is the most security-critical piece of the
// module: a failed CSPRNG read must surface as ErrEntropyUnavailable and
// never be papered over with zero-filled or otherwise predictable bytes.
//
// # Metadata Tokens
//
// EncodeWithMetadata produces the self-describing wire formats consumed by
// downstream validators:
//
//	<decimal-unix-expiry>:<payload>
//	<decimal-unix-expiry>:<payload>:<64-hex-HMAC-SHA256>
//
// Only the signed form is tamper-evident. An unsigned metadata token
// protects against guessing but not forgery; VerifyMetadata reports the
// distinction so callers are never misled about what a passing check means.
//
// # Rate Limiting
//
// The RateLimiter provides per-identifier rate limiting over a token bucket
// (golang.org/x/time/rate) with LRU eviction so tracked identifiers cannot
// grow without bound under distributed abuse:
//
//	limiter := security.NewRateLimiter(10, 20, logger)
//	defer limiter.Stop()
//
//	if !limiter.Allow(clientIP) {
//	    return http.StatusTooManyRequests
//	}
package security
