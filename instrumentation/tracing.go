package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys.
//
// SECURITY WARNING: Never put actual token values, signing keys, or other
// credential material into traces or metrics. Traces are persisted longer
// and visible to a wider audience than the credentials they describe. Only
// metadata belongs here: token names, formats, cache outcomes, durations.
const (
	// Generation attributes - metadata only
	AttrTokenName    = "tokenmint.token.name"    // Configured token name (non-secret)
	AttrTokenFormat  = "tokenmint.token.format"  // Output encoding
	AttrTokenLength  = "tokenmint.token.length"  // Requested byte length
	AttrTokenCached  = "tokenmint.token.cached"  // Whether served from TTL cache
	AttrTokenCount   = "tokenmint.token.count"   // Tokens in a batch
	AttrSubject      = "tokenmint.subject"       // Request subject (URL path)
	AttrWarningCount = "tokenmint.warning.count" // Resolution warnings emitted
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddGenerationAttributes adds per-token generation attributes to a span (nil-safe)
func AddGenerationAttributes(span trace.Span, tokenName, format string, length int, cached bool) {
	SetSpanAttributes(span,
		attribute.String(AttrTokenName, tokenName),
		attribute.String(AttrTokenFormat, format),
		attribute.Int(AttrTokenLength, length),
		attribute.Bool(AttrTokenCached, cached),
	)
}
